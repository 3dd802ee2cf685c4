// Package manifest generates the MonoGame content-builder manifest for a
// content root. Generation is a single linear pass:
//
//	open output → write header → for each matched file write entry → close
//
// # Usage
//
//	gen := manifest.NewGenerator(manifest.GeneratorOptions{
//	    Source: scanner.New(scanner.Options{Root: "./Content/"}),
//	    Table:  template.DefaultTable(),
//	    Output: "./Content/Content.mgcb",
//	})
//	result, err := gen.Generate(ctx)
//
// Files whose extension has no template are skipped silently. Entries are
// written in discovery order; nothing is sorted or de-duplicated here.
//
// # Output handling
//
// The output file is truncated on open and always closed, on success or
// failure. By default a failure leaves whatever was written so far on
// disk. With WriterOptions.Atomic the manifest is written to a temporary
// file next to the destination and renamed into place only on success.
package manifest
