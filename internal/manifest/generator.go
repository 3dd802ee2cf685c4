package manifest

import (
	"context"
	"fmt"
	"time"

	"github.com/voxelspace/mgcbgen/internal/domain"
	"github.com/voxelspace/mgcbgen/internal/template"
	"github.com/voxelspace/mgcbgen/internal/utils"
)

// Generator writes the manifest for one content root
type Generator struct {
	source domain.Source
	table  template.Table
	output string
	wopts  WriterOptions
	logger *utils.Logger
	onFile func(domain.AssetFile)
}

// NewGenerator creates a new generator
func NewGenerator(opts GeneratorOptions) *Generator {
	if opts.Table == nil {
		opts.Table = template.DefaultTable()
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}

	return &Generator{
		source: opts.Source,
		table:  opts.Table,
		output: opts.Output,
		wopts:  opts.Writer,
		logger: opts.Logger.WithComponent("generator"),
		onFile: opts.OnFile,
	}
}

// Generate runs the traverse, match and write pass. The output is closed on
// every return path; on failure the returned Result still reports what was
// written before the error.
func (g *Generator) Generate(ctx context.Context) (result *Result, err error) {
	if g.source == nil {
		return nil, ErrNoSource
	}

	start := time.Now()
	result = &Result{Output: g.output, DryRun: g.wopts.DryRun}
	log := g.logger.WithRoot(g.source.Root())
	log.Info().Str("output", g.output).Bool("dry_run", g.wopts.DryRun).Msg("Generating manifest")

	w, err := OpenWriter(g.output, g.wopts)
	if err != nil {
		return result, err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
		}
		result.Bytes = w.Written()
		result.Duration = time.Since(start)
	}()

	if err := w.WriteString(template.Header); err != nil {
		return result, err
	}

	err = g.source.Walk(ctx, func(file domain.AssetFile) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		result.Scanned++
		if g.onFile != nil {
			g.onFile(file)
		}

		entry, ok, err := g.Render(file)
		if err != nil {
			return err
		}
		if !ok {
			result.Skipped++
			log.Debug().Str("path", file.Rel).Msg("No template for extension, skipping")
			return nil
		}

		if err := w.WriteString(entry.Text); err != nil {
			return err
		}
		result.Matched++
		result.Entries = append(result.Entries, entry)
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("generate %s: %w", g.output, err)
	}

	if err := w.Commit(); err != nil {
		return result, err
	}

	log.Info().
		Int("matched", result.Matched).
		Int("skipped", result.Skipped).
		Dur("elapsed", time.Since(start)).
		Msg("Manifest written")
	return result, nil
}

// Render matches file against the template table. ok is false when the
// file's extension has no template.
func (g *Generator) Render(file domain.AssetFile) (entry domain.Entry, ok bool, err error) {
	ext := template.SplitExt(file.Rel)
	tpl, found := g.table.Lookup(ext)
	if !found {
		return domain.Entry{}, false, nil
	}

	text, err := tpl.Render(file.Rel)
	if err != nil {
		return domain.Entry{}, false, err
	}
	return domain.Entry{Path: file.Rel, Ext: ext, Text: text}, true, nil
}
