// Package template holds the fixed MonoGame content-builder text emitted by
// mgcbgen: the global header and one block template per supported asset
// extension.
//
// # Templates
//
// Each block is a handlebars source with a single {{{path}}} substitution
// site, which may appear several times. Triple-stash keeps paths unescaped:
//
//	table := template.DefaultTable()
//	tpl, ok := table.Lookup(template.SplitExt("textures/hero.png"))
//	if ok {
//	    text, err := tpl.Render("textures/hero.png")
//	    ...
//	}
//
// Extensions are matched case-sensitively and include the leading dot.
package template
