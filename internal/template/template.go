package template

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aymerick/raymond"

	"github.com/voxelspace/mgcbgen/internal/domain"
)

// Header is written once at the top of every manifest
const Header = `
#----------------------------- Global Properties ----------------------------#

/outputDir:bin/$(Platform)
/intermediateDir:obj/$(Platform)
/platform:DesktopGL
/config:
/profile:Reach
/compress:False

#-------------------------------- References --------------------------------#


#---------------------------------- Content ---------------------------------#
`

// Supported extensions
const (
	ExtTexture = ".png"
	ExtEffect  = ".fx"
)

// textureSource keeps the four trailing spaces the content builder has
// always received after a texture block.
const textureSource = `
#begin {{{path}}}
/importer:TextureImporter
/processor:TextureProcessor
/processorParam:ColorKeyColor=255,0,255,255
/processorParam:ColorKeyEnabled=True
/processorParam:GenerateMipmaps=False
/processorParam:PremultiplyAlpha=True
/processorParam:ResizeToPowerOfTwo=False
/processorParam:MakeSquare=False
/processorParam:TextureFormat=Color
/build:{{{path}}}
` + "    "

const effectSource = `
#begin {{{path}}}
/importer:EffectImporter
/processor:EffectProcessor
/processorParam:DebugMode=Auto
/build:{{{path}}}
`

// Template is a parsed manifest block for one extension
type Template struct {
	Ext       string
	Importer  string
	Processor string

	source string
	tpl    *raymond.Template
}

// New parses a handlebars block source. The source must reference the
// file path as {{{path}}}.
func New(ext, importer, processor, source string) (*Template, error) {
	tpl, err := raymond.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse template for %s: %w", ext, err)
	}
	return &Template{
		Ext:       ext,
		Importer:  importer,
		Processor: processor,
		source:    source,
		tpl:       tpl,
	}, nil
}

// Render substitutes path at every placeholder
func (t *Template) Render(path string) (string, error) {
	out, err := t.tpl.Exec(map[string]string{"path": path})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrTemplateRender, t.Ext, err)
	}
	return out, nil
}

// Source returns the unparsed handlebars source
func (t *Template) Source() string {
	return t.source
}

// Table maps an extension (leading dot included) to its template
type Table map[string]*Template

// DefaultTable returns the texture and effect templates
func DefaultTable() Table {
	return Table{
		ExtTexture: mustNew(ExtTexture, "TextureImporter", "TextureProcessor", textureSource),
		ExtEffect:  mustNew(ExtEffect, "EffectImporter", "EffectProcessor", effectSource),
	}
}

// Lookup returns the template registered for ext
func (t Table) Lookup(ext string) (*Template, bool) {
	tpl, ok := t[ext]
	return tpl, ok
}

// Extensions returns the registered extensions in sorted order
func (t Table) Extensions() []string {
	exts := make([]string, 0, len(t))
	for ext := range t {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func mustNew(ext, importer, processor, source string) *Template {
	tpl, err := New(ext, importer, processor, source)
	if err != nil {
		panic(err)
	}
	return tpl
}

// SplitExt returns the extension of the last path element, including the
// dot. Leading dots of the file name do not start an extension, so
// ".png" and "..png" have none.
func SplitExt(path string) string {
	sepIndex := strings.LastIndexAny(path, "/"+string(filepath.Separator))
	dotIndex := strings.LastIndex(path, ".")
	if dotIndex <= sepIndex {
		return ""
	}
	for i := sepIndex + 1; i < dotIndex; i++ {
		if path[i] != '.' {
			return path[dotIndex:]
		}
	}
	return ""
}
