package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"text/template"
)

// ErrEmptyModel is returned when there is nothing to register.
var ErrEmptyModel = errors.New("no records or unions to register")

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Filename is the generated file name; empty means "<package>_codec.go".
	Filename string
	// OutputDir is where the unformatted sidecar is written when the
	// generated source does not format.
	OutputDir string
	// Registry is the expression of the *codec.Registry to register on;
	// empty means the codec package's Default registry.
	Registry string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{OutputDir: "."}
}

// Generator renders registration files from models.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "geometry_codec.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// templateData holds all data needed for the registration template.
type templateData struct {
	PackageName string
	Imports     []importSpec
	Codec       string
	Registry    string
	Records     []RecordModel
	Unions      []UnionModel
}

// Generate renders the registration file for m.
func (g *Generator) Generate(m *Model) (*GeneratedFile, error) {
	if m == nil || (len(m.Records) == 0 && len(m.Unions) == 0) {
		return nil, ErrEmptyModel
	}

	filename := g.config.Filename
	if filename == "" {
		filename = m.Package + "_codec.go"
	}

	imports := m.imports
	if imports == nil {
		imports = newImportSet(nil)
	}

	data := &templateData{
		PackageName: m.Package,
		Codec:       imports.name(CodecPath, "codec"),
		Registry:    g.config.Registry,
		Records:     m.Records,
		Unions:      m.Unions,
	}

	if data.Registry == "" {
		data.Registry = data.Codec + ".Default"
	}

	data.Imports = imports.specs()

	var buf bytes.Buffer
	if err := registerTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: the sidecar only aids debugging.
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, filename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Filename: filename,
		Content:  formatted,
	}, nil
}

var registerTemplate = template.Must(template.New("register").Parse(`// Code generated by codecgen. DO NOT EDIT.

package {{.PackageName}}

import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})

func init() {
{{range $rec := .Records}}	{{$.Codec}}.MustRegisterRecord[{{$rec.Type}}]({{$.Registry}},
{{range $rec.Fields}}		{{$.Codec}}.Field({{printf "%q" .Name}}, func(v *{{$rec.Type}}) *{{.Type}} { return &v.{{.Selector}} }),
{{end}}	)
{{end}}{{range .Unions}}	{{$.Codec}}.MustRegisterUnion[{{.Interface}}]({{$.Registry}},
{{range .Alternatives}}		{{$.Codec}}.Alt[{{.Type}}]({{printf "%q" .Name}}),
{{end}}	)
{{end}}}
`))
