package codegen

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"
	"unicode"

	"github.com/graphio/graphio-go/errors"
)

const fileTemplate = `// Code generated by graphio codegen. DO NOT EDIT.

package {{.Package}}

// {{.GoName}} ({{.Schema.Name}}, object type {{.Schema.ID}})
const (
	{{.GoName}}TypeID   = "{{.Schema.ID}}"
	{{.GoName}}TypeName = "{{.Schema.Name}}"
)

{{if .Schema.Properties -}}
var {{.GoName}}Fields = []string{
{{- range .Schema.Properties}}
	"{{.Name}}",
{{- end}}
}
{{- else -}}
var {{.GoName}}Fields []string
{{- end}}
`

// Generator renders one Go source file per object type into an output
// directory. It remembers what it wrote so deletions can remove the right
// file.
type Generator struct {
	outDir string
	pkg    string
	tmpl   *template.Template

	mu    sync.Mutex
	files map[string]string // type id -> generated file path
}

// NewGenerator creates a generator writing package pkg files into outDir
func NewGenerator(outDir, pkg string) (*Generator, error) {
	if outDir == "" || pkg == "" {
		return nil, errors.NewInvalidRequestError("output directory and package name are required")
	}
	tmpl, err := template.New("type").Parse(fileTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "parse template")
	}
	return &Generator{
		outDir: outDir,
		pkg:    pkg,
		tmpl:   tmpl,
		files:  map[string]string{},
	}, nil
}

// Generate renders the schema's source file, overwriting any previous
// generation for the same type
func (g *Generator) Generate(schema TypeSchema) (string, error) {
	if schema.ID == "" || schema.Name == "" {
		return "", errors.NewInvalidRequestError("schema is missing id or name")
	}
	goName := GoName(schema.Name)
	if goName == "" {
		return "", errors.Newf("type name %q yields no Go identifier", schema.Name)
	}

	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return "", errors.Wrap(err, "create output directory")
	}

	path := filepath.Join(g.outDir, strings.ToLower(goName)+"_gen.go")
	file, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "create %s", path)
	}
	defer file.Close()

	err = g.tmpl.Execute(file, struct {
		Package string
		GoName  string
		Schema  TypeSchema
	}{g.pkg, goName, schema})
	if err != nil {
		return "", errors.Wrapf(err, "render %s", path)
	}

	g.mu.Lock()
	g.files[schema.ID] = path
	g.mu.Unlock()
	return path, nil
}

// Remove deletes the file previously generated for the type id. Unknown ids
// are a noop; the type may have been deleted before this process started.
func (g *Generator) Remove(typeID string) error {
	g.mu.Lock()
	path, ok := g.files[typeID]
	delete(g.files, typeID)
	g.mu.Unlock()

	if !ok {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove %s", path)
	}
	return nil
}

// GeneratedFiles returns the type id to file path index
func (g *Generator) GeneratedFiles() map[string]string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make(map[string]string, len(g.files))
	for id, path := range g.files {
		out[id] = path
	}
	return out
}

// GoName converts an ontology type name to an exported Go identifier.
// Word boundaries are spaces, hyphens and underscores; other
// non-alphanumeric runes are dropped.
func GoName(name string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range name {
		switch {
		case r == ' ' || r == '-' || r == '_':
			upperNext = true
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if upperNext {
				r = unicode.ToUpper(r)
				upperNext = false
			}
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out != "" && unicode.IsDigit(rune(out[0])) {
		out = "T" + out
	}
	return out
}
