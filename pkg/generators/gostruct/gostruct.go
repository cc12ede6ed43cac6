// Package gostruct renders one Go struct per model. Templates run through
// pkg/template and the result is gofmt-ed before being written.
package gostruct

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"go/format"
	"io"
	"io/fs"
	"sort"
	"strings"

	"github.com/goliatone/go-configger/pkg/builder"
	"github.com/goliatone/go-configger/pkg/generator"
	"github.com/goliatone/go-configger/pkg/schema"
	"github.com/goliatone/go-configger/pkg/template"
)

// Name is the generator name.
const Name = "gostruct"

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded templates so callers can copy and adapt
// them. Overrides are passed back with WithTemplates and must keep the
// templates/gostruct.tmpl path.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// GoType is a Go type expression plus the import it needs, if any.
type GoType struct {
	Expr   string
	Import string
}

// DefaultTypes maps the built-in field types to Go.
func DefaultTypes() map[builder.FieldType]GoType {
	return map[builder.FieldType]GoType{
		builder.FieldTypeInteger:   {Expr: "int64"},
		builder.FieldTypeString:    {Expr: "string"},
		builder.FieldTypeTimestamp: {Expr: "time.Time", Import: "time"},
	}
}

// Option customises the generator.
type Option func(*config)

type config struct {
	pkg         string
	header      string
	types       map[builder.FieldType]GoType
	templates   fs.FS
	templateDir string
}

// DefaultHeader is the file comment written above the package clause. It is
// a template with access to tool, generator, package and source.
const DefaultHeader = "Code generated by {{ tool }}. DO NOT EDIT.\n{% if source %}Source: {{ source }}{% endif %}"

// WithPackage sets the package clause. Defaults to "models".
func WithPackage(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.pkg = trimmed
		}
	}
}

// WithHeader replaces DefaultHeader. Each rendered line becomes a "//"
// comment; blank lines are dropped.
func WithHeader(header string) Option {
	return func(cfg *config) {
		cfg.header = header
	}
}

// WithTemplateDir loads templates from dir first, falling back to the
// embedded or WithTemplates set for anything dir does not contain.
func WithTemplateDir(dir string) Option {
	return func(cfg *config) {
		cfg.templateDir = strings.TrimSpace(dir)
	}
}

// WithTemplates replaces the embedded templates.
func WithTemplates(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithType maps an additional or overridden field type.
func WithType(fieldType builder.FieldType, goType GoType) Option {
	return func(cfg *config) {
		cfg.types[fieldType] = goType
	}
}

type fieldView struct {
	Name        string
	Type        string
	Description string
	Attributes  map[string]any
}

type modelView struct {
	Name        string
	Description string
	Fields      []fieldView
}

type schemaView struct {
	Name   string
	Models []modelView
}

type treeView []schemaView

type renderField struct {
	Name     string `json:"name"`
	GoName   string `json:"goName"`
	GoType   string `json:"goType"`
	Comment  string `json:"comment,omitempty"`
	Nullable bool   `json:"nullable,omitempty"`
}

type renderModel struct {
	GoName  string        `json:"goName"`
	Comment string        `json:"comment"`
	Fields  []renderField `json:"fields"`
}

type renderData struct {
	Header  []string      `json:"header"`
	Imports []string      `json:"imports"`
	Models  []renderModel `json:"models"`
}

type gostruct struct {
	cfg    config
	engine *template.Engine
}

// New builds the generator. It depends on the field definition and its
// nullable extension.
func New(options ...Option) (generator.Generator, error) {
	cfg := config{pkg: "models", header: DefaultHeader, types: DefaultTypes(), templates: embeddedTemplates}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templates == nil && cfg.templateDir == "" {
		return nil, errors.New("gostruct: templates are required")
	}
	engine, err := template.New(
		template.WithName(Name),
		template.WithBaseDir(cfg.templateDir),
		template.WithFS(cfg.templates),
		template.WithGlobalData(map[string]any{
			"tool":      "configger",
			"generator": Name,
			"package":   cfg.pkg,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("gostruct: %w", err)
	}
	g := &gostruct{cfg: cfg, engine: engine}
	if _, err := g.headerLines(""); err != nil {
		return nil, fmt.Errorf("gostruct: header: %w", err)
	}
	return generator.New(Name, g.generate, generator.WithDependencies(
		schema.TypeSchema,
		schema.TypeModel,
		schema.TypeField,
		schema.TypeNullableField,
	))
}

func (g *gostruct) generate(_ context.Context, tree treeView, out io.Writer) error {
	data, sources, err := g.collect(tree)
	if err != nil {
		return err
	}
	if data.Header, err = g.headerLines(strings.Join(sources, ", ")); err != nil {
		return &generator.GenerationError{Err: fmt.Errorf("header: %w", err)}
	}
	rendered, err := g.engine.Render("templates/gostruct", data)
	if err != nil {
		return &generator.GenerationError{Err: err}
	}
	src, err := format.Source([]byte(rendered))
	if err != nil {
		return &generator.GenerationError{Err: fmt.Errorf("gofmt: %w", err)}
	}
	_, err = out.Write(src)
	return err
}

func (g *gostruct) headerLines(source string) ([]string, error) {
	rendered, err := g.engine.RenderString(g.cfg.header, map[string]any{"source": source})
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, line := range strings.Split(rendered, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

func (g *gostruct) collect(tree treeView) (renderData, []string, error) {
	var data renderData
	imports := map[string]struct{}{}
	seen := map[string]builder.Path{}
	var sources []string

	for _, s := range tree {
		sources = append(sources, s.Name)
		for _, m := range s.Models {
			modelPath := builder.Path{Schema: s.Name, Model: m.Name}
			goName := template.Camel(m.Name)
			if goName == "" {
				return renderData{}, nil, generator.Validationf(modelPath, "Model %s has no Go identifier", m.Name)
			}
			if prev, ok := seen[goName]; ok {
				return renderData{}, nil, generator.Validationf(modelPath, "Model %s collides with %s as Go type %s", modelPath, prev, goName)
			}
			seen[goName] = modelPath

			model := renderModel{GoName: goName, Comment: modelComment(goName, m)}
			fieldNames := map[string]string{}
			for _, f := range m.Fields {
				fieldPath := builder.Path{Schema: s.Name, Model: m.Name, Field: f.Name}
				fieldGoName := template.Camel(f.Name)
				if fieldGoName == "" {
					return renderData{}, nil, generator.Validationf(fieldPath, "Field %s has no Go identifier", f.Name)
				}
				if prev, ok := fieldNames[fieldGoName]; ok {
					return renderData{}, nil, generator.Validationf(fieldPath, "Field %s collides with %s as Go field %s", f.Name, prev, fieldGoName)
				}
				fieldNames[fieldGoName] = f.Name
				goType, ok := g.cfg.types[builder.FieldType(f.Type)]
				if !ok {
					return renderData{}, nil, generator.Validationf(fieldPath, "Field %s has unsupported type %s", f.Name, f.Type)
				}
				if goType.Import != "" {
					imports[goType.Import] = struct{}{}
				}
				nullable := builder.FieldNode{Attributes: f.Attributes}.Bool("nullable")
				expr := goType.Expr
				if nullable {
					expr = "*" + expr
				}
				model.Fields = append(model.Fields, renderField{
					Name:     f.Name,
					GoName:   fieldGoName,
					GoType:   expr,
					Comment:  oneLine(f.Description),
					Nullable: nullable,
				})
			}
			data.Models = append(data.Models, model)
		}
	}

	for imp := range imports {
		data.Imports = append(data.Imports, imp)
	}
	sort.Strings(data.Imports)
	return data, sources, nil
}

func modelComment(goName string, m modelView) string {
	if desc := oneLine(m.Description); desc != "" {
		return fmt.Sprintf("%s maps the %s model: %s", goName, m.Name, desc)
	}
	return fmt.Sprintf("%s maps the %s model.", goName, m.Name)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
