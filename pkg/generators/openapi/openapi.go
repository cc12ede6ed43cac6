// Package openapi emits an OpenAPI 3 document holding one component schema
// per model. The document is validated with kin-openapi before it is
// written as indented JSON.
package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-configger/pkg/builder"
	"github.com/goliatone/go-configger/pkg/generator"
	"github.com/goliatone/go-configger/pkg/schema"
	"github.com/goliatone/go-configger/pkg/template"
	"github.com/goliatone/go-configger/pkg/view"
)

// Name is the generator name.
const Name = "openapi"

// SourceExtension records the schema.model origin of each component.
const SourceExtension = "x-configger-source"

// Option customises the generated document.
type Option func(*config)

type config struct {
	title   string
	version string
}

// WithInfo sets the info block. Defaults to "configger" / "0.0.0".
func WithInfo(title, version string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			cfg.title = trimmed
		}
		if trimmed := strings.TrimSpace(version); trimmed != "" {
			cfg.version = trimmed
		}
	}
}

func newConfig(options []Option) config {
	cfg := config{title: "configger", version: "0.0.0"}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

type fieldView struct {
	Name        string
	Type        builder.FieldType
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

// New builds the generator.
func New(options ...Option) (generator.Generator, error) {
	cfg := newConfig(options)
	return generator.New(Name, cfg.generate, generator.WithDependencies(
		schema.TypeSchema,
		schema.TypeModel,
		schema.TypeField,
		schema.TypeNullableField,
	))
}

// Document builds the OpenAPI document for tree without validating it.
func Document(tree builder.Tree, options ...Option) (*openapi3.T, error) {
	cfg := newConfig(options)
	return cfg.document(view.Project[treeView](tree))
}

func (cfg config) generate(ctx context.Context, tree treeView, out io.Writer) error {
	doc, err := cfg.document(tree)
	if err != nil {
		return err
	}
	if err := doc.Validate(ctx); err != nil {
		return &generator.GenerationError{Err: fmt.Errorf("openapi: validate: %w", err)}
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &generator.GenerationError{Err: fmt.Errorf("openapi: marshal: %w", err)}
	}
	payload = append(payload, '\n')
	_, err = out.Write(payload)
	return err
}

func (cfg config) document(tree treeView) (*openapi3.T, error) {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   cfg.title,
			Version: cfg.version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: make(openapi3.Schemas),
		},
	}

	origins := make(map[string]builder.Path)
	for _, s := range tree {
		for _, m := range s.Models {
			modelPath := builder.Path{Schema: s.Name, Model: m.Name}
			key := template.Camel(m.Name)
			if prev, ok := origins[key]; ok {
				return nil, generator.Validationf(modelPath, "Model %s collides with %s as component %s", modelPath, prev, key)
			}
			origins[key] = modelPath

			component, err := modelSchema(s.Name, m)
			if err != nil {
				return nil, err
			}
			doc.Components.Schemas[key] = openapi3.NewSchemaRef("", component)
		}
	}
	return doc, nil
}

func modelSchema(schemaName string, m modelView) (*openapi3.Schema, error) {
	out := openapi3.NewObjectSchema()
	out.Description = m.Description
	out.Extensions = map[string]any{
		SourceExtension: builder.Path{Schema: schemaName, Model: m.Name}.String(),
	}
	for _, f := range m.Fields {
		prop, ok := fieldSchema(f)
		if !ok {
			return nil, generator.Validationf(builder.Path{Schema: schemaName, Model: m.Name, Field: f.Name},
				"Field %s has unsupported type %s", f.Name, f.Type)
		}
		out.WithProperty(f.Name, prop)
		if !prop.Nullable {
			out.Required = append(out.Required, f.Name)
		}
	}
	return out, nil
}

func fieldSchema(f fieldView) (*openapi3.Schema, bool) {
	var out *openapi3.Schema
	switch f.Type {
	case builder.FieldTypeInteger:
		out = openapi3.NewInt64Schema()
	case builder.FieldTypeString:
		out = openapi3.NewStringSchema()
	case builder.FieldTypeTimestamp:
		out = openapi3.NewDateTimeSchema()
	default:
		return nil, false
	}
	out.Description = f.Description
	out.Nullable = builder.FieldNode{Attributes: f.Attributes}.Bool("nullable")
	return out, true
}
