// Package manifest writes the frozen tree as a YAML manifest.
package manifest

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-configger/pkg/builder"
	"github.com/goliatone/go-configger/pkg/generator"
)

// Name is the generator name.
const Name = "manifest"

// Manifest is the document written by the generator.
type Manifest struct {
	Session string               `yaml:"session,omitempty"`
	Summary Summary              `yaml:"summary"`
	Schemas []builder.SchemaNode `yaml:"schemas"`
}

// Summary counts the tree elements.
type Summary struct {
	Schemas int `yaml:"schemas"`
	Models  int `yaml:"models"`
	Fields  int `yaml:"fields"`
}

// Option customises the manifest.
type Option func(*config)

type config struct {
	omitSession bool
	indent      int
}

// WithoutSession leaves the build session out so manifests of identical
// trees compare equal.
func WithoutSession() Option {
	return func(cfg *config) {
		cfg.omitSession = true
	}
}

// WithIndent sets the YAML indentation width. Defaults to 2.
func WithIndent(spaces int) Option {
	return func(cfg *config) {
		if spaces > 0 {
			cfg.indent = spaces
		}
	}
}

// New returns the manifest generator.
func New(options ...Option) generator.Generator {
	cfg := config{indent: 2}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return generator.NewFunc(Name, cfg.generate)
}

// Build assembles the manifest for tree.
func Build(tree builder.Tree) Manifest {
	m := Manifest{Session: tree.Session, Schemas: tree.Schemas}
	_ = tree.Walk(builder.Visitor{
		Schema: func(builder.Path, builder.SchemaNode) error { m.Summary.Schemas++; return nil },
		Model:  func(builder.Path, builder.ModelNode) error { m.Summary.Models++; return nil },
		Field:  func(builder.Path, builder.FieldNode) error { m.Summary.Fields++; return nil },
	})
	if m.Schemas == nil {
		m.Schemas = []builder.SchemaNode{}
	}
	return m
}

func (cfg config) generate(_ context.Context, tree builder.Tree, out io.Writer) error {
	m := Build(tree)
	if cfg.omitSession {
		m.Session = ""
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(cfg.indent)
	if err := enc.Encode(m); err != nil {
		return &generator.GenerationError{Err: fmt.Errorf("manifest: encode: %w", err)}
	}
	if err := enc.Close(); err != nil {
		return &generator.GenerationError{Err: fmt.Errorf("manifest: close encoder: %w", err)}
	}
	return nil
}
