package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-configger/pkg/builder"
	"github.com/goliatone/go-configger/pkg/view"
)

// Generator consumes a frozen tree, validates it and writes its output.
type Generator interface {
	Name() string
	Generate(ctx context.Context, tree builder.Tree, out io.Writer) error
}

// Dependent is implemented by generators that declare the field-set type ids
// they were authored against. The pipeline checks those declarations for
// forced extensions before any generator runs.
type Dependent interface {
	Dependencies() []string
}

// Option configures generators built with New or NewFunc.
type Option func(*config)

type config struct {
	deps []string
}

// WithDependencies declares the field-set type ids the generator consumes.
func WithDependencies(ids ...string) Option {
	return func(cfg *config) {
		for _, id := range ids {
			if trimmed := strings.TrimSpace(id); trimmed != "" {
				cfg.deps = append(cfg.deps, trimmed)
			}
		}
	}
}

func newConfig(options []Option) config {
	var cfg config
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// ViewFunc generates output from a projected view.
type ViewFunc[V any] func(ctx context.Context, v V, out io.Writer) error

type typed[V any] struct {
	name string
	deps []string
	fn   ViewFunc[V]
}

// New builds a generator that receives the tree projected into V. The view
// shape is validated here so that projection cannot fail during dispatch.
func New[V any](name string, fn ViewFunc[V], options ...Option) (Generator, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("generator: name is required")
	}
	if fn == nil {
		return nil, fmt.Errorf("generator: %q: function is required", name)
	}
	if err := view.Check[V](); err != nil {
		return nil, fmt.Errorf("generator: %q: %w", name, err)
	}
	cfg := newConfig(options)
	return &typed[V]{name: name, deps: cfg.deps, fn: fn}, nil
}

// MustNew panics when New fails. Useful for init-time wiring.
func MustNew[V any](name string, fn ViewFunc[V], options ...Option) Generator {
	gen, err := New(name, fn, options...)
	if err != nil {
		panic(err)
	}
	return gen
}

func (g *typed[V]) Name() string { return g.name }

func (g *typed[V]) Dependencies() []string {
	return append([]string(nil), g.deps...)
}

func (g *typed[V]) Generate(ctx context.Context, tree builder.Tree, out io.Writer) error {
	return g.fn(ctx, view.Project[V](tree), out)
}

// TreeFunc generates output from the full tree.
type TreeFunc func(ctx context.Context, tree builder.Tree, out io.Writer) error

type funcGenerator struct {
	name string
	deps []string
	fn   TreeFunc
}

// NewFunc adapts a function over the full tree into a Generator.
func NewFunc(name string, fn TreeFunc, options ...Option) Generator {
	cfg := newConfig(options)
	return &funcGenerator{name: strings.TrimSpace(name), deps: cfg.deps, fn: fn}
}

func (g *funcGenerator) Name() string { return g.name }

func (g *funcGenerator) Dependencies() []string {
	return append([]string(nil), g.deps...)
}

func (g *funcGenerator) Generate(ctx context.Context, tree builder.Tree, out io.Writer) error {
	if g.fn == nil {
		return nil
	}
	return g.fn(ctx, tree, out)
}

// DependenciesOf returns gen's declared dependencies, or nil.
func DependenciesOf(gen Generator) []string {
	if dep, ok := gen.(Dependent); ok {
		return dep.Dependencies()
	}
	return nil
}
