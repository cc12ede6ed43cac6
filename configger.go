// Package configger is the convenience entry point: it re-exports the
// pipeline constructor and wires the built-in catalog and sample generators
// for callers that want output from a single call.
package configger

import (
	"context"
	"errors"

	"github.com/goliatone/go-configger/pkg/builder"
	"github.com/goliatone/go-configger/pkg/generator"
	"github.com/goliatone/go-configger/pkg/generators/console"
	"github.com/goliatone/go-configger/pkg/generators/gostruct"
	"github.com/goliatone/go-configger/pkg/generators/htmldoc"
	"github.com/goliatone/go-configger/pkg/generators/manifest"
	"github.com/goliatone/go-configger/pkg/generators/openapi"
	"github.com/goliatone/go-configger/pkg/generators/rules"
	"github.com/goliatone/go-configger/pkg/pipeline"
	"github.com/goliatone/go-configger/pkg/schema"
)

// Report aliases pipeline.Report for callers that only import the root
// package.
type Report = pipeline.Report

// Option aliases pipeline.Option.
type Option = pipeline.Option

// NewBackend starts a build session.
func NewBackend(options ...builder.Option) *builder.Backend {
	return builder.NewBackend(options...)
}

// NewPipeline exposes the pipeline constructor from the top-level module.
func NewPipeline(options ...pipeline.Option) *pipeline.Pipeline {
	return pipeline.New(options...)
}

// DefaultGenerators builds the conformance rule followed by the sample
// generators, all checked against catalog.
func DefaultGenerators(catalog *schema.Catalog) ([]generator.Generator, error) {
	conformance, err := rules.Conformance(catalog, rules.DefaultLevels)
	if err != nil {
		return nil, err
	}
	structs, err := gostruct.New()
	if err != nil {
		return nil, err
	}
	apiDoc, err := openapi.New()
	if err != nil {
		return nil, err
	}
	docs, err := htmldoc.New()
	if err != nil {
		return nil, err
	}
	return []generator.Generator{
		conformance,
		console.New(),
		structs,
		apiDoc,
		manifest.New(),
		docs,
	}, nil
}

// Generate dispatches backend through the built-in catalog and every default
// generator. Extra options are applied after the defaults, so WithPolicy or
// WithLogger override them.
func Generate(ctx context.Context, backend *builder.Backend, options ...pipeline.Option) (Report, error) {
	if backend == nil {
		return Report{}, errors.New("configger: backend is required")
	}
	catalog := schema.DefaultCatalog()
	generators, err := DefaultGenerators(catalog)
	if err != nil {
		return Report{}, err
	}
	opts := append([]pipeline.Option{
		pipeline.WithCatalog(catalog),
		pipeline.WithGenerators(generators...),
	}, options...)
	return pipeline.New(opts...).Dispatch(ctx, backend)
}
