package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-configger/pkg/builder"
	"github.com/goliatone/go-configger/pkg/generator"
	"github.com/goliatone/go-configger/pkg/generators/rules"
	"github.com/goliatone/go-configger/pkg/schema"
)

// Option customises the pipeline configuration.
type Option func(*Pipeline)

// WithRegistry injects the generator registry. Generators run in the order
// they were registered.
func WithRegistry(registry *generator.Registry) Option {
	return func(p *Pipeline) {
		p.registry = registry
	}
}

// WithGenerators registers generators on the pipeline registry, creating one
// when none was supplied.
func WithGenerators(generators ...generator.Generator) Option {
	return func(p *Pipeline) {
		p.pending = append(p.pending, generators...)
	}
}

// WithPolicy selects the failure policy. Defaults to FailFast.
func WithPolicy(policy Policy) Option {
	return func(p *Pipeline) {
		p.policy = policy
	}
}

// WithCatalog supplies the field-set catalog used to check generator
// dependency declarations.
func WithCatalog(catalog *schema.Catalog) Option {
	return func(p *Pipeline) {
		p.catalog = catalog
	}
}

// WithDependencies declares field-set dependencies for the named generator in
// addition to whatever the generator declares itself.
func WithDependencies(generatorName string, ids ...string) Option {
	return func(p *Pipeline) {
		if p.deps == nil {
			p.deps = make(map[string][]string)
		}
		name := strings.TrimSpace(generatorName)
		p.deps[name] = append(p.deps[name], ids...)
	}
}

// WithLogger injects a zap logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithoutBuiltinRules disables the name rule that otherwise runs before every
// registered generator.
func WithoutBuiltinRules() Option {
	return func(p *Pipeline) {
		p.skipBuiltins = true
	}
}

// Pipeline coordinates the dependency check → freeze → generators sequence
// for a builder backend. A Pipeline is reusable across backends.
type Pipeline struct {
	registry      *generator.Registry
	pending       []generator.Generator
	policy        Policy
	catalog       *schema.Catalog
	deps          map[string][]string
	logger        *zap.Logger
	skipBuiltins  bool
	builtins      []generator.Generator
	initialiseErr error
}

// New constructs a Pipeline applying any provided options.
func New(options ...Option) *Pipeline {
	p := &Pipeline{policy: FailFast}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	p.applyDefaults()
	return p
}

func (p *Pipeline) applyDefaults() {
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	if p.registry == nil {
		p.registry = generator.NewRegistry()
	}
	var errs []error
	for _, gen := range p.pending {
		if err := p.registry.Register(gen); err != nil {
			errs = append(errs, err)
		}
	}
	p.pending = nil

	if p.policy != FailFast && p.policy != CollectAll {
		errs = append(errs, fmt.Errorf("pipeline: unknown policy %d", int(p.policy)))
	}
	if !p.skipBuiltins {
		p.builtins = []generator.Generator{rules.NameRule()}
		for _, gen := range p.builtins {
			if p.registry.Has(gen.Name()) {
				errs = append(errs, fmt.Errorf("pipeline: generator %q is reserved for the built-in rule", gen.Name()))
			}
		}
	}
	for name := range p.deps {
		if name == "" {
			errs = append(errs, errors.New("pipeline: dependency declaration requires a generator name"))
			continue
		}
		if !p.registry.Has(name) {
			errs = append(errs, fmt.Errorf("pipeline: dependencies declared for unknown generator %q", name))
		}
	}
	if len(errs) > 0 {
		p.initialiseErr = fmt.Errorf("pipeline: initialise: %w", errors.Join(errs...))
	}
}

// Registry exposes the generator registry.
func (p *Pipeline) Registry() *generator.Registry {
	return p.registry
}

// Policy reports the configured failure policy.
func (p *Pipeline) Policy() Policy {
	return p.policy
}

// Dependencies returns the merged dependency declarations keyed by generator
// name: option declarations first, then those the generator declares itself.
func (p *Pipeline) Dependencies() map[string][]string {
	out := make(map[string][]string)
	for name, ids := range p.deps {
		out[name] = append(out[name], ids...)
	}
	for _, gen := range p.registry.All() {
		if ids := generator.DependenciesOf(gen); len(ids) > 0 {
			out[gen.Name()] = append(out[gen.Name()], ids...)
		}
	}
	return out
}

// Check validates every dependency declaration against the catalog without
// touching a backend.
func (p *Pipeline) Check() error {
	if err := p.initialiseErr; err != nil {
		return err
	}
	deps := p.Dependencies()
	if len(deps) == 0 {
		return nil
	}
	if p.catalog == nil {
		return errors.New("pipeline: dependency declarations require a catalog")
	}
	if err := p.catalog.CheckDependencies(deps); err != nil {
		return fmt.Errorf("pipeline: check dependencies: %w", err)
	}
	return nil
}

// Dispatch freezes backend, snapshots it and hands the snapshot to the
// built-in rules followed by every registered generator. The returned Report
// holds each generator's output; the error, when not nil, is either a setup
// failure (dependency check, context) or a *DispatchError.
func (p *Pipeline) Dispatch(ctx context.Context, backend *builder.Backend) (Report, error) {
	report := Report{Policy: p.policy}
	if ctx == nil {
		return report, errors.New("pipeline: context is required")
	}
	if backend == nil {
		return report, errors.New("pipeline: backend is required")
	}
	report.Session = backend.Session()
	if err := ctx.Err(); err != nil {
		return report, err
	}
	if err := p.Check(); err != nil {
		return report, err
	}
	if err := backend.Err(); err != nil {
		return report, fmt.Errorf("pipeline: backend: %w", err)
	}

	backend.Freeze()
	tree := backend.Snapshot()

	generators := append(append([]generator.Generator(nil), p.builtins...), p.registry.All()...)
	logger := p.logger.With(
		zap.String("session", report.Session),
		zap.String("policy", p.policy.String()),
	)
	logger.Info("dispatch started", zap.Int("generators", len(generators)))
	started := time.Now()

	var (
		stopped bool
		ctxErr  error
	)
	for _, gen := range generators {
		name := gen.Name()
		if stopped {
			report.Results = append(report.Results, Result{Generator: name, Status: StatusSkipped})
			continue
		}
		if err := ctx.Err(); err != nil {
			ctxErr = err
			stopped = true
			report.Results = append(report.Results, Result{Generator: name, Status: StatusSkipped})
			continue
		}

		res := p.run(ctx, gen, tree)
		report.Results = append(report.Results, res)
		if res.Status == StatusFailed {
			logger.Warn("generator failed",
				zap.String("generator", name),
				zap.String("path", generator.PathOf(res.Err).String()),
				zap.Error(res.Err),
			)
			if p.policy == FailFast {
				stopped = true
			}
			continue
		}
		logger.Debug("generator succeeded", zap.String("generator", name), zap.Int("bytes", len(res.Output)))
	}

	err := report.Err()
	logger.Info("dispatch finished",
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("failures", len(report.Failures())),
	)
	if ctxErr != nil {
		if err != nil {
			return report, errors.Join(ctxErr, err)
		}
		return report, ctxErr
	}
	return report, err
}

func (p *Pipeline) run(ctx context.Context, gen generator.Generator, tree builder.Tree) (res Result) {
	res.Generator = gen.Name()
	var buf bytes.Buffer
	defer func() {
		if recovered := recover(); recovered != nil {
			res.Status = StatusFailed
			res.Output = buf.Bytes()
			res.Err = &generator.GenerationError{Err: fmt.Errorf("panic: %v", recovered)}
		}
	}()

	if err := gen.Generate(ctx, tree, &buf); err != nil {
		res.Status = StatusFailed
		res.Output = buf.Bytes()
		res.Err = generator.Classify(err)
		return res
	}
	res.Status = StatusSucceeded
	res.Output = buf.Bytes()
	return res
}
