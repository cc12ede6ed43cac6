package generator_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-configger/pkg/builder"
	"github.com/goliatone/go-configger/pkg/generator"
	"github.com/goliatone/go-configger/pkg/view"
)

func TestNew_ProjectsView(t *testing.T) {
	gen, err := generator.New("names", func(_ context.Context, schemas view.Schemas, out io.Writer) error {
		for _, s := range schemas {
			for _, m := range s.Models {
				fmt.Fprintf(out, "%s.%s\n", s.Name, m.Name)
			}
		}
		return nil
	}, generator.WithDependencies("schema", " ", "model"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	tree := builder.Tree{Schemas: []builder.SchemaNode{{Name: "s", Models: []builder.ModelNode{{Name: "a"}, {Name: "b"}}}}}

	var buf bytes.Buffer
	if err := gen.Generate(context.Background(), tree, &buf); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := buf.String(); got != "s.a\ns.b\n" {
		t.Fatalf("unexpected output %q", got)
	}
	if diff := cmp.Diff([]string{"schema", "model"}, generator.DependenciesOf(gen)); diff != "" {
		t.Fatalf("dependencies mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_RejectsInvalidInput(t *testing.T) {
	type badView struct {
		Schemas []struct{ Missing string }
	}
	noop := func(context.Context, badView, io.Writer) error { return nil }

	if _, err := generator.New("bad", noop); err == nil {
		t.Fatalf("expected malformed view to be rejected")
	}
	if _, err := generator.New(" ", func(context.Context, view.Schemas, io.Writer) error { return nil }); err == nil {
		t.Fatalf("expected empty name to be rejected")
	}
	if _, err := generator.New[view.Schemas]("nil", nil); err == nil {
		t.Fatalf("expected nil function to be rejected")
	}
}

func TestClassify(t *testing.T) {
	validation := generator.Validationf(builder.Path{Schema: "s", Model: "m", Field: "_x"}, "Field %s starts with an underscore", "_x")
	if got := generator.Classify(validation); got != error(validation) {
		t.Fatalf("validation errors must pass through")
	}
	if validation.Error() != "Field _x starts with an underscore" {
		t.Fatalf("unexpected message %q", validation.Error())
	}
	if !errors.Is(validation, generator.ErrValidation) {
		t.Fatalf("expected ErrValidation match")
	}

	plain := errors.New("disk full")
	classified := generator.Classify(plain)
	var genErr *generator.GenerationError
	if !errors.As(classified, &genErr) || !errors.Is(classified, plain) || !errors.Is(classified, generator.ErrGeneration) {
		t.Fatalf("expected plain errors to become GenerationError, got %v", classified)
	}
	if generator.Classify(nil) != nil {
		t.Fatalf("nil must stay nil")
	}

	failure := &generator.Failure{Generator: "rules", Err: validation}
	if got := generator.PathOf(failure).String(); got != "s.m._x" {
		t.Fatalf("unexpected path %q", got)
	}
	if failure.Error() != `generator "rules": Field _x starts with an underscore` {
		t.Fatalf("unexpected failure message %q", failure.Error())
	}

	located := &generator.GenerationError{Path: builder.Path{Schema: "s"}, Err: plain}
	if located.Error() != "generation failed at s: disk full" {
		t.Fatalf("unexpected message %q", located.Error())
	}
}

func TestNewFunc(t *testing.T) {
	var seen builder.Tree
	gen := generator.NewFunc("tree", func(_ context.Context, tree builder.Tree, _ io.Writer) error {
		seen = tree
		return nil
	})
	tree := builder.Tree{Session: "x"}
	if err := gen.Generate(context.Background(), tree, io.Discard); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if seen.Session != "x" || gen.Name() != "tree" {
		t.Fatalf("tree not forwarded")
	}
	if generator.DependenciesOf(gen) != nil {
		t.Fatalf("expected no dependencies")
	}
}
