package configger_test

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	configger "github.com/goliatone/go-configger"
	"github.com/goliatone/go-configger/pkg/builder"
	"github.com/goliatone/go-configger/pkg/generator"
	"github.com/goliatone/go-configger/pkg/pipeline"
	"github.com/goliatone/go-configger/pkg/testsupport"
)

func TestGenerate_Sample(t *testing.T) {
	report, err := configger.Generate(context.Background(), testsupport.SampleBackend(t))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var names []string
	for _, res := range report.Results {
		if res.Status != pipeline.StatusSucceeded {
			t.Fatalf("generator %q: %s %v", res.Generator, res.Status, res.Err)
		}
		names = append(names, res.Generator)
	}
	want := []string{"name-rule", "conformance", "console", "gostruct", "openapi", "manifest", "htmldoc"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("generator order mismatch (-want +got):\n%s", diff)
	}
	if !strings.HasPrefix(string(report.Output("console")), "Schema: shop\n") {
		t.Fatalf("unexpected console output %q", report.Output("console"))
	}
	if report.Session != testsupport.SampleSession {
		t.Fatalf("unexpected session %q", report.Session)
	}
}

func TestGenerate_UnderscoreFieldFailsFast(t *testing.T) {
	backend := configger.NewBackend()
	s, _ := backend.NewSchema("s")
	m, _ := s.NewModel("m")
	m.NewInt("id")
	m.NewString("_secret")

	report, err := configger.Generate(context.Background(), backend)
	if !errors.Is(err, generator.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, res := range report.Results[1:] {
		if res.Status != pipeline.StatusSkipped {
			t.Fatalf("expected %q to be skipped, got %s", res.Generator, res.Status)
		}
	}

	_, err = configger.Generate(context.Background(), testsupport.SampleBackend(t), pipeline.WithPolicy(pipeline.CollectAll))
	if err != nil {
		t.Fatalf("collect-all on clean tree: %v", err)
	}
}

func TestGenerate_RejectsNilBackend(t *testing.T) {
	if _, err := configger.Generate(context.Background(), nil); err == nil {
		t.Fatalf("expected nil backend to be rejected")
	}
}

func TestNewPipeline(t *testing.T) {
	p := configger.NewPipeline(pipeline.WithoutBuiltinRules())
	report, err := p.Dispatch(context.Background(), builder.NewBackend())
	if err != nil || len(report.Results) != 0 {
		t.Fatalf("expected empty dispatch, got %v %v", report.Results, err)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	templates := configger.EmbeddedTemplates()
	for name, path := range map[string]string{
		"gostruct": "templates/gostruct.tmpl",
		"htmldoc":  "templates/page.tmpl",
	} {
		if _, err := fs.Stat(templates[name], path); err != nil {
			t.Fatalf("%s template %s: %v", name, path, err)
		}
	}
}
