package manifest_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-configger/pkg/builder"
	"github.com/goliatone/go-configger/pkg/generators/manifest"
	"github.com/goliatone/go-configger/pkg/testsupport"
)

func TestManifest_Sample(t *testing.T) {
	tree := testsupport.SampleTree(t)

	var buf bytes.Buffer
	if err := manifest.New().Generate(testsupport.Context(), tree, &buf); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "session: "+testsupport.SampleSession+"\nsummary:\n  schemas: 1\n  models: 2\n  fields: 7\n") {
		t.Fatalf("unexpected manifest header:\n%s", buf.String())
	}

	var got manifest.Manifest
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if diff := cmp.Diff(manifest.Build(tree), got); diff != "" {
		t.Fatalf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestManifest_WithoutSession(t *testing.T) {
	tree := builder.Tree{Session: "abc"}
	var buf bytes.Buffer
	if err := manifest.New(manifest.WithoutSession()).Generate(testsupport.Context(), tree, &buf); err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := "summary:\n  schemas: 0\n  models: 0\n  fields: 0\nschemas: []\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestManifest_WithIndent(t *testing.T) {
	tree := builder.Tree{Session: "abc"}
	var buf bytes.Buffer
	gen := manifest.New(manifest.WithoutSession(), manifest.WithIndent(4))
	if err := gen.Generate(testsupport.Context(), tree, &buf); err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := "summary:\n    schemas: 0\n    models: 0\n    fields: 0\nschemas: []\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestManifest_JSONFixtureMatchesSample(t *testing.T) {
	loaded, err := testsupport.LoadTree(filepath.Join("testdata", "shop.json"))
	if err != nil {
		t.Fatalf("load tree: %v", err)
	}
	sample := testsupport.SampleTree(t)
	if diff := cmp.Diff(sample, loaded); diff != "" {
		t.Fatalf("fixture mismatch (-want +got):\n%s", diff)
	}

	var fromSample, fromFixture bytes.Buffer
	gen := manifest.New()
	if err := gen.Generate(testsupport.Context(), sample, &fromSample); err != nil {
		t.Fatalf("generate sample: %v", err)
	}
	if err := gen.Generate(testsupport.Context(), loaded, &fromFixture); err != nil {
		t.Fatalf("generate fixture: %v", err)
	}
	if diff := cmp.Diff(fromSample.String(), fromFixture.String()); diff != "" {
		t.Fatalf("manifest mismatch (-want +got):\n%s", diff)
	}

	if _, err := testsupport.LoadTree(filepath.Join("testdata", "missing.json")); err == nil {
		t.Fatalf("expected an error for a missing fixture")
	}
}

func TestBuild_Summary(t *testing.T) {
	got := manifest.Build(testsupport.SampleTree(t)).Summary
	if diff := cmp.Diff(manifest.Summary{Schemas: 1, Models: 2, Fields: 7}, got); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}
