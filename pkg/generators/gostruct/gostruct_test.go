package gostruct_test

import (
	"bytes"
	"errors"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-configger/pkg/builder"
	"github.com/goliatone/go-configger/pkg/generator"
	"github.com/goliatone/go-configger/pkg/generators/gostruct"
	"github.com/goliatone/go-configger/pkg/schema"
	"github.com/goliatone/go-configger/pkg/testsupport"
)

// normalisedLines collapses runs of whitespace so assertions do not depend
// on gofmt column alignment.
func normalisedLines(src string) []string {
	var out []string
	for _, line := range strings.Split(src, "\n") {
		if fields := strings.Fields(line); len(fields) > 0 {
			out = append(out, strings.Join(fields, " "))
		}
	}
	return out
}

func TestGoStruct_Sample(t *testing.T) {
	gen, err := gostruct.New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	var buf bytes.Buffer
	if err := gen.Generate(testsupport.Context(), testsupport.SampleTree(t), &buf); err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := parser.ParseFile(token.NewFileSet(), "models.go", buf.Bytes(), parser.ParseComments); err != nil {
		t.Fatalf("generated source does not parse: %v\n%s", err, buf.String())
	}

	want := []string{
		"// Code generated by configger. DO NOT EDIT.",
		"// Source: shop",
		"package models",
		"import (",
		`"time"`,
		")",
		"// User maps the user model: Registered <b>customer</b><script>alert(1)</script>",
		"type User struct {",
		"ID int64 `json:\"id\"`",
		"// Login address",
		"Email string `json:\"email\"`",
		"CreatedAt time.Time `json:\"created_at\"`",
		"DeletedAt *time.Time `json:\"deleted_at,omitempty\"`",
		"}",
		"// Order maps the order model.",
		"type Order struct {",
		"ID int64 `json:\"id\"`",
		"UserID int64 `json:\"user_id\"`",
		"Note *string `json:\"note,omitempty\"`",
		"}",
	}
	if diff := cmp.Diff(want, normalisedLines(buf.String())); diff != "" {
		t.Fatalf("generated source mismatch (-want +got):\n%s", diff)
	}
}

func TestGoStruct_OptionsAndImports(t *testing.T) {
	gen, err := gostruct.New(
		gostruct.WithPackage("store"),
		gostruct.WithType("uuid", gostruct.GoType{Expr: "uuid.UUID", Import: "github.com/google/uuid"}),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	tree := builder.Tree{Schemas: []builder.SchemaNode{{
		Name: "s",
		Models: []builder.ModelNode{{Name: "token", Fields: []builder.FieldNode{
			{Name: "key", Type: "uuid"},
			{Name: "issued_at", Type: builder.FieldTypeTimestamp},
		}}},
	}}}

	var buf bytes.Buffer
	if err := gen.Generate(testsupport.Context(), tree, &buf); err != nil {
		t.Fatalf("generate: %v", err)
	}
	lines := normalisedLines(buf.String())
	want := []string{
		"package store",
		"import (",
		`"github.com/google/uuid"`,
		`"time"`,
		")",
		"// Token maps the token model.",
		"type Token struct {",
		"Key uuid.UUID `json:\"key\"`",
		"IssuedAt time.Time `json:\"issued_at\"`",
		"}",
	}
	if diff := cmp.Diff(want, lines[2:]); diff != "" {
		t.Fatalf("generated source mismatch (-want +got):\n%s", diff)
	}
}

func TestGoStruct_Header(t *testing.T) {
	gen, err := gostruct.New(
		gostruct.WithPackage("store"),
		gostruct.WithHeader("Built by {{ generator }} for {{ package }}.\n\nSchemas: {{ source|upper }}"),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	var buf bytes.Buffer
	if err := gen.Generate(testsupport.Context(), testsupport.SampleTree(t), &buf); err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := []string{
		"// Built by gostruct for store.",
		"// Schemas: SHOP",
		"package store",
	}
	if diff := cmp.Diff(want, normalisedLines(buf.String())[:3]); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}

	if _, err := gostruct.New(gostruct.WithHeader("{% if %}")); err == nil {
		t.Fatalf("expected a broken header template to be rejected")
	}
}

func TestGoStruct_TemplateDirOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	override := "{% autoescape off %}package {{ package }}\n\n// {{ generator }} renders {{ models|length }} models\n{% endautoescape %}"
	if err := os.WriteFile(filepath.Join(dir, "templates", "gostruct.tmpl"), []byte(override), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	gen, err := gostruct.New(gostruct.WithTemplateDir(dir))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	var buf bytes.Buffer
	if err := gen.Generate(testsupport.Context(), testsupport.SampleTree(t), &buf); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if diff := cmp.Diff("package models\n\n// gostruct renders 2 models\n", buf.String()); diff != "" {
		t.Fatalf("override mismatch (-want +got):\n%s", diff)
	}

	// An empty dir falls through to the embedded template.
	gen, err = gostruct.New(gostruct.WithTemplateDir(t.TempDir()))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	buf.Reset()
	if err := gen.Generate(testsupport.Context(), testsupport.SampleTree(t), &buf); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := normalisedLines(buf.String())[0]; got != "// Code generated by configger. DO NOT EDIT." {
		t.Fatalf("expected embedded template, got first line %q", got)
	}

	if _, err := gostruct.New(gostruct.WithTemplates(nil)); err == nil {
		t.Fatalf("expected an error without any templates")
	}
	if _, err := gostruct.New(gostruct.WithTemplates(nil), gostruct.WithTemplateDir(dir)); err != nil {
		t.Fatalf("template dir alone should be enough, got %v", err)
	}
}

func TestGoStruct_ValidationErrors(t *testing.T) {
	gen, err := gostruct.New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	unsupported := builder.Tree{Schemas: []builder.SchemaNode{{
		Name:   "s",
		Models: []builder.ModelNode{{Name: "m", Fields: []builder.FieldNode{{Name: "blob", Type: "binary"}}}},
	}}}
	err = gen.Generate(testsupport.Context(), unsupported, &bytes.Buffer{})
	if !errors.Is(err, generator.ErrValidation) || err.Error() != "Field blob has unsupported type binary" {
		t.Fatalf("unexpected error %v", err)
	}

	collision := builder.Tree{Schemas: []builder.SchemaNode{
		{Name: "a", Models: []builder.ModelNode{{Name: "user"}}},
		{Name: "b", Models: []builder.ModelNode{{Name: "User"}}},
	}}
	err = gen.Generate(testsupport.Context(), collision, &bytes.Buffer{})
	if diff := cmp.Diff(builder.Path{Schema: "b", Model: "User"}, generator.PathOf(err)); diff != "" {
		t.Fatalf("collision path mismatch (-want +got):\n%s", diff)
	}

	fieldCollision := builder.Tree{Schemas: []builder.SchemaNode{{
		Name: "s",
		Models: []builder.ModelNode{{Name: "m", Fields: []builder.FieldNode{
			{Name: "user_id", Type: builder.FieldTypeInteger},
			{Name: "user-id", Type: builder.FieldTypeInteger},
		}}},
	}}}
	var out bytes.Buffer
	err = gen.Generate(testsupport.Context(), fieldCollision, &out)
	if !errors.Is(err, generator.ErrValidation) || err.Error() != "Field user-id collides with user_id as Go field UserID" {
		t.Fatalf("unexpected error %v", err)
	}
	if diff := cmp.Diff(builder.Path{Schema: "s", Model: "m", Field: "user-id"}, generator.PathOf(err)); diff != "" {
		t.Fatalf("field collision path mismatch (-want +got):\n%s", diff)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output on collision, got:\n%s", out.String())
	}

	unnamed := builder.Tree{Schemas: []builder.SchemaNode{{
		Name:   "s",
		Models: []builder.ModelNode{{Name: "m", Fields: []builder.FieldNode{{Name: "__", Type: builder.FieldTypeString}}}},
	}}}
	err = gen.Generate(testsupport.Context(), unnamed, &bytes.Buffer{})
	if err == nil || err.Error() != "Field __ has no Go identifier" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestGoStruct_DeclaresNullableDependency(t *testing.T) {
	gen, err := gostruct.New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	deps := map[string][]string{gen.Name(): generator.DependenciesOf(gen)}
	if err := schema.DefaultCatalog().CheckDependencies(deps); err != nil {
		t.Fatalf("expected dependencies to satisfy forced extensions, got %v", err)
	}
}
