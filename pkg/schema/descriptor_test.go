package schema_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-configger/pkg/schema"
)

func TestFieldsOf_Deterministic(t *testing.T) {
	first := schema.FieldsOf(schema.SchemaDef{})
	second := schema.FieldsOf(schema.SchemaDef{})

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("descriptor lists differ (-first +second):\n%s", diff)
	}

	first[0].Name = "mutated"
	third := schema.FieldsOf(schema.SchemaDef{})
	if third[0].Name != "name" {
		t.Fatalf("mutating a returned list leaked into later calls: %q", third[0].Name)
	}
}

func TestRequiredOnCreate(t *testing.T) {
	fields := []schema.Descriptor{
		schema.Leaf("name", true),
		schema.Leaf("desc", false),
		schema.Node("tags", true, schema.Leaf("label", true)),
		schema.Leaf("slug", true),
	}

	want := []string{"name", "slug"}
	if diff := cmp.Diff(want, schema.RequiredOnCreate(fields)); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
}

func TestWalk_VisitsInOrderWithPaths(t *testing.T) {
	fields := []schema.Descriptor{
		schema.Leaf("name", true),
		schema.Node("owner", false,
			schema.Leaf("email", true),
			schema.Node("phones", true, schema.Leaf("number", false)),
		),
		schema.Leaf("age", false),
	}

	var paths []string
	schema.Walk(fields, func(path string, d schema.Descriptor) bool {
		paths = append(paths, path)
		return true
	})

	want := []string{"name", "owner", "owner.email", "owner.phones", "owner.phones.number", "age"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("walk order mismatch (-want +got):\n%s", diff)
	}
}

func TestWalk_SkipsChildren(t *testing.T) {
	fields := []schema.Descriptor{
		schema.Node("owner", false, schema.Leaf("email", true)),
		schema.Leaf("age", false),
	}

	var paths []string
	schema.Walk(fields, func(path string, d schema.Descriptor) bool {
		paths = append(paths, path)
		return d.IsLeaf()
	})

	if diff := cmp.Diff([]string{"owner", "age"}, paths); diff != "" {
		t.Fatalf("walk mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldSetValidate(t *testing.T) {
	tests := []struct {
		name    string
		set     schema.FieldSet
		wantErr bool
	}{
		{name: "valid", set: schema.FieldDef{}.Describe()},
		{name: "missing type id", set: schema.FieldSet{Fields: []schema.Descriptor{schema.Leaf("a", false)}}, wantErr: true},
		{name: "duplicate", set: schema.FieldSet{TypeID: "x", Fields: []schema.Descriptor{schema.Leaf("a", false), schema.Leaf("a", true)}}, wantErr: true},
		{name: "nested duplicate", set: schema.FieldSet{TypeID: "x", Fields: []schema.Descriptor{schema.Node("n", false, schema.Leaf("a", false), schema.Leaf("a", false))}}, wantErr: true},
		{name: "empty name", set: schema.FieldSet{TypeID: "x", Fields: []schema.Descriptor{schema.Leaf(" ", false)}}, wantErr: true},
		{name: "self extension", set: schema.FieldSet{TypeID: "x", Extends: "x"}, wantErr: true},
		{name: "forced without base", set: schema.FieldSet{TypeID: "x", ForcedExtension: true}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.set.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
