package view_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-configger/pkg/builder"
	"github.com/goliatone/go-configger/pkg/view"
)

func sampleTree() builder.Tree {
	return builder.Tree{
		Session: "session",
		Schemas: []builder.SchemaNode{
			{
				Name:         "discordbot",
				Description:  "bot",
				DatabaseType: "postgres",
				Models: []builder.ModelNode{
					{
						Name: "alarm",
						Fields: []builder.FieldNode{
							{Name: "id", Type: builder.FieldTypeInteger, Description: "pk"},
							{Name: "message", Type: builder.FieldTypeString, Attributes: map[string]any{"nullable": true}},
						},
					},
				},
			},
		},
	}
}

func TestProject_Schemas(t *testing.T) {
	if err := view.Check[view.Schemas](); err != nil {
		t.Fatalf("check: %v", err)
	}

	got := view.Project[view.Schemas](sampleTree())
	want := view.Schemas{
		{
			Name: "discordbot",
			Models: []view.ModelView{
				{
					Name: "alarm",
					Fields: []view.FieldView{
						{Name: "id", Type: "integer"},
						{Name: "message", Type: "string"},
					},
				},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("projection mismatch (-want +got):\n%s", diff)
	}
}

type renamedField struct {
	Label string         `view:"Name"`
	Kind  string         `view:"Type"`
	Notes string         `view:"-"`
	Attrs map[string]any `view:"Attributes"`
}

type renamedModel struct {
	Name   string
	Fields []*renamedField
}

type renamedSchema struct {
	Name   string
	DB     string `view:"DatabaseType"`
	Models []renamedModel
}

type renamedTree struct {
	Schemas []renamedSchema
}

func TestProject_TagsPointersAndMaps(t *testing.T) {
	if err := view.Check[renamedTree](); err != nil {
		t.Fatalf("check: %v", err)
	}

	tree := sampleTree()
	got := view.Project[renamedTree](tree)

	schema := got.Schemas[0]
	if schema.DB != "postgres" || schema.Name != "discordbot" {
		t.Fatalf("unexpected schema projection: %+v", schema)
	}
	fields := schema.Models[0].Fields
	if len(fields) != 2 || fields[0].Label != "id" || fields[0].Kind != "integer" || fields[0].Notes != "" {
		t.Fatalf("unexpected field projection: %+v", fields[0])
	}
	if fields[0].Attrs != nil {
		t.Fatalf("expected nil attributes for id, got %v", fields[0].Attrs)
	}
	if fields[1].Attrs["nullable"] != true {
		t.Fatalf("expected nullable attribute, got %v", fields[1].Attrs)
	}

	fields[1].Attrs["nullable"] = false
	if tree.Schemas[0].Models[0].Fields[1].Attributes["nullable"] != true {
		t.Fatalf("view mutation leaked into tree")
	}
}

type onlyNames struct {
	Schemas []struct {
		Name string
	}
}

func TestProject_OmitsUndeclaredFields(t *testing.T) {
	if err := view.Check[onlyNames](); err != nil {
		t.Fatalf("check: %v", err)
	}
	got := view.Project[onlyNames](sampleTree())
	if len(got.Schemas) != 1 || got.Schemas[0].Name != "discordbot" {
		t.Fatalf("unexpected projection: %+v", got)
	}
}

func TestProject_EmptyTree(t *testing.T) {
	got := view.Project[view.Schemas](builder.Tree{})
	if got != nil {
		t.Fatalf("expected nil view for empty tree, got %+v", got)
	}
}

func TestCheck_RejectsMalformedViews(t *testing.T) {
	type unknownField struct {
		Schemas []struct {
			Owner string
		}
	}
	type wrongKind struct {
		Schemas []struct {
			Name int
		}
	}
	type typedAttributes struct {
		Schemas []struct {
			Models []struct {
				Fields []struct {
					Attributes map[string]bool
				}
			}
		}
	}
	type sliceForStruct struct {
		Session []string
	}

	checks := map[string]error{
		"unknown field":    view.Check[unknownField](),
		"wrong kind":       view.Check[wrongKind](),
		"typed attributes": view.Check[typedAttributes](),
		"slice for string": view.Check[sliceForStruct](),
	}
	for name, err := range checks {
		if err == nil {
			t.Errorf("%s: expected check error", name)
		}
	}
}
