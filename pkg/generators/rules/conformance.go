package rules

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/goliatone/go-configger/pkg/builder"
	"github.com/goliatone/go-configger/pkg/generator"
	"github.com/goliatone/go-configger/pkg/schema"
)

// ConformanceName is the generator name of Conformance.
const ConformanceName = "conformance"

// LevelTypes maps each builder level to the field-set type id describing it.
type LevelTypes struct {
	Schema string
	Model  string
	Field  string
}

// DefaultLevels describes the tree with the built-in definitions.
var DefaultLevels = LevelTypes{
	Schema: schema.TypeSchema,
	Model:  schema.TypeModel,
	Field:  schema.TypeNullableField,
}

// Leaf names the builder populates from handle setters rather than
// attributes.
const (
	leafName         = "name"
	leafDesc         = "desc"
	leafDatabaseType = "database_type"
	leafType         = "type"
)

type level struct {
	label    string
	leaves   map[string]struct{}
	required []string
}

type conformance struct {
	levels LevelTypes
	schema level
	model  level
	field  level
}

// Conformance checks the tree against the resolved field-sets of levels:
// every field attribute must be a declared leaf and every required-on-create
// leaf must be set. The definitions are resolved once, here.
func Conformance(catalog *schema.Catalog, levels LevelTypes) (generator.Generator, error) {
	if catalog == nil {
		return nil, fmt.Errorf("rules: %s: catalog is required", ConformanceName)
	}
	c := &conformance{levels: levels}
	var err error
	if c.schema, err = resolveLevel(catalog, "Schema", levels.Schema); err != nil {
		return nil, err
	}
	if c.model, err = resolveLevel(catalog, "Model", levels.Model); err != nil {
		return nil, err
	}
	if c.field, err = resolveLevel(catalog, "Field", levels.Field); err != nil {
		return nil, err
	}
	return c, nil
}

func resolveLevel(catalog *schema.Catalog, label, typeID string) (level, error) {
	def, err := catalog.Resolve(typeID)
	if err != nil {
		return level{}, fmt.Errorf("rules: %s: %w", ConformanceName, err)
	}
	out := level{label: label, leaves: make(map[string]struct{}), required: schema.RequiredOnCreate(def.Fields)}
	for _, d := range def.Fields {
		if d.IsLeaf() {
			out.leaves[d.Name] = struct{}{}
		}
	}
	return out, nil
}

func (c *conformance) Name() string { return ConformanceName }

func (c *conformance) Dependencies() []string {
	return []string{c.levels.Schema, c.levels.Model, c.levels.Field}
}

func (c *conformance) Generate(_ context.Context, tree builder.Tree, _ io.Writer) error {
	return tree.Walk(builder.Visitor{
		Schema: func(path builder.Path, s builder.SchemaNode) error {
			return c.schema.check(path, s.Name, map[string]bool{
				leafName:         s.Name != "",
				leafDesc:         s.Description != "",
				leafDatabaseType: s.DatabaseType != "",
			})
		},
		Model: func(path builder.Path, m builder.ModelNode) error {
			return c.model.check(path, m.Name, map[string]bool{
				leafName: m.Name != "",
				leafDesc: m.Description != "",
			})
		},
		Field: func(path builder.Path, f builder.FieldNode) error {
			keys := make([]string, 0, len(f.Attributes))
			for key := range f.Attributes {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				if _, ok := c.field.leaves[key]; !ok {
					return generator.Validationf(path, "Field %s sets undeclared attribute %s", f.Name, key)
				}
			}
			present := map[string]bool{
				leafName: f.Name != "",
				leafDesc: f.Description != "",
				leafType: f.Type != "",
			}
			for _, key := range keys {
				present[key] = true
			}
			return c.field.check(path, f.Name, present)
		},
	})
}

func (l level) check(path builder.Path, name string, present map[string]bool) error {
	for _, leaf := range l.required {
		if !present[leaf] {
			return generator.Validationf(path, "%s %s is missing required %s", l.label, name, leaf)
		}
	}
	return nil
}
