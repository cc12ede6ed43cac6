package builder

import (
	"maps"

	"github.com/goliatone/go-configger/internal/arena"
)

// Tree is a read-only snapshot of a Backend: plain nested records in creation
// order, carrying no ownership back into the Backend.
type Tree struct {
	Session string       `json:"session,omitempty" yaml:"session,omitempty"`
	Schemas []SchemaNode `json:"schemas" yaml:"schemas"`
}

// SchemaNode is the snapshot of a schema.
type SchemaNode struct {
	Name         string      `json:"name" yaml:"name"`
	Description  string      `json:"description,omitempty" yaml:"description,omitempty"`
	DatabaseType string      `json:"databaseType,omitempty" yaml:"databaseType,omitempty"`
	Models       []ModelNode `json:"models" yaml:"models"`
}

// ModelNode is the snapshot of a model.
type ModelNode struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []FieldNode `json:"fields" yaml:"fields"`
}

// FieldNode is the snapshot of a field.
type FieldNode struct {
	Name        string         `json:"name" yaml:"name"`
	Type        FieldType      `json:"type" yaml:"type"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Attributes  map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Snapshot copies the current tree. Generators receive snapshots so they
// never hold references into the Backend.
func (b *Backend) Snapshot() Tree {
	b.mu.RLock()
	defer b.mu.RUnlock()

	tree := Tree{
		Session: b.session,
		Schemas: make([]SchemaNode, 0, len(b.schemas)),
	}
	for _, schemaID := range b.schemas {
		s := b.mustGet(schemaID)
		schemaNode := SchemaNode{
			Name:         s.name,
			Description:  s.description,
			DatabaseType: s.databaseType,
			Models:       make([]ModelNode, 0, len(s.children)),
		}
		for _, modelID := range s.children {
			m := b.mustGet(modelID)
			modelNode := ModelNode{
				Name:        m.name,
				Description: m.description,
				Fields:      make([]FieldNode, 0, len(m.children)),
			}
			for _, fieldID := range m.children {
				f := b.mustGet(fieldID)
				fieldNode := FieldNode{
					Name:        f.name,
					Type:        f.fieldType,
					Description: f.description,
				}
				if len(f.attributes) > 0 {
					fieldNode.Attributes = maps.Clone(f.attributes)
				}
				modelNode.Fields = append(modelNode.Fields, fieldNode)
			}
			schemaNode.Models = append(schemaNode.Models, modelNode)
		}
		tree.Schemas = append(tree.Schemas, schemaNode)
	}
	return tree
}

func (b *Backend) mustGet(id arena.ID) node {
	n, ok := b.nodes.Get(id)
	if !ok {
		panic("builder: dangling node id")
	}
	return *n
}

// Visitor receives the nodes of a Tree. Nil callbacks are skipped; a non-nil
// error stops the walk and is returned by Walk.
type Visitor struct {
	Schema func(path Path, schema SchemaNode) error
	Model  func(path Path, model ModelNode) error
	Field  func(path Path, field FieldNode) error
}

// Walk visits every node depth-first in creation order.
func (t Tree) Walk(v Visitor) error {
	for _, s := range t.Schemas {
		schemaPath := Path{Schema: s.Name}
		if v.Schema != nil {
			if err := v.Schema(schemaPath, s); err != nil {
				return err
			}
		}
		for _, m := range s.Models {
			modelPath := Path{Schema: s.Name, Model: m.Name}
			if v.Model != nil {
				if err := v.Model(modelPath, m); err != nil {
					return err
				}
			}
			if v.Field == nil {
				continue
			}
			for _, f := range m.Fields {
				if err := v.Field(Path{Schema: s.Name, Model: m.Name, Field: f.Name}, f); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Bool reads a boolean attribute, accepting bool values and the strings
// "true"/"false".
func (f FieldNode) Bool(key string) bool {
	switch v := f.Attributes[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}
