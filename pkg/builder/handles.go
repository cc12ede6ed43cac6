package builder

import (
	"fmt"
	"maps"
	"strings"

	"github.com/goliatone/go-configger/internal/arena"
)

// Schema is a handle to a schema node. The zero value is detached and all of
// its accessors return zero values.
type Schema struct {
	b  *Backend
	id arena.ID
}

// Name returns the schema name.
func (s Schema) Name() string {
	n, _ := s.b.view(s.id)
	return n.name
}

// Description returns the schema description.
func (s Schema) Description() string {
	n, _ := s.b.view(s.id)
	return n.description
}

// DatabaseType returns the database flavour the schema targets.
func (s Schema) DatabaseType() string {
	n, _ := s.b.view(s.id)
	return n.databaseType
}

// SetDescription sets the schema description.
func (s Schema) SetDescription(text string) Schema {
	s.b.update(s.id, "set description", func(n *node) { n.description = text })
	return s
}

// SetDatabaseType records the database flavour the schema targets.
func (s Schema) SetDatabaseType(databaseType string) Schema {
	s.b.update(s.id, "set database type", func(n *node) { n.databaseType = strings.TrimSpace(databaseType) })
	return s
}

// NewModel appends a model named name and returns its handle.
func (s Schema) NewModel(name string) (Model, error) {
	if s.b == nil {
		return Model{}, fmt.Errorf("builder: new model %q: detached schema handle", name)
	}
	id, err := s.b.appendNode(s.id, node{kind: kindModel, name: name})
	if err != nil {
		return Model{}, err
	}
	return Model{b: s.b, id: id}, nil
}

// Models returns the model handles in creation order.
func (s Schema) Models() []Model {
	ids := s.b.children(s.id)
	out := make([]Model, len(ids))
	for i, id := range ids {
		out[i] = Model{b: s.b, id: id}
	}
	return out
}

// Path returns the schema's position in the tree.
func (s Schema) Path() Path {
	if s.b == nil {
		return Path{}
	}
	return s.b.path(s.id)
}

// Model is a handle to a model node.
type Model struct {
	b  *Backend
	id arena.ID
}

// Name returns the model name.
func (m Model) Name() string {
	n, _ := m.b.view(m.id)
	return n.name
}

// Description returns the model description.
func (m Model) Description() string {
	n, _ := m.b.view(m.id)
	return n.description
}

// SetDescription sets the model description.
func (m Model) SetDescription(text string) Model {
	m.b.update(m.id, "set description", func(n *node) { n.description = text })
	return m
}

// Schema returns the owning schema.
func (m Model) Schema() Schema {
	n, ok := m.b.view(m.id)
	if !ok {
		return Schema{}
	}
	return Schema{b: m.b, id: n.parent}
}

// NewField appends a field with an arbitrary type tag.
func (m Model) NewField(name string, fieldType FieldType) (Field, error) {
	if m.b == nil {
		return Field{}, fmt.Errorf("builder: new field %q: detached model handle", name)
	}
	fieldType = FieldType(strings.TrimSpace(string(fieldType)))
	if fieldType == "" {
		return Field{}, fmt.Errorf("builder: new field %q: %w", name, ErrFieldType)
	}
	id, err := m.b.appendNode(m.id, node{kind: kindField, name: name, fieldType: fieldType})
	if err != nil {
		return Field{}, err
	}
	return Field{b: m.b, id: id}, nil
}

// NewInt appends an integer field.
func (m Model) NewInt(name string) (Field, error) {
	return m.NewField(name, FieldTypeInteger)
}

// NewString appends a string field.
func (m Model) NewString(name string) (Field, error) {
	return m.NewField(name, FieldTypeString)
}

// NewTimestamp appends a timestamp field.
func (m Model) NewTimestamp(name string) (Field, error) {
	return m.NewField(name, FieldTypeTimestamp)
}

// Fields returns the field handles in creation order.
func (m Model) Fields() []Field {
	ids := m.b.children(m.id)
	out := make([]Field, len(ids))
	for i, id := range ids {
		out[i] = Field{b: m.b, id: id}
	}
	return out
}

// Path returns the model's position in the tree.
func (m Model) Path() Path {
	if m.b == nil {
		return Path{}
	}
	return m.b.path(m.id)
}

// Field is a handle to a field node.
type Field struct {
	b  *Backend
	id arena.ID
}

// Name returns the field name.
func (f Field) Name() string {
	n, _ := f.b.view(f.id)
	return n.name
}

// Type returns the field's type tag.
func (f Field) Type() FieldType {
	n, _ := f.b.view(f.id)
	return n.fieldType
}

// Description returns the field description.
func (f Field) Description() string {
	n, _ := f.b.view(f.id)
	return n.description
}

// SetDescription sets the field description and returns the handle for
// chaining.
func (f Field) SetDescription(text string) Field {
	f.b.update(f.id, "set description", func(n *node) { n.description = text })
	return f
}

// SetAttribute records an extension value (for example "nullable") on the
// field. Keys must be declared by the field-set the field is validated
// against.
func (f Field) SetAttribute(key string, value any) Field {
	key = strings.TrimSpace(key)
	if key == "" {
		if f.b != nil {
			f.b.fail(fmt.Errorf("builder: set attribute on field %q: %w", f.Name(), ErrEmptyName))
		}
		return f
	}
	f.b.update(f.id, "set attribute "+key, func(n *node) {
		if n.attributes == nil {
			n.attributes = make(map[string]any)
		}
		n.attributes[key] = value
	})
	return f
}

// Attribute returns the value recorded under key.
func (f Field) Attribute(key string) (any, bool) {
	n, _ := f.b.view(f.id)
	v, ok := n.attributes[key]
	return v, ok
}

// Attributes returns a copy of every recorded attribute.
func (f Field) Attributes() map[string]any {
	n, _ := f.b.view(f.id)
	if len(n.attributes) == 0 {
		return nil
	}
	return maps.Clone(n.attributes)
}

// Model returns the owning model.
func (f Field) Model() Model {
	n, ok := f.b.view(f.id)
	if !ok {
		return Model{}
	}
	return Model{b: f.b, id: n.parent}
}

// Path returns the field's position in the tree.
func (f Field) Path() Path {
	if f.b == nil {
		return Path{}
	}
	return f.b.path(f.id)
}
