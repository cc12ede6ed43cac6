package builder

import "strings"

// FieldType tags the value kind of a field. The set is extensible: callers can
// declare their own tags through Model.NewField.
type FieldType string

const (
	FieldTypeInteger   FieldType = "integer"
	FieldTypeString    FieldType = "string"
	FieldTypeTimestamp FieldType = "timestamp"
)

// IsBuiltin reports whether the tag is one of the predefined types.
func (t FieldType) IsBuiltin() bool {
	switch t {
	case FieldTypeInteger, FieldTypeString, FieldTypeTimestamp:
		return true
	default:
		return false
	}
}

// Path identifies an element of the tree by its schema/model/field name
// chain. Unused levels are empty.
type Path struct {
	Schema string `json:"schema,omitempty" yaml:"schema,omitempty"`
	Model  string `json:"model,omitempty" yaml:"model,omitempty"`
	Field  string `json:"field,omitempty" yaml:"field,omitempty"`
}

// IsZero reports whether the path names nothing.
func (p Path) IsZero() bool {
	return p.Schema == "" && p.Model == "" && p.Field == ""
}

// String joins the populated segments with dots, e.g. "s.m.id".
func (p Path) String() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{p.Schema, p.Model, p.Field} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ".")
}
