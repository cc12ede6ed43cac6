package schema

import (
	"fmt"
	"strings"
)

// FieldSet is the named, ordered collection of descriptors belonging to one
// schema type. Extends names the base field-set whose fields precede the
// declared ones; ForcedExtension requires every consumer of the base to also
// depend on this field-set.
type FieldSet struct {
	TypeID          string       `json:"typeId" yaml:"typeId"`
	Fields          []Descriptor `json:"fields" yaml:"fields"`
	Extends         string       `json:"extends,omitempty" yaml:"extends,omitempty"`
	ForcedExtension bool         `json:"forcedExtension,omitempty" yaml:"forcedExtension,omitempty"`
}

// Clone returns a deep copy of the field-set.
func (s FieldSet) Clone() FieldSet {
	s.Fields = cloneDescriptors(s.Fields)
	return s
}

// Names returns the top-level field names in order.
func (s FieldSet) Names() []string {
	names := make([]string, len(s.Fields))
	for i, d := range s.Fields {
		names[i] = d.Name
	}
	return names
}

// Validate checks the structural invariants of a single definition: a type id
// is present, names are non-empty and unique per field-set at every nesting
// level, and leaves carry no children.
func (s FieldSet) Validate() error {
	if normalizeTypeID(s.TypeID) == "" {
		return fmt.Errorf("schema: field-set type id is required")
	}
	if normalizeTypeID(s.Extends) == normalizeTypeID(s.TypeID) {
		return &CompositionError{Kind: CompositionCycle, TypeID: s.TypeID, Related: s.Extends}
	}
	if s.ForcedExtension && normalizeTypeID(s.Extends) == "" {
		return fmt.Errorf("schema: field-set %q is a forced extension but extends nothing", s.TypeID)
	}
	return validateDescriptors(s.TypeID, "", s.Fields)
}

func validateDescriptors(typeID, prefix string, fields []Descriptor) error {
	seen := make(map[string]struct{}, len(fields))
	for _, d := range fields {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			return fmt.Errorf("schema: field-set %q has a field without a name", typeID)
		}
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		if _, dup := seen[name]; dup {
			return &CompositionError{Kind: CompositionDuplicate, TypeID: typeID, Related: path}
		}
		seen[name] = struct{}{}

		switch d.Kind {
		case KindLeaf:
			if len(d.Data) > 0 || d.Type != "" || d.IsList {
				return fmt.Errorf("schema: field-set %q leaf %q cannot nest fields", typeID, path)
			}
		case KindNode:
			if d.Type != "" && len(d.Data) > 0 {
				return fmt.Errorf("schema: field-set %q node %q declares both a type and inline fields", typeID, path)
			}
			if err := validateDescriptors(typeID, path, d.Data); err != nil {
				return err
			}
		default:
			return fmt.Errorf("schema: field-set %q field %q has unknown kind %d", typeID, path, d.Kind)
		}
	}
	return nil
}

// Describer is the capability exposed by a schema type: it returns its
// field-set definition. Implementations must be pure; every call returns the
// same definition.
type Describer interface {
	Describe() FieldSet
}

// DescribeFunc adapts a plain function into a Describer.
type DescribeFunc func() FieldSet

// Describe calls the underlying function.
func (fn DescribeFunc) Describe() FieldSet {
	if fn == nil {
		return FieldSet{}
	}
	return fn()
}

// FieldsOf returns the ordered descriptors of d. The result is a fresh copy so
// callers cannot affect later invocations.
func FieldsOf(d Describer) []Descriptor {
	if d == nil {
		return nil
	}
	return d.Describe().Clone().Fields
}
