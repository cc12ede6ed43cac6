package schema

import "strings"

// Kind distinguishes scalar descriptors from nested ones.
type Kind int

const (
	// KindLeaf describes a scalar member.
	KindLeaf Kind = iota
	// KindNode describes a nested member holding one or many instances of
	// another field-set.
	KindNode
)

// String returns the lowercase identifier of the kind.
func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindNode:
		return "node"
	default:
		return "unknown"
	}
}

// Descriptor describes one member of a schema type independently of any
// concrete instance. Leaf descriptors only use Name and RequireOnCreate; node
// descriptors use Name, IsList and either Data or Type. Type references a
// registered field-set that the Catalog expands into Data.
type Descriptor struct {
	Kind            Kind         `json:"kind" yaml:"kind"`
	Name            string       `json:"name" yaml:"name"`
	RequireOnCreate bool         `json:"requireOnCreate,omitempty" yaml:"requireOnCreate,omitempty"`
	IsList          bool         `json:"isList,omitempty" yaml:"isList,omitempty"`
	Type            string       `json:"type,omitempty" yaml:"type,omitempty"`
	Data            []Descriptor `json:"data,omitempty" yaml:"data,omitempty"`
}

// Leaf constructs a scalar descriptor.
func Leaf(name string, requireOnCreate bool) Descriptor {
	return Descriptor{Kind: KindLeaf, Name: name, RequireOnCreate: requireOnCreate}
}

// Node constructs a nested descriptor with inline child descriptors.
func Node(name string, isList bool, data ...Descriptor) Descriptor {
	return Descriptor{Kind: KindNode, Name: name, IsList: isList, Data: cloneDescriptors(data)}
}

// Ref constructs a nested descriptor whose children come from the field-set
// registered under typeID.
func Ref(name, typeID string, isList bool) Descriptor {
	return Descriptor{Kind: KindNode, Name: name, IsList: isList, Type: typeID}
}

// IsLeaf reports whether the descriptor is scalar.
func (d Descriptor) IsLeaf() bool { return d.Kind == KindLeaf }

// IsNode reports whether the descriptor nests another field-set.
func (d Descriptor) IsNode() bool { return d.Kind == KindNode }

// Clone returns a deep copy of the descriptor.
func (d Descriptor) Clone() Descriptor {
	d.Data = cloneDescriptors(d.Data)
	return d
}

func cloneDescriptors(in []Descriptor) []Descriptor {
	if in == nil {
		return nil
	}
	out := make([]Descriptor, len(in))
	for i, d := range in {
		out[i] = d.Clone()
	}
	return out
}

// Lookup returns the top-level descriptor with the given name.
func Lookup(fields []Descriptor, name string) (Descriptor, bool) {
	for _, d := range fields {
		if d.Name == name {
			return d.Clone(), true
		}
	}
	return Descriptor{}, false
}

// RequiredOnCreate lists the names of top-level leaves that constructors must
// accept, in declaration order.
func RequiredOnCreate(fields []Descriptor) []string {
	var names []string
	for _, d := range fields {
		if d.IsLeaf() && d.RequireOnCreate {
			names = append(names, d.Name)
		}
	}
	return names
}

// WalkFunc receives the dotted path of each descriptor visited by Walk.
// Returning false skips the descriptor's children.
type WalkFunc func(path string, d Descriptor) bool

// Walk visits descriptors depth-first in declaration order.
func Walk(fields []Descriptor, fn WalkFunc) {
	walk("", fields, fn)
}

func walk(prefix string, fields []Descriptor, fn WalkFunc) {
	for _, d := range fields {
		path := d.Name
		if prefix != "" {
			path = prefix + "." + d.Name
		}
		if !fn(path, d.Clone()) {
			continue
		}
		if len(d.Data) > 0 {
			walk(path, d.Data, fn)
		}
	}
}

func normalizeTypeID(id string) string {
	return strings.TrimSpace(id)
}
