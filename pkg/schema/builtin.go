package schema

// Type ids of the built-in definitions describing the builder tree.
const (
	TypeSchema        = "schema"
	TypeModel         = "model"
	TypeField         = "field"
	TypeNullableField = "nullable_field"
)

// SchemaDef describes a schema entry: a named, database-bound group of models.
type SchemaDef struct{}

// Describe implements Describer.
func (SchemaDef) Describe() FieldSet {
	return FieldSet{
		TypeID: TypeSchema,
		Fields: []Descriptor{
			Leaf("name", true),
			Leaf("desc", false),
			Leaf("database_type", false),
			Ref("models", TypeModel, true),
		},
	}
}

// ModelDef describes a model: a named collection of fields.
type ModelDef struct{}

// Describe implements Describer.
func (ModelDef) Describe() FieldSet {
	return FieldSet{
		TypeID: TypeModel,
		Fields: []Descriptor{
			Leaf("name", true),
			Leaf("desc", false),
			Ref("fields", TypeField, true),
		},
	}
}

// FieldDef describes a single typed field.
type FieldDef struct{}

// Describe implements Describer.
func (FieldDef) Describe() FieldSet {
	return FieldSet{
		TypeID: TypeField,
		Fields: []Descriptor{
			Leaf("name", true),
			Leaf("desc", false),
			Leaf("type", false),
		},
	}
}

// NullableFieldDef extends FieldDef with a nullable flag. It is a forced
// extension: consumers of FieldDef must also consume it, otherwise they would
// silently generate non-nullable code for nullable fields.
type NullableFieldDef struct{}

// Describe implements Describer.
func (NullableFieldDef) Describe() FieldSet {
	return FieldSet{
		TypeID:          TypeNullableField,
		Extends:         TypeField,
		ForcedExtension: true,
		Fields: []Descriptor{
			Leaf("nullable", false),
		},
	}
}

// Builtins returns the describers for the built-in definitions.
func Builtins() []Describer {
	return []Describer{SchemaDef{}, ModelDef{}, FieldDef{}, NullableFieldDef{}}
}

// DefaultCatalog returns a catalog holding the built-in definitions.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(Builtins()...)
	if err != nil {
		panic(err)
	}
	return c
}
