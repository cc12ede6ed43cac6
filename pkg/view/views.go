package view

// FieldView is the name/type slice of a field.
type FieldView struct {
	Name string
	Type string
}

// ModelView is a model with its fields.
type ModelView struct {
	Name   string
	Fields []FieldView
}

// SchemaView is a schema with its models.
type SchemaView struct {
	Name   string
	Models []ModelView
}

// Schemas is the structural view the simplest generators consume: names and
// types only.
type Schemas []SchemaView
