package builder

import "errors"

var (
	// ErrEmptyName is returned when a child or attribute name is blank.
	ErrEmptyName = errors.New("builder: name is required")
	// ErrDuplicateName is returned when a sibling with the same name exists.
	ErrDuplicateName = errors.New("builder: name already used by a sibling")
	// ErrFrozen is returned when the tree is mutated after Freeze.
	ErrFrozen = errors.New("builder: backend is frozen")
	// ErrFieldType is returned when a field is created without a type tag.
	ErrFieldType = errors.New("builder: field type is required")
)
