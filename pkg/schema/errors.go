package schema

import (
	"errors"
	"fmt"
)

// ErrComposition matches every CompositionError through errors.Is.
var ErrComposition = errors.New("schema: composition failed")

// CompositionErrorKind classifies composition failures.
type CompositionErrorKind string

const (
	CompositionUnknown         CompositionErrorKind = "unknown"
	CompositionMismatch        CompositionErrorKind = "mismatch"
	CompositionCycle           CompositionErrorKind = "cycle"
	CompositionForcedExtension CompositionErrorKind = "forced_extension"
	CompositionDuplicate       CompositionErrorKind = "duplicate"
)

// CompositionError reports a malformed, cyclic or unmet extension
// relationship. It is always fatal to a build.
type CompositionError struct {
	Kind     CompositionErrorKind
	TypeID   string
	Related  string
	Consumer string
}

func (e *CompositionError) Error() string {
	switch e.Kind {
	case CompositionUnknown:
		if e.Consumer != "" {
			return fmt.Sprintf("schema: %s depends on unknown field-set %q", e.Consumer, e.TypeID)
		}
		return fmt.Sprintf("schema: unknown field-set %q", e.TypeID)
	case CompositionMismatch:
		return fmt.Sprintf("schema: field-set %q does not extend %q", e.TypeID, e.Related)
	case CompositionCycle:
		return fmt.Sprintf("schema: field-set %q forms a cycle through %q", e.TypeID, e.Related)
	case CompositionForcedExtension:
		return fmt.Sprintf("schema: %s depends on %q but not on its forced extension %q", e.Consumer, e.TypeID, e.Related)
	case CompositionDuplicate:
		return fmt.Sprintf("schema: field-set %q declares %q more than once", e.TypeID, e.Related)
	default:
		return fmt.Sprintf("schema: composition of %q failed", e.TypeID)
	}
}

// Is lets errors.Is(err, ErrComposition) match any CompositionError.
func (e *CompositionError) Is(target error) bool {
	return target == ErrComposition
}
