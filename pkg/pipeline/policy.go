package pipeline

// Policy selects how dispatch reacts to a failing generator.
type Policy int

const (
	// FailFast stops at the first failing generator; later generators are
	// skipped. This is the default.
	FailFast Policy = iota
	// CollectAll runs every generator and aggregates all failures.
	CollectAll
)

// String returns the policy identifier used in logs.
func (p Policy) String() string {
	switch p {
	case FailFast:
		return "fail-fast"
	case CollectAll:
		return "collect-all"
	default:
		return "unknown"
	}
}
