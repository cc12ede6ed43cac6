// Package arena stores values in a growable slice addressed by stable
// indices. Values are never removed, so an ID stays valid for the lifetime of
// the arena.
package arena

// ID addresses a value inside an Arena. The zero value is not a valid ID.
type ID int

// Valid reports whether id could address a value.
func (id ID) Valid() bool { return id > 0 }

// Arena is not safe for concurrent use; callers guard it.
type Arena[T any] struct {
	items []T
}

// New creates an arena with room for capacity values.
func New[T any](capacity int) *Arena[T] {
	return &Arena[T]{items: make([]T, 0, capacity)}
}

// Add stores v and returns its ID.
func (a *Arena[T]) Add(v T) ID {
	a.items = append(a.items, v)
	return ID(len(a.items))
}

// Get returns a pointer to the value addressed by id. The pointer is only
// valid until the next call to Add.
func (a *Arena[T]) Get(id ID) (*T, bool) {
	idx := int(id) - 1
	if idx < 0 || idx >= len(a.items) {
		return nil, false
	}
	return &a.items[idx], true
}

// Len returns the number of stored values.
func (a *Arena[T]) Len() int {
	return len(a.items)
}
