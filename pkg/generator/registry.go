package generator

import (
	"errors"
	"fmt"
	"sync"
)

// Registry stores generators in registration order, guarding against
// duplicate names. The dispatch pipeline runs them in that order.
type Registry struct {
	mu         sync.RWMutex
	generators []Generator
	index      map[string]int
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		index: make(map[string]int),
	}
}

// Register appends a generator under its Name(). Duplicate names return an
// error.
func (r *Registry) Register(gen Generator) error {
	if gen == nil {
		return errors.New("generator: generator is required")
	}
	name := gen.Name()
	if name == "" {
		return errors.New("generator: generator name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.index == nil {
		r.index = make(map[string]int)
	}
	if _, exists := r.index[name]; exists {
		return fmt.Errorf("generator: generator %q already registered", name)
	}

	r.index[name] = len(r.generators)
	r.generators = append(r.generators, gen)
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(gen Generator) {
	if err := r.Register(gen); err != nil {
		panic(err)
	}
}

// Get retrieves a generator by name.
func (r *Registry) Get(name string) (Generator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.index[name]
	if !ok {
		return nil, fmt.Errorf("generator: generator %q not found", name)
	}
	return r.generators[idx], nil
}

// Has reports whether a generator is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.index[name]
	return ok
}

// List returns the generator names in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.generators))
	for i, gen := range r.generators {
		names[i] = gen.Name()
	}
	return names
}

// All returns the generators in registration order.
func (r *Registry) All() []Generator {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]Generator(nil), r.generators...)
}

// Len reports how many generators are registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.generators)
}
