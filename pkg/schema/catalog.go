package schema

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
)

// Catalog stores field-set definitions by type id and resolves them into
// their effective shape. Definitions are captured once at registration so
// later lookups never call back into the describer.
type Catalog struct {
	mu          sync.RWMutex
	definitions map[string]FieldSet
}

// NewCatalog creates a catalog holding the supplied describers.
func NewCatalog(describers ...Describer) (*Catalog, error) {
	c := &Catalog{definitions: make(map[string]FieldSet)}
	for _, d := range describers {
		if err := c.Register(d); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Register validates and stores the definition published by d. Duplicate type
// ids return an error.
func (c *Catalog) Register(d Describer) error {
	if d == nil {
		return errors.New("schema: describer is required")
	}
	def := d.Describe().Clone()
	def.TypeID = normalizeTypeID(def.TypeID)
	def.Extends = normalizeTypeID(def.Extends)
	if err := def.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.definitions == nil {
		c.definitions = make(map[string]FieldSet)
	}
	if _, exists := c.definitions[def.TypeID]; exists {
		return fmt.Errorf("schema: field-set %q already registered", def.TypeID)
	}
	c.definitions[def.TypeID] = def
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (c *Catalog) MustRegister(d Describer) {
	if err := c.Register(d); err != nil {
		panic(err)
	}
}

// Has reports whether a definition is registered under id.
func (c *Catalog) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.definitions[normalizeTypeID(id)]
	return ok
}

// Definition returns the declared (uncomposed) definition for id.
func (c *Catalog) Definition(id string) (FieldSet, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	def, ok := c.definitions[normalizeTypeID(id)]
	if !ok {
		return FieldSet{}, &CompositionError{Kind: CompositionUnknown, TypeID: id}
	}
	return def.Clone(), nil
}

// List returns the registered type ids sorted alphabetically.
func (c *Catalog) List() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, len(c.definitions))
	for id := range c.definitions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Resolve returns the effective field-set for id: the full extends chain
// composed base-first, with every Ref node expanded into its nested fields.
func (c *Catalog) Resolve(id string) (FieldSet, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.resolve(normalizeTypeID(id), nil)
}

// ForcedExtensions lists the definitions that extend base and are marked as
// forced extensions, sorted by type id.
func (c *Catalog) ForcedExtensions(base string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.forcedExtensions(normalizeTypeID(base))
}

// CheckDependencies validates the field-set dependencies declared by each
// consumer. Unknown ids and unresolvable definitions fail, and so does any
// consumer that depends on a base without also depending on every forced
// extension of that base. All failures are joined in consumer name order.
func (c *Catalog) CheckDependencies(deps map[string][]string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	consumers := make([]string, 0, len(deps))
	for consumer := range deps {
		consumers = append(consumers, consumer)
	}
	sort.Strings(consumers)

	var errs []error
	for _, consumer := range consumers {
		declared := make(map[string]struct{}, len(deps[consumer]))
		ids := make([]string, 0, len(deps[consumer]))
		for _, raw := range deps[consumer] {
			id := normalizeTypeID(raw)
			if _, dup := declared[id]; dup {
				continue
			}
			declared[id] = struct{}{}
			ids = append(ids, id)
		}

		for _, id := range ids {
			if _, ok := c.definitions[id]; !ok {
				errs = append(errs, &CompositionError{Kind: CompositionUnknown, TypeID: id, Consumer: consumer})
				continue
			}
			if _, err := c.resolve(id, nil); err != nil {
				errs = append(errs, err)
				continue
			}
			for _, ext := range c.forcedExtensions(id) {
				if _, ok := declared[ext]; !ok {
					errs = append(errs, &CompositionError{
						Kind:     CompositionForcedExtension,
						TypeID:   id,
						Related:  ext,
						Consumer: consumer,
					})
				}
			}
		}
	}
	return errors.Join(errs...)
}

func (c *Catalog) forcedExtensions(base string) []string {
	var out []string
	for id, def := range c.definitions {
		if def.ForcedExtension && def.Extends == base {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// resolve must be called with the read lock held. stack holds the type ids
// currently being expanded through Ref nodes.
func (c *Catalog) resolve(id string, stack []string) (FieldSet, error) {
	chain, err := c.extendsChain(id)
	if err != nil {
		return FieldSet{}, err
	}

	result := chain[len(chain)-1].Clone()
	for i := len(chain) - 2; i >= 0; i-- {
		result, err = Compose(result, chain[i])
		if err != nil {
			return FieldSet{}, err
		}
	}

	stack = append(slices.Clone(stack), id)
	fields, err := c.expandRefs(result.Fields, stack)
	if err != nil {
		return FieldSet{}, err
	}
	result.Fields = fields
	return result, nil
}

// extendsChain returns id's definition followed by each ancestor, most
// derived first.
func (c *Catalog) extendsChain(id string) ([]FieldSet, error) {
	var chain []FieldSet
	visited := make(map[string]struct{})
	current := id
	for current != "" {
		if _, seen := visited[current]; seen {
			return nil, &CompositionError{Kind: CompositionCycle, TypeID: id, Related: current}
		}
		visited[current] = struct{}{}

		def, ok := c.definitions[current]
		if !ok {
			return nil, &CompositionError{Kind: CompositionUnknown, TypeID: current}
		}
		chain = append(chain, def)
		current = def.Extends
	}
	return chain, nil
}

func (c *Catalog) expandRefs(fields []Descriptor, stack []string) ([]Descriptor, error) {
	out := cloneDescriptors(fields)
	for i := range out {
		d := &out[i]
		if !d.IsNode() {
			continue
		}
		if d.Type == "" {
			nested, err := c.expandRefs(d.Data, stack)
			if err != nil {
				return nil, err
			}
			d.Data = nested
			continue
		}
		if slices.Contains(stack, d.Type) {
			return nil, &CompositionError{Kind: CompositionCycle, TypeID: stack[0], Related: d.Type}
		}
		nested, err := c.resolve(d.Type, stack)
		if err != nil {
			return nil, err
		}
		d.Data = nested.Fields
	}
	return out, nil
}
