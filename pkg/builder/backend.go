package builder

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-configger/internal/arena"
)

type nodeKind int

const (
	kindSchema nodeKind = iota + 1
	kindModel
	kindField
)

func (k nodeKind) String() string {
	switch k {
	case kindSchema:
		return "schema"
	case kindModel:
		return "model"
	case kindField:
		return "field"
	default:
		return "node"
	}
}

type node struct {
	kind         nodeKind
	name         string
	description  string
	databaseType string
	fieldType    FieldType
	attributes   map[string]any
	parent       arena.ID
	children     []arena.ID
}

// Option configures a Backend.
type Option func(*Backend)

// WithSessionID pins the build session identifier. By default every Backend
// gets a random UUID.
func WithSessionID(id string) Option {
	return func(b *Backend) {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			b.session = trimmed
		}
	}
}

// Backend is the root of the instance tree. It owns every node; handles only
// address nodes inside it. All methods are safe for concurrent use.
type Backend struct {
	mu      sync.RWMutex
	session string
	nodes   *arena.Arena[node]
	schemas []arena.ID
	frozen  bool
	errs    []error
}

// NewBackend creates an empty Backend for one build session.
func NewBackend(options ...Option) *Backend {
	b := &Backend{
		nodes: arena.New[node](32),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	if b.session == "" {
		b.session = uuid.NewString()
	}
	return b
}

// Session returns the build session identifier.
func (b *Backend) Session() string {
	return b.session
}

// NewSchema appends a schema named name and returns its handle.
func (b *Backend) NewSchema(name string) (Schema, error) {
	if b == nil {
		return Schema{}, fmt.Errorf("builder: new schema %q: detached backend", name)
	}
	id, err := b.appendNode(0, node{kind: kindSchema, name: name})
	if err != nil {
		return Schema{}, err
	}
	return Schema{b: b, id: id}, nil
}

// Schemas returns the schema handles in creation order.
func (b *Backend) Schemas() []Schema {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Schema, len(b.schemas))
	for i, id := range b.schemas {
		out[i] = Schema{b: b, id: id}
	}
	return out
}

// Freeze marks the tree read-only. It is idempotent.
func (b *Backend) Freeze() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.frozen = true
}

// Frozen reports whether Freeze was called.
func (b *Backend) Frozen() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.frozen
}

// Err reports the mutations setters could not apply, joined in call order.
func (b *Backend) Err() error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return errors.Join(b.errs...)
}

func (b *Backend) appendNode(parent arena.ID, n node) (arena.ID, error) {
	name := strings.TrimSpace(n.name)
	if name == "" {
		return 0, fmt.Errorf("builder: new %s: %w", n.kind, ErrEmptyName)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frozen {
		return 0, fmt.Errorf("builder: new %s %q: %w", n.kind, name, ErrFrozen)
	}

	siblings := b.schemas
	parentName := ""
	if parent.Valid() {
		p, ok := b.nodes.Get(parent)
		if !ok {
			return 0, fmt.Errorf("builder: new %s %q: unknown parent", n.kind, name)
		}
		siblings = p.children
		parentName = p.name
	}
	for _, sibling := range siblings {
		if s, ok := b.nodes.Get(sibling); ok && s.name == name {
			if parentName == "" {
				return 0, fmt.Errorf("builder: %s %q: %w", n.kind, name, ErrDuplicateName)
			}
			return 0, fmt.Errorf("builder: %s %q in %q: %w", n.kind, name, parentName, ErrDuplicateName)
		}
	}

	n.name = name
	n.parent = parent
	id := b.nodes.Add(n)
	if parent.Valid() {
		p, _ := b.nodes.Get(parent)
		p.children = append(p.children, id)
	} else {
		b.schemas = append(b.schemas, id)
	}
	return id, nil
}

// update applies fn to the node unless the backend is frozen, in which case
// the attempt is recorded for Err.
func (b *Backend) update(id arena.ID, op string, fn func(*node)) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	n, ok := b.nodes.Get(id)
	if !ok {
		return
	}
	if b.frozen {
		b.errs = append(b.errs, fmt.Errorf("builder: %s on %s %q: %w", op, n.kind, n.name, ErrFrozen))
		return
	}
	fn(n)
}

func (b *Backend) fail(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.errs = append(b.errs, err)
}

// view copies the node addressed by id.
func (b *Backend) view(id arena.ID) (node, bool) {
	if b == nil {
		return node{}, false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	n, ok := b.nodes.Get(id)
	if !ok {
		return node{}, false
	}
	return *n, true
}

func (b *Backend) children(id arena.ID) []arena.ID {
	n, ok := b.view(id)
	if !ok {
		return nil
	}
	return append([]arena.ID(nil), n.children...)
}

func (b *Backend) path(id arena.ID) Path {
	var p Path
	for current := id; current.Valid(); {
		n, ok := b.view(current)
		if !ok {
			break
		}
		switch n.kind {
		case kindSchema:
			p.Schema = n.name
		case kindModel:
			p.Model = n.name
		case kindField:
			p.Field = n.name
		}
		current = n.parent
	}
	return p
}
