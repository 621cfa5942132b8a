// Package idpool is the owning set of opaque, stable order/trade
// identifiers (spec.md §2 component 2). Every other component references
// identifiers as borrowed strings whose lifetime is bounded by the pool.
//
// The core consumes a supplied id factory rather than owning one (spec.md
// §1 lists "identifier-generation primitives" among the external
// collaborators); the default factory uses github.com/google/uuid, the
// library the teacher's wire protocol layer already imports for order ids.
package idpool

import "github.com/google/uuid"

// Factory generates a fresh, unique identifier.
type Factory func() string

// DefaultFactory issues random UUIDs.
func DefaultFactory() string {
	return uuid.New().String()
}

// Pool issues and remembers identifiers for the lifetime of one engine.
type Pool struct {
	gen Factory
	ids map[string]struct{}
}

// New returns an empty pool. A nil gen falls back to DefaultFactory.
func New(gen Factory) *Pool {
	if gen == nil {
		gen = DefaultFactory
	}
	return &Pool{gen: gen, ids: make(map[string]struct{})}
}

// Issue generates a fresh identifier, records it, and returns it.
func (p *Pool) Issue() string {
	id := p.gen()
	p.ids[id] = struct{}{}
	return id
}

// Contains reports whether id was ever issued by this pool and not cleared.
func (p *Pool) Contains(id string) bool {
	_, ok := p.ids[id]
	return ok
}

// Len returns the number of identifiers currently tracked.
func (p *Pool) Len() int {
	return len(p.ids)
}

// Clear drops every tracked identifier.
func (p *Pool) Clear() {
	p.ids = make(map[string]struct{})
}
