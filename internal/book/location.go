package book

import (
	"container/list"

	"github.com/ZMCodi/orderbook-sub000/internal/ticks"
)

// Side identifies which of the four books a Location points into.
type Side int

const (
	Bids Side = iota
	Asks
	StopBuys
	StopSells
)

// Location is the per-identifier record of spec.md §3: which book, which
// tick, and a stable handle to the order's position within that level's
// sequence, enabling O(1) cancel and in-place volume mutation.
type Location struct {
	Side Side
	Tick ticks.Tick
	Elem *list.Element
}

// Index maps identifier -> Location for every order currently resting in
// any of the four books.
type Index struct {
	locations map[string]Location
}

// NewIndex returns an empty location index.
func NewIndex() *Index {
	return &Index{locations: make(map[string]Location)}
}

// Set records or overwrites the location of id.
func (idx *Index) Set(id string, loc Location) {
	idx.locations[id] = loc
}

// Get returns the location of id, if it is currently resting.
func (idx *Index) Get(id string) (Location, bool) {
	loc, ok := idx.locations[id]
	return loc, ok
}

// Delete drops id's location entry (the order has left the book).
func (idx *Index) Delete(id string) {
	delete(idx.locations, id)
}

// Len returns the number of currently-resting orders tracked.
func (idx *Index) Len() int {
	return len(idx.locations)
}

// Clear drops every location entry.
func (idx *Index) Clear() {
	idx.locations = make(map[string]Location)
}
