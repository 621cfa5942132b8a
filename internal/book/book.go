package book

import (
	"github.com/tidwall/btree"

	"github.com/ZMCodi/orderbook-sub000/internal/ticks"
)

// Book is a price-indexed mapping tick -> *PriceLevel, sorted so that its
// natural (Scan) iteration order is best-to-worst for whichever side it
// represents. Generalizes the teacher's two fixed trees (bids: greatest
// first, asks: least first) into one type parameterized by direction, so
// it can also back the stop-buy (ascending) and stop-sell (descending)
// books.
type Book struct {
	tree      *btree.BTreeG[*PriceLevel]
	less      func(a, b *PriceLevel) bool
	ascending bool
}

// New returns an empty book. ascending=true sorts low-tick-first (asks,
// stop-buys); ascending=false sorts high-tick-first (bids, stop-sells).
func New(ascending bool) *Book {
	var less func(a, b *PriceLevel) bool
	if ascending {
		less = func(a, b *PriceLevel) bool { return a.Tick < b.Tick }
	} else {
		less = func(a, b *PriceLevel) bool { return a.Tick > b.Tick }
	}
	return &Book{tree: btree.NewBTreeG(less), less: less, ascending: ascending}
}

// GetOrCreate returns the level at t, creating and inserting an empty one
// if absent.
func (b *Book) GetOrCreate(t ticks.Tick) *PriceLevel {
	if lvl, ok := b.tree.Get(&PriceLevel{Tick: t}); ok {
		return lvl
	}
	lvl := newLevel(t)
	b.tree.Set(lvl)
	return lvl
}

// Get returns the level at t, if any.
func (b *Book) Get(t ticks.Tick) (*PriceLevel, bool) {
	return b.tree.Get(&PriceLevel{Tick: t})
}

// DeleteIfEmpty removes the level at t from the book if it has no resting
// orders left (spec.md §3: "no tick maps to an empty level"). Returns true
// if the level was removed.
func (b *Book) DeleteIfEmpty(t ticks.Tick) bool {
	lvl, ok := b.tree.Get(&PriceLevel{Tick: t})
	if !ok || !lvl.IsEmpty() {
		return false
	}
	b.tree.Delete(&PriceLevel{Tick: t})
	return true
}

// Best returns the first level in this book's natural order (the best bid,
// ask, or closest-to-trigger stop), or false if the book is empty.
func (b *Book) Best() (*PriceLevel, bool) {
	return b.tree.Min()
}

// BestTick returns the tick of Best(), or ok=false if empty.
func (b *Book) BestTick() (ticks.Tick, bool) {
	lvl, ok := b.tree.Min()
	if !ok {
		return 0, false
	}
	return lvl.Tick, true
}

// Len returns the number of distinct price levels.
func (b *Book) Len() int {
	return b.tree.Len()
}

// Ascend walks levels from (and including) the level at or past pivot in
// this book's natural direction, calling fn on each until it returns false
// or the book is exhausted.
func (b *Book) Ascend(pivot ticks.Tick, fn func(*PriceLevel) bool) {
	b.tree.Ascend(&PriceLevel{Tick: pivot}, fn)
}

// Scan walks every level in this book's natural (best-to-worst) order.
func (b *Book) Scan(fn func(*PriceLevel) bool) {
	b.tree.Scan(fn)
}

// Items returns every level, best-to-worst, as a slice. Intended for tests
// and small introspection paths, not hot paths.
func (b *Book) Items() []*PriceLevel {
	out := make([]*PriceLevel, 0, b.tree.Len())
	b.tree.Scan(func(lvl *PriceLevel) bool {
		out = append(out, lvl)
		return true
	})
	return out
}

// Clear empties the book.
func (b *Book) Clear() {
	b.tree = btree.NewBTreeG(b.less)
}
