// Package book holds the price-indexed bid/ask/stop containers (spec.md §2
// components 4-6): a PriceLevel aggregating resting orders at one tick, a
// Book mapping tick -> PriceLevel over github.com/tidwall/btree (the
// teacher's PriceLevels = btree.BTreeG[*PriceLevel] in
// internal/engine/orderbook.go, generalized from two books to four and from
// a fixed ascending/descending pair to a side-parameterized one), and a
// Location index giving O(1) access into a level's order sequence.
package book

import (
	"container/list"

	"github.com/ZMCodi/orderbook-sub000/internal/common"
	"github.com/ZMCodi/orderbook-sub000/internal/ticks"
)

// PriceLevel aggregates the resting orders at one tick: total volume and an
// insertion-ordered sequence (spec.md §3). The sequence is a container/list
// of *common.Order rather than a slice, so that a Location's *list.Element
// handle stays valid across removal of other orders in the same level
// (spec.md §9's note on stable handles into an arena-like structure), and
// mutating an order's remaining volume in place (§4.7) is a pointer write
// rather than a slice-element replace.
type PriceLevel struct {
	Tick        ticks.Tick
	TotalVolume int64
	Orders      *list.List // of *common.Order
}

func newLevel(t ticks.Tick) *PriceLevel {
	return &PriceLevel{Tick: t, Orders: list.New()}
}

// PushBack appends order to the tail of the level and returns the handle to
// its element. Updates TotalVolume.
func (lvl *PriceLevel) PushBack(o *common.Order) *list.Element {
	lvl.TotalVolume += o.Volume
	return lvl.Orders.PushBack(o)
}

// Front returns the head order's element, or nil if the level is empty.
func (lvl *PriceLevel) Front() *list.Element {
	return lvl.Orders.Front()
}

// Remove detaches elem from the level and decrements TotalVolume by the
// order's current remaining volume.
func (lvl *PriceLevel) Remove(elem *list.Element) *common.Order {
	o := lvl.Orders.Remove(elem).(*common.Order)
	lvl.TotalVolume -= o.Volume
	return o
}

// DecrementVolume reduces the level's total by delta (delta > 0), used when
// an order resting in elem is partially consumed without leaving the level.
func (lvl *PriceLevel) DecrementVolume(delta int64) {
	lvl.TotalVolume -= delta
}

// IsEmpty reports whether the level has no resting orders.
func (lvl *PriceLevel) IsEmpty() bool {
	return lvl.Orders.Len() == 0
}

// OrderCount returns the number of resting orders in the level.
func (lvl *PriceLevel) OrderCount() int {
	return lvl.Orders.Len()
}

// Snapshot returns the level's orders, head to tail, as owned copies.
func (lvl *PriceLevel) Snapshot() []common.Order {
	out := make([]common.Order, 0, lvl.Orders.Len())
	for e := lvl.Orders.Front(); e != nil; e = e.Next() {
		out = append(out, *(e.Value.(*common.Order)))
	}
	return out
}
