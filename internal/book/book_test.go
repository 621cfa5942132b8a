package book

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ZMCodi/orderbook-sub000/internal/common"
	"github.com/ZMCodi/orderbook-sub000/internal/ticks"
)

func mustOrder(t *testing.T, o common.Order, err error) *common.Order {
	t.Helper()
	assert.NoError(t, err)
	return &o
}

var one = decimal.NewFromFloat(1.00)

func TestBookOrderingDescending(t *testing.T) {
	b := New(false) // bids: highest tick first
	b.GetOrCreate(ticks.Tick(100))
	b.GetOrCreate(ticks.Tick(200))
	b.GetOrCreate(ticks.Tick(150))

	var seen []ticks.Tick
	b.Scan(func(lvl *PriceLevel) bool {
		seen = append(seen, lvl.Tick)
		return true
	})
	assert.Equal(t, []ticks.Tick{200, 150, 100}, seen)
}

func TestBookOrderingAscending(t *testing.T) {
	b := New(true) // asks: lowest tick first
	b.GetOrCreate(ticks.Tick(100))
	b.GetOrCreate(ticks.Tick(200))
	b.GetOrCreate(ticks.Tick(150))

	var seen []ticks.Tick
	b.Scan(func(lvl *PriceLevel) bool {
		seen = append(seen, lvl.Tick)
		return true
	})
	assert.Equal(t, []ticks.Tick{100, 150, 200}, seen)
}

func TestDeleteIfEmpty(t *testing.T) {
	b := New(true)
	lvl := b.GetOrCreate(ticks.Tick(10))
	assert.Equal(t, 1, b.Len())

	o := mustOrder(t, common.NewLimitBuy(5, one))
	lvl.PushBack(o)
	assert.False(t, b.DeleteIfEmpty(ticks.Tick(10)), "non-empty level must not be removed")

	lvl.Remove(lvl.Front())
	assert.True(t, b.DeleteIfEmpty(ticks.Tick(10)))
	assert.Equal(t, 0, b.Len())
}

func TestPriceLevelFIFO(t *testing.T) {
	lvl := newLevel(ticks.Tick(1))
	first := mustOrder(t, common.NewLimitBuy(10, one))
	second := mustOrder(t, common.NewLimitBuy(20, one))

	lvl.PushBack(first)
	lvl.PushBack(second)
	assert.Equal(t, int64(30), lvl.TotalVolume)

	head := lvl.Front()
	assert.Same(t, first, head.Value.(*common.Order))

	removed := lvl.Remove(head)
	assert.Same(t, first, removed)
	assert.Equal(t, int64(20), lvl.TotalVolume)
}

func TestLocationIndex(t *testing.T) {
	idx := NewIndex()
	idx.Set("a", Location{Side: Bids, Tick: ticks.Tick(5)})

	loc, ok := idx.Get("a")
	assert.True(t, ok)
	assert.Equal(t, ticks.Tick(5), loc.Tick)

	idx.Delete("a")
	_, ok = idx.Get("a")
	assert.False(t, ok)
}
