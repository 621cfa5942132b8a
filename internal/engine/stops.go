package engine

import (
	"github.com/ZMCodi/orderbook-sub000/internal/book"
	"github.com/ZMCodi/orderbook-sub000/internal/common"
	"github.com/ZMCodi/orderbook-sub000/internal/ticks"
)

// dispatchStops drains every stop order whose trigger condition the current
// market price now satisfies, converting each to its active form and
// submitting it on the same call stack (spec.md §4.5). A triggered order can
// itself trade and move the market price again, which is why this re-checks
// both stop books in a loop rather than a single pass: cascading triggers
// are expected, not an error.
func (ob *OrderBook) dispatchStops() {
	for {
		o, ok := ob.popTriggeredStop()
		if !ok {
			return
		}
		res, _ := ob.activateStop(o)
		if len(res.Trades) > 0 {
			last := res.Trades[len(res.Trades)-1].Price
			ob.marketPrice = &last
		}
	}
}

// popTriggeredStop removes and returns the first stop order (buy or sell
// book) whose condition the current market price satisfies, or ok=false if
// neither book has one. Stop-buys trigger bottom-up (ascending book, lowest
// stop price first); stop-sells trigger top-down.
func (ob *OrderBook) popTriggeredStop() (*common.Order, bool) {
	if ob.marketPrice == nil {
		return nil, false
	}

	if lvl, ok := ob.stopBuys.Best(); ok {
		if ob.marketPrice.GreaterThanOrEqual(ticks.ToPrice(lvl.Tick, ob.tickSize)) {
			return ob.popFront(ob.stopBuys, lvl), true
		}
	}
	if lvl, ok := ob.stopSells.Best(); ok {
		if ob.marketPrice.LessThanOrEqual(ticks.ToPrice(lvl.Tick, ob.tickSize)) {
			return ob.popFront(ob.stopSells, lvl), true
		}
	}
	return nil, false
}

func (ob *OrderBook) popFront(b *book.Book, lvl *book.PriceLevel) *common.Order {
	elem := lvl.Front()
	o := lvl.Remove(elem)
	ob.locations.Delete(o.ID)
	if lvl.IsEmpty() {
		b.DeleteIfEmpty(lvl.Tick)
	}
	return o
}
