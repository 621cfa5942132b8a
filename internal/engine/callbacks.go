package engine

import "github.com/ZMCodi/orderbook-sub000/internal/common"

// RegisterCallback attaches cb to the resting order id, so it additionally
// fires on every future trade that order participates in (spec.md §4.11).
// Returns false if id is not currently resting.
func (ob *OrderBook) RegisterCallback(id string, cb common.Callback) bool {
	loc, ok := ob.locations.Get(id)
	if !ok {
		return false
	}
	o := loc.Elem.Value.(*common.Order)
	prev := o.Callback
	o.Callback = func(t common.Trade) {
		if prev != nil {
			prev(t)
		}
		cb(t)
	}
	return true
}

// RemoveCallback detaches any callback currently registered on the resting
// order id. Returns false if id is not currently resting.
func (ob *OrderBook) RemoveCallback(id string) bool {
	loc, ok := ob.locations.Get(id)
	if !ok {
		return false
	}
	o := loc.Elem.Value.(*common.Order)
	o.Callback = nil
	return true
}
