package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ZMCodi/orderbook-sub000/internal/book"
	"github.com/ZMCodi/orderbook-sub000/internal/common"
	"github.com/ZMCodi/orderbook-sub000/internal/ticks"
)

// CancelOrder removes a resting (or parked stop) order entirely (spec.md
// §4.6). Cancelling a stop order takes the same uniform code path and also
// emits an audit record.
func (ob *OrderBook) CancelOrder(id string) (common.OrderResult, error) {
	if err := ob.enter(); err != nil {
		return common.OrderResult{}, err
	}
	defer ob.exit()
	return ob.cancelInternal(id)
}

func (ob *OrderBook) cancelInternal(id string) (common.OrderResult, error) {
	loc, ok := ob.locations.Get(id)
	if !ok {
		return common.OrderResult{}, common.NewError(common.NotFound, "no resting order with id %s", id)
	}

	b, lvl := ob.bookAndLevel(loc)
	o := lvl.Remove(loc.Elem)
	remaining := o.Volume
	if loc.Side == book.Bids || loc.Side == book.Asks {
		ob.totalVolume -= remaining
	}
	ob.locations.Delete(id)
	if lvl.IsEmpty() {
		b.DeleteIfEmpty(loc.Tick)
	}

	ob.auditLog = append(ob.auditLog, common.AuditRecord{
		ID:          id,
		Timestamp:   ob.now(),
		VolumeDelta: common.AuditFullRemoval,
	})

	return common.OrderResult{
		OrderID: id,
		Status:  common.Cancelled,
		Message: fmt.Sprintf("Order cancelled with %d unfilled shares", remaining),
	}, nil
}

// ModifyVolume changes a resting order's remaining volume (spec.md §4.7).
// Equal to the current remaining volume is a no-op rejection. A decrease is
// applied in place, preserving queue position and original time priority.
// An increase loses priority: the order is cancelled and re-submitted with
// a fresh identifier and timestamp at the tail of its level.
func (ob *OrderBook) ModifyVolume(id string, newVolume int64) (common.OrderResult, error) {
	if err := ob.enter(); err != nil {
		return common.OrderResult{}, err
	}
	defer ob.exit()

	if newVolume <= 0 {
		return common.OrderResult{}, common.NewError(common.InvalidOrder, "volume must be positive, got %d", newVolume)
	}

	loc, ok := ob.locations.Get(id)
	if !ok {
		return common.OrderResult{}, common.NewError(common.NotFound, "no resting order with id %s", id)
	}

	_, lvl := ob.bookAndLevel(loc)
	o := loc.Elem.Value.(*common.Order)
	current := o.Volume

	if newVolume == current {
		return common.OrderResult{
			OrderID:      id,
			Status:       common.Rejected,
			Message:      "Volume unchanged",
			RestingOrder: o,
		}, nil
	}

	if newVolume < current {
		delta := current - newVolume
		o.Volume = newVolume
		lvl.DecrementVolume(delta)
		if loc.Side == book.Bids || loc.Side == book.Asks {
			ob.totalVolume -= delta
		}
		ob.auditLog = append(ob.auditLog, common.AuditRecord{
			ID:          id,
			Timestamp:   ob.now(),
			VolumeDelta: newVolume,
		})
		return common.OrderResult{
			OrderID:      id,
			Status:       common.Modified,
			Message:      fmt.Sprintf("Volume decreased from %d to %d", current, newVolume),
			RestingOrder: o,
		}, nil
	}

	replacement := *o
	replacement.Volume = newVolume
	if _, err := ob.cancelInternal(id); err != nil {
		return common.OrderResult{}, err
	}
	res, err := ob.placeOrderInternal(&replacement)
	if err != nil {
		return res, err
	}
	res.Status = common.Modified
	res.Message = fmt.Sprintf("Volume increased from %d to %d. New ID generated.", current, newVolume)
	return res, nil
}

// ModifyPrice changes a resting limit order's price, or a resting stop
// order's trigger price (spec.md §4.8). Truncating to the same tick as the
// current price is a no-op rejection; otherwise the order is cancelled and
// re-submitted at the new price with a fresh identifier/timestamp, which may
// cross immediately.
func (ob *OrderBook) ModifyPrice(id string, newPrice decimal.Decimal) (common.OrderResult, error) {
	if err := ob.enter(); err != nil {
		return common.OrderResult{}, err
	}
	defer ob.exit()

	if newPrice.Sign() <= 0 {
		return common.OrderResult{}, common.NewError(common.InvalidOrder, "price must be positive, got %s", newPrice)
	}

	loc, ok := ob.locations.Get(id)
	if !ok {
		return common.OrderResult{}, common.NewError(common.NotFound, "no resting order with id %s", id)
	}

	o := loc.Elem.Value.(*common.Order)
	truncated := ticks.Truncate(newPrice, ob.tickSize)

	var current decimal.Decimal
	switch loc.Side {
	case book.Bids, book.Asks:
		current = *o.LimitPrice
	case book.StopBuys, book.StopSells:
		current = *o.StopPrice
	}
	if ticks.FromPrice(truncated, ob.tickSize) == ticks.FromPrice(current, ob.tickSize) {
		return common.OrderResult{
			OrderID:      id,
			Status:       common.Rejected,
			Message:      "Price unchanged",
			RestingOrder: o,
		}, nil
	}

	replacement := *o
	switch loc.Side {
	case book.Bids, book.Asks:
		replacement.LimitPrice = &truncated
	case book.StopBuys, book.StopSells:
		replacement.StopPrice = &truncated
	}

	if _, err := ob.cancelInternal(id); err != nil {
		return common.OrderResult{}, err
	}
	res, err := ob.placeOrderInternal(&replacement)
	if err != nil {
		return res, err
	}
	res.Status = common.Modified
	res.Message = fmt.Sprintf("Price changed from %s to %s. New ID generated.", current, truncated)
	return res, nil
}

// bookAndLevel resolves a Location to its owning book and price level.
func (ob *OrderBook) bookAndLevel(loc book.Location) (*book.Book, *book.PriceLevel) {
	var b *book.Book
	switch loc.Side {
	case book.Bids:
		b = ob.bids
	case book.Asks:
		b = ob.asks
	case book.StopBuys:
		b = ob.stopBuys
	case book.StopSells:
		b = ob.stopSells
	}
	lvl, _ := b.Get(loc.Tick)
	return b, lvl
}
