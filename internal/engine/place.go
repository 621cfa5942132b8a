package engine

import (
	"github.com/ZMCodi/orderbook-sub000/internal/book"
	"github.com/ZMCodi/orderbook-sub000/internal/common"
	"github.com/ZMCodi/orderbook-sub000/internal/ticks"
)

// PlaceOrder admits a new order into the book (spec.md §4.2/§4.4): it is
// timestamped and id-assigned, then matched, rested, or parked in a stop
// book depending on its kind. Public entrypoints acquire the reentrancy
// guard; placeOrderInternal is the unguarded core, reused by the supersede
// paths of ModifyVolume/ModifyPrice on the same call stack.
func (ob *OrderBook) PlaceOrder(o *common.Order) (common.OrderResult, error) {
	if err := ob.enter(); err != nil {
		return common.OrderResult{}, err
	}
	defer ob.exit()
	return ob.placeOrderInternal(o)
}

func (ob *OrderBook) placeOrderInternal(o *common.Order) (common.OrderResult, error) {
	if o.Volume <= 0 {
		return common.OrderResult{}, common.NewError(common.InvalidOrder, "order volume must be positive, got %d", o.Volume)
	}

	ob.stampOrder(o)

	var res common.OrderResult
	var err error

	switch o.Kind {
	case common.Market:
		res, err = ob.placeMarket(o)
	case common.Limit:
		res, err = ob.placeLimit(o)
	case common.Stop, common.StopLimit:
		res, err = ob.placeStop(o)
	default:
		return common.OrderResult{}, common.NewError(common.InvalidOrder, "unrecognized order kind %v", o.Kind)
	}
	if err != nil {
		return res, err
	}

	if len(res.Trades) > 0 {
		last := res.Trades[len(res.Trades)-1].Price
		ob.marketPrice = &last
		ob.dispatchStops()
	}

	return res, nil
}

// stampOrder assigns an identifier and admission timestamp and appends a
// copy of the order to the append-only order log.
func (ob *OrderBook) stampOrder(o *common.Order) {
	o.ID = ob.ids.Issue()
	o.Timestamp = ob.now()
	ob.orderLog = append(ob.orderLog, *o)
}

func (ob *OrderBook) placeMarket(o *common.Order) (common.OrderResult, error) {
	opposite := ob.oppositeBook(o.Side)
	trades := ob.match(o, opposite, nil)

	res := common.OrderResult{OrderID: o.ID, Trades: trades}
	switch {
	case len(trades) == 0:
		res.Status = common.Rejected
		res.Message = "Not enough liquidity"
	case o.Volume == 0:
		res.Status = common.Filled
	default:
		res.Status = common.PartiallyFilled
	}
	return res, nil
}

func (ob *OrderBook) placeLimit(o *common.Order) (common.OrderResult, error) {
	limit := ticks.Truncate(*o.LimitPrice, ob.tickSize)
	o.LimitPrice = &limit
	bound := ticks.FromPrice(limit, ob.tickSize)

	opposite := ob.oppositeBook(o.Side)
	trades := ob.match(o, opposite, &bound)

	res := common.OrderResult{OrderID: o.ID, Trades: trades}
	switch {
	case o.Volume == 0:
		res.Status = common.Filled
	case len(trades) > 0:
		res.Status = common.PartiallyFilled
		ob.restOrder(o)
		res.RestingOrder = o
	default:
		res.Status = common.Placed
		ob.restOrder(o)
		res.RestingOrder = o
	}
	return res, nil
}

// placeStop parks a stop/stop-limit order, or — if the current market
// already satisfies its trigger condition on arrival — immediately converts
// it to its active form and submits it on this same call stack (spec.md
// §4.5's "triggered stop-limit orders may cross immediately").
func (ob *OrderBook) placeStop(o *common.Order) (common.OrderResult, error) {
	if ob.triggered(o) {
		return ob.activateStop(o)
	}

	loc := book.Location{Tick: ticks.FromPrice(*o.StopPrice, ob.tickSize)}
	var b *book.Book
	if o.Side == common.Buy {
		b, loc.Side = ob.stopBuys, book.StopBuys
	} else {
		b, loc.Side = ob.stopSells, book.StopSells
	}
	lvl := b.GetOrCreate(loc.Tick)
	loc.Elem = lvl.PushBack(o)
	ob.locations.Set(o.ID, loc)

	return common.OrderResult{OrderID: o.ID, Status: common.Placed}, nil
}

// triggered reports whether o's stop condition is already satisfied by the
// last traded price (or, before any trade has occurred, is never triggered).
func (ob *OrderBook) triggered(o *common.Order) bool {
	if ob.marketPrice == nil {
		return false
	}
	if o.Side == common.Buy {
		return ob.marketPrice.GreaterThanOrEqual(*o.StopPrice)
	}
	return ob.marketPrice.LessThanOrEqual(*o.StopPrice)
}

// activateStop converts a triggered stop order to its active kind (stop ->
// market, stop-limit -> limit) and submits it through the unguarded path.
func (ob *OrderBook) activateStop(o *common.Order) (common.OrderResult, error) {
	if o.Kind == common.Stop {
		o.Kind = common.Market
	} else {
		o.Kind = common.Limit
	}
	if o.Kind == common.Market {
		return ob.placeMarket(o)
	}
	return ob.placeLimit(o)
}

// restOrder inserts a non-fully-filled limit order into its resting book.
func (ob *OrderBook) restOrder(o *common.Order) {
	b := ob.sideBook(o.Side)
	tick := ticks.FromPrice(*o.LimitPrice, ob.tickSize)
	lvl := b.GetOrCreate(tick)
	elem := lvl.PushBack(o)
	ob.totalVolume += o.Volume

	side := book.Bids
	if o.Side == common.Sell {
		side = book.Asks
	}
	ob.locations.Set(o.ID, book.Location{Side: side, Tick: tick, Elem: elem})
}

func (ob *OrderBook) sideBook(s common.Side) *book.Book {
	if s == common.Buy {
		return ob.bids
	}
	return ob.asks
}

func (ob *OrderBook) oppositeBook(s common.Side) *book.Book {
	return ob.sideBook(s.Opposite())
}
