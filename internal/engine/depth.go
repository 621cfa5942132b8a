package engine

import (
	"github.com/shopspring/decimal"

	"github.com/ZMCodi/orderbook-sub000/internal/book"
	"github.com/ZMCodi/orderbook-sub000/internal/common"
	"github.com/ZMCodi/orderbook-sub000/internal/ticks"
)

// Level is one displayed price level of a depth snapshot (spec.md §4.10).
type Level struct {
	Price      decimal.Decimal
	Volume     int64
	OrderCount int
}

// DepthSnapshot is the result of depth/depthAtPrice/depthInRange: the top
// bid and ask levels plus the engine's current scalars.
type DepthSnapshot struct {
	Bids        []Level
	Asks        []Level
	TotalVolume int64
	BestBid     decimal.Decimal
	BestAsk     decimal.Decimal
	MarketPrice decimal.Decimal
}

func (ob *OrderBook) levels(b *book.Book, n int) []Level {
	out := make([]Level, 0, n)
	b.Scan(func(lvl *book.PriceLevel) bool {
		if len(out) >= n {
			return false
		}
		out = append(out, Level{
			Price:      ticks.ToPrice(lvl.Tick, ob.tickSize),
			Volume:     lvl.TotalVolume,
			OrderCount: lvl.OrderCount(),
		})
		return true
	})
	return out
}

func (ob *OrderBook) scalars() (int64, decimal.Decimal, decimal.Decimal, decimal.Decimal) {
	return ob.totalVolume, ob.bestBidSentinel(), ob.bestAskSentinel(), ob.marketPriceSentinel()
}

// Depth returns the top N levels of each side (spec.md §4.10).
func (ob *OrderBook) Depth(n int) DepthSnapshot {
	vol, bid, ask, mkt := ob.scalars()
	return DepthSnapshot{
		Bids:        ob.levels(ob.bids, n),
		Asks:        ob.levels(ob.asks, n),
		TotalVolume: vol,
		BestBid:     bid,
		BestAsk:     ask,
		MarketPrice: mkt,
	}
}

// DepthAtPrice centers the query on p (spec.md §4.10): when p sits strictly
// inside one side's best price, that side is re-centered on the level at or
// below (bids) / at or above (asks) p; the other side reports its ordinary
// top-N. p in the spread or at best behaves like Depth(n).
func (ob *OrderBook) DepthAtPrice(p decimal.Decimal, n int) DepthSnapshot {
	bestBid, bidErr := ob.BestBid()
	bestAsk, askErr := ob.BestAsk()

	if bidErr == nil && p.LessThan(bestBid) {
		return ob.depthCenteredOn(ob.bids, p, n, true)
	}
	if askErr == nil && p.GreaterThan(bestAsk) {
		return ob.depthCenteredOn(ob.asks, p, n, false)
	}
	return ob.Depth(n)
}

func (ob *OrderBook) depthCenteredOn(target *book.Book, p decimal.Decimal, n int, isBids bool) DepthSnapshot {
	pivot := ticks.FromPrice(p, ob.tickSize)
	out := make([]Level, 0, n)
	target.Ascend(pivot, func(lvl *book.PriceLevel) bool {
		if len(out) >= n {
			return false
		}
		out = append(out, Level{
			Price:      ticks.ToPrice(lvl.Tick, ob.tickSize),
			Volume:     lvl.TotalVolume,
			OrderCount: lvl.OrderCount(),
		})
		return true
	})

	vol, bid, ask, mkt := ob.scalars()
	snap := DepthSnapshot{TotalVolume: vol, BestBid: bid, BestAsk: ask, MarketPrice: mkt}
	if isBids {
		snap.Bids = out
		snap.Asks = ob.levels(ob.asks, n)
	} else {
		snap.Asks = out
		snap.Bids = ob.levels(ob.bids, n)
	}
	return snap
}

// DepthInRange returns every level with displayed price in [minPrice,
// maxPrice]: bid levels with tick >= tick(minPrice), ask levels with tick <=
// tick(maxPrice). When the whole range sits on one side of the spread, only
// that side is walked.
func (ob *OrderBook) DepthInRange(minPrice, maxPrice decimal.Decimal) DepthSnapshot {
	vol, bid, ask, mkt := ob.scalars()
	snap := DepthSnapshot{TotalVolume: vol, BestBid: bid, BestAsk: ask, MarketPrice: mkt}

	bestAsk, askErr := ob.BestAsk()
	bestBid, bidErr := ob.BestBid()

	// Whole-range short-circuit: a range strictly above bestAsk has no bid
	// levels in it (bids never price above bestBid <= bestAsk), and a range
	// strictly below bestBid has no ask levels, so the opposite side need
	// not be walked at all.
	skipBids := askErr == nil && minPrice.GreaterThan(bestAsk)
	skipAsks := bidErr == nil && maxPrice.LessThan(bestBid)

	minTick := ticks.FromPrice(minPrice, ob.tickSize)
	maxTick := ticks.FromPrice(maxPrice, ob.tickSize)

	if !skipBids {
		ob.bids.Scan(func(lvl *book.PriceLevel) bool {
			if lvl.Tick < minTick {
				return false
			}
			if lvl.Tick <= maxTick {
				snap.Bids = append(snap.Bids, Level{
					Price:      ticks.ToPrice(lvl.Tick, ob.tickSize),
					Volume:     lvl.TotalVolume,
					OrderCount: lvl.OrderCount(),
				})
			}
			return true
		})
	}
	if !skipAsks {
		ob.asks.Scan(func(lvl *book.PriceLevel) bool {
			if lvl.Tick > maxTick {
				return false
			}
			if lvl.Tick >= minTick {
				snap.Asks = append(snap.Asks, Level{
					Price:      ticks.ToPrice(lvl.Tick, ob.tickSize),
					Volume:     lvl.TotalVolume,
					OrderCount: lvl.OrderCount(),
				})
			}
			return true
		})
	}
	return snap
}

// levelAt resolves price p to the resting level on the expected side,
// dispatching by comparison against bestBid/bestAsk: p at or below bestBid
// is looked up in bids, p at or above bestAsk in asks, otherwise not found.
func (ob *OrderBook) levelAt(p decimal.Decimal) (*book.PriceLevel, bool) {
	t := ticks.FromPrice(p, ob.tickSize)

	if bid, err := ob.BestBid(); err == nil && p.LessThanOrEqual(bid) {
		return ob.bids.Get(t)
	}
	if ask, err := ob.BestAsk(); err == nil && p.GreaterThanOrEqual(ask) {
		return ob.asks.Get(t)
	}
	return nil, false
}

// BidsAt returns the resting orders at p's tick on the bid side, oldest
// first, or nil if p is not a known bid level.
func (ob *OrderBook) BidsAt(p decimal.Decimal) []common.Order {
	if bid, err := ob.BestBid(); err != nil || p.GreaterThan(bid) {
		return nil
	}
	lvl, ok := ob.bids.Get(ticks.FromPrice(p, ob.tickSize))
	if !ok {
		return nil
	}
	return lvl.Snapshot()
}

// AsksAt returns the resting orders at p's tick on the ask side, oldest
// first, or nil if p is not a known ask level.
func (ob *OrderBook) AsksAt(p decimal.Decimal) []common.Order {
	if ask, err := ob.BestAsk(); err != nil || p.LessThan(ask) {
		return nil
	}
	lvl, ok := ob.asks.Get(ticks.FromPrice(p, ob.tickSize))
	if !ok {
		return nil
	}
	return lvl.Snapshot()
}

// OrdersAt dispatches to BidsAt or AsksAt by comparing p against
// bestBid/bestAsk (spec.md §4.10, grounded on the original's ordersAt).
func (ob *OrderBook) OrdersAt(p decimal.Decimal) []common.Order {
	lvl, ok := ob.levelAt(p)
	if !ok {
		return nil
	}
	return lvl.Snapshot()
}

// VolumeAt returns the total resting volume at p's tick, on whichever side
// it is found, or 0 if p is on neither side.
func (ob *OrderBook) VolumeAt(p decimal.Decimal) int64 {
	lvl, ok := ob.levelAt(p)
	if !ok {
		return 0
	}
	return lvl.TotalVolume
}

// GetOrderByID returns the current resting state of id, or NotFound if it
// is not currently resting.
func (ob *OrderBook) GetOrderByID(id string) (common.Order, error) {
	loc, ok := ob.locations.Get(id)
	if !ok {
		return common.Order{}, common.NewError(common.NotFound, "no resting order with id %s", id)
	}
	o := loc.Elem.Value.(*common.Order)
	return *o, nil
}
