package engine

import (
	"github.com/ZMCodi/orderbook-sub000/internal/book"
	"github.com/ZMCodi/orderbook-sub000/internal/common"
	"github.com/ZMCodi/orderbook-sub000/internal/ticks"
)

// match walks opposite, consuming resting levels against the aggressor o
// until o is filled, the opposite book is exhausted, or (for a bounded
// aggressor, i.e. a limit order) the next level's price is no longer
// acceptable. Bound is the aggressor's own truncated tick and is nil for
// market orders, which accept any price (spec.md §4.3).
func (ob *OrderBook) match(o *common.Order, opposite *book.Book, bound *ticks.Tick) []common.Trade {
	var trades []common.Trade

	for o.Volume > 0 {
		lvl, ok := opposite.Best()
		if !ok {
			break
		}
		if bound != nil && !priceAcceptable(o.Side, lvl.Tick, *bound) {
			break
		}

		for o.Volume > 0 && !lvl.IsEmpty() {
			elem := lvl.Front()
			resting := elem.Value.(*common.Order)

			q := o.Volume
			if resting.Volume < q {
				q = resting.Volume
			}

			o.Volume -= q
			resting.Volume -= q
			lvl.DecrementVolume(q)
			ob.totalVolume -= q

			trade := ob.newTrade(o, resting, q)
			trades = append(trades, trade)
			ob.tradeLog = append(ob.tradeLog, trade)

			if resting.Callback != nil {
				resting.Callback(trade)
			}
			if o.Callback != nil {
				o.Callback(trade)
			}

			if resting.Volume == 0 {
				lvl.Remove(elem)
				ob.locations.Delete(resting.ID)
			}
		}

		if lvl.IsEmpty() {
			opposite.DeleteIfEmpty(lvl.Tick)
		}
	}

	return trades
}

// priceAcceptable reports whether a resting level at restingTick may trade
// against a bounded aggressor on the given side: a buy aggressor accepts
// asks at or below its own tick, a sell aggressor accepts bids at or above.
func priceAcceptable(aggressorSide common.Side, restingTick, bound ticks.Tick) bool {
	if aggressorSide == common.Buy {
		return restingTick <= bound
	}
	return restingTick >= bound
}

// newTrade builds the trade record for one fill between aggressor and
// resting, priced at the resting order's level (price-time priority gives
// the resting side its quoted price).
func (ob *OrderBook) newTrade(aggressor, resting *common.Order, volume int64) common.Trade {
	// Every order resting in a bid/ask book got there through restOrder,
	// which only parks limit orders, so LimitPrice is always set here.
	price := *resting.LimitPrice

	t := common.Trade{
		ID:        ob.ids.Issue(),
		Price:     price,
		Volume:    volume,
		Timestamp: ob.now(),
		TakerSide: aggressor.Side,
	}
	if aggressor.Side == common.Buy {
		t.BuyerID, t.SellerID = aggressor.ID, resting.ID
	} else {
		t.BuyerID, t.SellerID = resting.ID, aggressor.ID
	}
	return t
}
