package engine

import (
	"github.com/shopspring/decimal"

	"github.com/ZMCodi/orderbook-sub000/internal/common"
	"github.com/ZMCodi/orderbook-sub000/internal/ticks"
)

// BestBid returns the highest resting bid price, or NotInitialized if bids
// are empty (spec.md §4.10).
func (ob *OrderBook) BestBid() (decimal.Decimal, error) {
	t, ok := ob.bids.BestTick()
	if !ok {
		return decimal.Zero, common.NewError(common.NotInitialized, "no resting bids")
	}
	return ticks.ToPrice(t, ob.tickSize), nil
}

// BestAsk returns the lowest resting ask price, or NotInitialized if asks
// are empty.
func (ob *OrderBook) BestAsk() (decimal.Decimal, error) {
	t, ok := ob.asks.BestTick()
	if !ok {
		return decimal.Zero, common.NewError(common.NotInitialized, "no resting asks")
	}
	return ticks.ToPrice(t, ob.tickSize), nil
}

// MarketPrice returns the last traded price, or NotInitialized before the
// first trade.
func (ob *OrderBook) MarketPrice() (decimal.Decimal, error) {
	if ob.marketPrice == nil {
		return decimal.Zero, common.NewError(common.NotInitialized, "no trades yet")
	}
	return *ob.marketPrice, nil
}

// Spread returns bestAsk - bestBid, or NotInitialized if either is unset.
func (ob *OrderBook) Spread() (decimal.Decimal, error) {
	bid, err := ob.BestBid()
	if err != nil {
		return decimal.Zero, err
	}
	ask, err := ob.BestAsk()
	if err != nil {
		return decimal.Zero, err
	}
	return ask.Sub(bid), nil
}

// bestBidSentinel/bestAskSentinel return -1 in place of an error, for
// internal callers (e.g. depth snapshots) that want spec.md's sentinel
// convention rather than a raised error.
func (ob *OrderBook) bestBidSentinel() decimal.Decimal {
	if p, err := ob.BestBid(); err == nil {
		return p
	}
	return decimal.NewFromInt(common.SentinelPrice)
}

func (ob *OrderBook) bestAskSentinel() decimal.Decimal {
	if p, err := ob.BestAsk(); err == nil {
		return p
	}
	return decimal.NewFromInt(common.SentinelPrice)
}

func (ob *OrderBook) marketPriceSentinel() decimal.Decimal {
	if ob.marketPrice == nil {
		return decimal.NewFromInt(common.SentinelPrice)
	}
	return *ob.marketPrice
}
