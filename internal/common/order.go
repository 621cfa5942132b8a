package common

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Callback is invoked synchronously with a copy of each Trade an order
// participates in, while the order is still resting or acting as aggressor.
type Callback func(Trade)

// Order is a single instruction to buy or sell, and once admitted, the
// engine's record of its resting state. LimitPrice/StopPrice are nil when
// the kind does not carry that price (the "sentinel" of spec.md §3).
type Order struct {
	ID         string
	Side       Side
	Kind       Kind
	Volume     int64
	LimitPrice *decimal.Decimal
	StopPrice  *decimal.Decimal
	Timestamp  time.Time
	Callback   Callback
}

// String renders the order for debug logging; mirrors the teacher's
// Order.String() in internal/common/order.go.
func (o Order) String() string {
	limit := "-"
	if o.LimitPrice != nil {
		limit = o.LimitPrice.String()
	}
	stop := "-"
	if o.StopPrice != nil {
		stop = o.StopPrice.String()
	}
	return fmt.Sprintf(
		"Order(id=%s side=%s kind=%s vol=%d limit=%s stop=%s ts=%s)",
		o.ID, o.Side, o.Kind, o.Volume, limit, stop,
		o.Timestamp.Format(time.RFC3339Nano),
	)
}

// validate checks construction-time invariants from spec.md §3.
func validate(kind Kind, volume int64, limitPrice, stopPrice *decimal.Decimal) error {
	if volume <= 0 {
		return NewError(InvalidOrder, "volume must be positive, got %d", volume)
	}

	needsLimit := kind == Limit || kind == StopLimit
	needsStop := kind == Stop || kind == StopLimit

	if kind == Market && limitPrice != nil {
		return NewError(InvalidOrder, "market orders cannot specify a limit price")
	}
	if needsLimit {
		if limitPrice == nil {
			return NewError(InvalidOrder, "%s orders must specify a limit price", kind)
		}
		if limitPrice.Sign() <= 0 {
			return NewError(InvalidOrder, "limit price must be positive, got %s", limitPrice)
		}
	}
	if needsStop {
		if stopPrice == nil {
			return NewError(InvalidOrder, "%s orders must specify a stop price", kind)
		}
		if stopPrice.Sign() <= 0 {
			return NewError(InvalidOrder, "stop price must be positive, got %s", stopPrice)
		}
	}
	if !needsStop && stopPrice != nil {
		return NewError(InvalidOrder, "%s orders cannot specify a stop price", kind)
	}

	return nil
}

func newOrder(side Side, kind Kind, volume int64, limitPrice, stopPrice *decimal.Decimal) (Order, error) {
	if err := validate(kind, volume, limitPrice, stopPrice); err != nil {
		return Order{}, err
	}
	return Order{
		Side:       side,
		Kind:       kind,
		Volume:     volume,
		LimitPrice: limitPrice,
		StopPrice:  stopPrice,
	}, nil
}

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

// NewLimitBuy constructs a validated resting-or-matching buy limit order.
func NewLimitBuy(volume int64, price decimal.Decimal) (Order, error) {
	return newOrder(Buy, Limit, volume, ptr(price), nil)
}

// NewLimitSell constructs a validated resting-or-matching sell limit order.
func NewLimitSell(volume int64, price decimal.Decimal) (Order, error) {
	return newOrder(Sell, Limit, volume, ptr(price), nil)
}

// NewMarketBuy constructs a validated immediate-or-cancel buy market order.
func NewMarketBuy(volume int64) (Order, error) {
	return newOrder(Buy, Market, volume, nil, nil)
}

// NewMarketSell constructs a validated immediate-or-cancel sell market order.
func NewMarketSell(volume int64) (Order, error) {
	return newOrder(Sell, Market, volume, nil, nil)
}

// NewStopBuy constructs a validated contingent buy that converts to a
// market order once the market price reaches stopPrice.
func NewStopBuy(volume int64, stopPrice decimal.Decimal) (Order, error) {
	return newOrder(Buy, Stop, volume, nil, ptr(stopPrice))
}

// NewStopSell constructs a validated contingent sell that converts to a
// market order once the market price reaches stopPrice.
func NewStopSell(volume int64, stopPrice decimal.Decimal) (Order, error) {
	return newOrder(Sell, Stop, volume, nil, ptr(stopPrice))
}

// NewStopLimitBuy constructs a validated contingent buy that converts to a
// limit order at limitPrice once the market price reaches stopPrice.
func NewStopLimitBuy(volume int64, limitPrice, stopPrice decimal.Decimal) (Order, error) {
	return newOrder(Buy, StopLimit, volume, ptr(limitPrice), ptr(stopPrice))
}

// NewStopLimitSell constructs a validated contingent sell that converts to a
// limit order at limitPrice once the market price reaches stopPrice.
func NewStopLimitSell(volume int64, limitPrice, stopPrice decimal.Decimal) (Order, error) {
	return newOrder(Sell, StopLimit, volume, ptr(limitPrice), ptr(stopPrice))
}
