// Package ticks converts between real prices and the integer tick indices
// the book is keyed by, grounded on original_source/include/orderbook/Utils.h
// (utils::convertTick / utils::trunc) but done with decimal.Decimal instead
// of float64 so the conversion never drifts.
package ticks

import "github.com/shopspring/decimal"

// Tick is a signed integer tick index. All book keys are Ticks.
type Tick int64

// FromPrice maps price to its tick index: floor(price / tickSize), i.e.
// truncation toward -inf. Matches original_source's utils::convertTick.
func FromPrice(price, tickSize decimal.Decimal) Tick {
	quotient := price.DivRound(tickSize, int32(decimal.DivisionPrecision)).Floor()
	return Tick(quotient.IntPart())
}

// ToPrice returns the displayed price of a tick: tick * tickSize.
func ToPrice(t Tick, tickSize decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(t)).Mul(tickSize)
}

// Truncate rounds price down to the nearest tick and returns it as a price,
// i.e. Truncate(p, s) == ToPrice(FromPrice(p, s), s). Matches
// original_source's utils::trunc.
func Truncate(price, tickSize decimal.Decimal) decimal.Decimal {
	return ToPrice(FromPrice(price, tickSize), tickSize)
}
