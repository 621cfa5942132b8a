package ticks

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFromPrice(t *testing.T) {
	tickSize := decimal.NewFromFloat(0.01)

	assert.Equal(t, Tick(10000), FromPrice(decimal.NewFromFloat(100.00), tickSize))
	assert.Equal(t, Tick(10001), FromPrice(decimal.NewFromFloat(100.01), tickSize))
	assert.Equal(t, Tick(10000), FromPrice(decimal.NewFromFloat(100.009), tickSize), "truncates toward -inf, not nearest")
	assert.Equal(t, Tick(-10001), FromPrice(decimal.NewFromFloat(-100.001), tickSize), "floor division on negative prices")
}

func TestToPrice(t *testing.T) {
	tickSize := decimal.NewFromFloat(0.01)
	assert.True(t, decimal.NewFromFloat(100.00).Equal(ToPrice(Tick(10000), tickSize)))
	assert.True(t, decimal.NewFromFloat(-100.01).Equal(ToPrice(Tick(-10001), tickSize)))
}

func TestTruncate(t *testing.T) {
	tickSize := decimal.NewFromFloat(0.01)
	assert.True(t, decimal.NewFromFloat(100.00).Equal(Truncate(decimal.NewFromFloat(100.009), tickSize)))
	assert.True(t, decimal.NewFromFloat(100.01).Equal(Truncate(decimal.NewFromFloat(100.01), tickSize)))
}

func TestRoundTrip(t *testing.T) {
	tickSize := decimal.NewFromFloat(0.05)
	for _, p := range []float64{0.05, 1.00, 3.15, 9.999} {
		price := decimal.NewFromFloat(p)
		tick := FromPrice(price, tickSize)
		assert.True(t, Truncate(price, tickSize).Equal(ToPrice(tick, tickSize)))
	}
}
