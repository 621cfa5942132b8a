package common

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewLimitBuyRequiresPositiveVolume(t *testing.T) {
	_, err := NewLimitBuy(0, decimal.NewFromFloat(10))
	assert.ErrorIs(t, err, ErrInvalidOrder)
}

func TestNewLimitBuyRequiresPositivePrice(t *testing.T) {
	_, err := NewLimitBuy(10, decimal.NewFromFloat(-1))
	assert.ErrorIs(t, err, ErrInvalidOrder)
}

func TestNewMarketBuyRejectsLimitPrice(t *testing.T) {
	o, err := NewMarketBuy(10)
	assert.NoError(t, err)
	assert.Nil(t, o.LimitPrice)
	assert.Equal(t, Market, o.Kind)

	price := decimal.NewFromFloat(10)
	_, err = newOrder(Buy, Market, 10, &price, nil)
	assert.ErrorIs(t, err, ErrInvalidOrder)
}

func TestNewStopLimitBuyRequiresBothPrices(t *testing.T) {
	_, err := NewStopLimitBuy(10, decimal.NewFromFloat(10), decimal.NewFromFloat(11))
	assert.NoError(t, err)

	limit := decimal.NewFromFloat(10)
	_, err = newOrder(Buy, StopLimit, 10, &limit, nil)
	assert.Error(t, err)
}

func TestErrorIsMatchesByKind(t *testing.T) {
	err := NewError(NotFound, "missing %s", "abc")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrInvalidOrder))
}
