package tests

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZMCodi/orderbook-sub000/internal/common"
	"github.com/ZMCodi/orderbook-sub000/internal/engine"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func newBook() *engine.OrderBook {
	return engine.New(d("1"))
}

func place(t *testing.T, ob *engine.OrderBook, o common.Order) common.OrderResult {
	t.Helper()
	res, err := ob.PlaceOrder(&o)
	require.NoError(t, err)
	return res
}

// --- Literal end-to-end scenarios (spec §8) ---------------------------------

func TestScenario_PlaceAndRest(t *testing.T) {
	ob := newBook()
	o, err := common.NewLimitBuy(3, d("50"))
	require.NoError(t, err)

	res := place(t, ob, o)

	assert.Equal(t, common.Placed, res.Status)
	assert.Empty(t, res.Trades)

	bid, err := ob.BestBid()
	assert.NoError(t, err)
	assert.True(t, d("50").Equal(bid))

	_, err = ob.BestAsk()
	assert.ErrorIs(t, err, common.ErrNotInitialized)
	assert.Equal(t, int64(3), ob.TotalVolume())
}

func TestScenario_CrossOnArrival(t *testing.T) {
	ob := newBook()
	buy, _ := common.NewLimitBuy(3, d("50"))
	place(t, ob, buy)

	sell, _ := common.NewLimitSell(3, d("50"))
	res := place(t, ob, sell)

	require.Equal(t, common.Filled, res.Status)
	require.Len(t, res.Trades, 1)
	assert.True(t, d("50").Equal(res.Trades[0].Price))
	assert.Equal(t, int64(3), res.Trades[0].Volume)
	assert.Equal(t, common.Sell, res.Trades[0].TakerSide)

	_, err := ob.BestBid()
	assert.ErrorIs(t, err, common.ErrNotInitialized)
	_, err = ob.BestAsk()
	assert.ErrorIs(t, err, common.ErrNotInitialized)

	mkt, err := ob.MarketPrice()
	assert.NoError(t, err)
	assert.True(t, d("50").Equal(mkt))
	assert.Equal(t, int64(0), ob.TotalVolume())
}

func TestScenario_WalkBookLimitPartialFill(t *testing.T) {
	ob := newBook()
	for _, p := range []string{"50", "51", "52"} {
		o, _ := common.NewLimitSell(2, d(p))
		place(t, ob, o)
	}

	buy, _ := common.NewLimitBuy(8, d("53"))
	res := place(t, ob, buy)

	require.Equal(t, common.PartiallyFilled, res.Status)
	require.Len(t, res.Trades, 3)
	assert.True(t, d("50").Equal(res.Trades[0].Price))
	assert.True(t, d("51").Equal(res.Trades[1].Price))
	assert.True(t, d("52").Equal(res.Trades[2].Price))

	bid, err := ob.BestBid()
	require.NoError(t, err)
	assert.True(t, d("53").Equal(bid))

	_, err = ob.BestAsk()
	assert.ErrorIs(t, err, common.ErrNotInitialized)

	mkt, _ := ob.MarketPrice()
	assert.True(t, d("52").Equal(mkt))
	assert.Equal(t, int64(2), ob.TotalVolume())
}

func TestScenario_MarketWithNoLiquidity(t *testing.T) {
	ob := newBook()
	buy, _ := common.NewMarketBuy(5)
	res := place(t, ob, buy)

	assert.Equal(t, common.Rejected, res.Status)
	assert.Equal(t, "Not enough liquidity", res.Message)
	assert.Empty(t, res.Trades)
	assert.Equal(t, int64(0), ob.TotalVolume())
}

func TestScenario_TimePriority(t *testing.T) {
	ob := newBook()
	var ids []string
	for _, vol := range []int64{5, 10, 2} {
		o, _ := common.NewLimitBuy(vol, d("50"))
		res := place(t, ob, o)
		ids = append(ids, res.OrderID)
	}

	sell, _ := common.NewLimitSell(10, d("50"))
	res := place(t, ob, sell)
	require.Len(t, res.Trades, 2)
	assert.Equal(t, int64(5), res.Trades[0].Volume)
	assert.Equal(t, int64(5), res.Trades[1].Volume)

	resting := ob.BidsAt(d("50"))
	require.Len(t, resting, 2)
	assert.Equal(t, ids[1], resting[0].ID)
	assert.Equal(t, int64(5), resting[0].Volume)
	assert.Equal(t, ids[2], resting[1].ID)
	assert.Equal(t, int64(2), resting[1].Volume)
}

func TestScenario_StopTriggerCascade(t *testing.T) {
	ob := newBook()
	stopBuy, _ := common.NewStopBuy(5, d("55"))
	place(t, ob, stopBuy)

	sell, _ := common.NewLimitSell(5, d("56"))
	place(t, ob, sell)

	buy, _ := common.NewLimitBuy(5, d("60"))
	place(t, ob, buy)

	mkt, err := ob.MarketPrice()
	require.NoError(t, err)
	assert.True(t, d("56").Equal(mkt))

	_, err = ob.BestBid()
	assert.ErrorIs(t, err, common.ErrNotInitialized)
	_, err = ob.BestAsk()
	assert.ErrorIs(t, err, common.ErrNotInitialized)
}

func TestScenario_IncreaseVolumeSupersedes(t *testing.T) {
	ob := newBook()
	o, _ := common.NewLimitBuy(5, d("50"))
	res := place(t, ob, o)
	originalID := res.OrderID

	modRes, err := ob.ModifyVolume(originalID, 10)
	require.NoError(t, err)
	assert.Equal(t, common.Modified, modRes.Status)
	assert.NotEqual(t, originalID, modRes.OrderID)

	resting := ob.BidsAt(d("50"))
	require.Len(t, resting, 1)
	assert.Equal(t, int64(10), resting[0].Volume)

	audit := ob.AuditList()
	require.Len(t, audit, 1)
	assert.Equal(t, originalID, audit[0].ID)
	assert.Equal(t, common.AuditFullRemoval, audit[0].VolumeDelta)
}

// --- Laws --------------------------------------------------------------------

func TestLaw_RoundTripCancel(t *testing.T) {
	ob := newBook()
	o, _ := common.NewLimitBuy(3, d("50"))
	res := place(t, ob, o)

	_, err := ob.CancelOrder(res.OrderID)
	require.NoError(t, err)

	assert.Equal(t, int64(0), ob.TotalVolume())
	_, err = ob.BestBid()
	assert.ErrorIs(t, err, common.ErrNotInitialized)
	assert.Len(t, ob.AuditList(), 1)
}

func TestLaw_ModifyVolumeIdempotence(t *testing.T) {
	ob := newBook()
	o, _ := common.NewLimitBuy(5, d("50"))
	res := place(t, ob, o)

	modRes, err := ob.ModifyVolume(res.OrderID, 5)
	require.NoError(t, err)
	assert.Equal(t, common.Rejected, modRes.Status)
	assert.Equal(t, "Volume unchanged", modRes.Message)
	assert.Empty(t, ob.AuditList())
}

// --- Invariants & edge cases ---------------------------------------------------

func TestCancelUnknownIDFails(t *testing.T) {
	ob := newBook()
	_, err := ob.CancelOrder("no-such-id")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDecreaseVolumeInPlacePreservesPriority(t *testing.T) {
	ob := newBook()
	first, _ := common.NewLimitBuy(5, d("50"))
	r1 := place(t, ob, first)
	second, _ := common.NewLimitBuy(5, d("50"))
	place(t, ob, second)

	modRes, err := ob.ModifyVolume(r1.OrderID, 2)
	require.NoError(t, err)
	assert.Equal(t, common.Modified, modRes.Status)
	assert.Equal(t, r1.OrderID, modRes.OrderID)

	resting := ob.BidsAt(d("50"))
	require.Len(t, resting, 2)
	assert.Equal(t, r1.OrderID, resting[0].ID, "decrease must preserve queue position")
	assert.Equal(t, int64(2), resting[0].Volume)

	audit := ob.AuditList()
	require.Len(t, audit, 1)
	assert.Equal(t, int64(2), audit[0].VolumeDelta)
}

func TestModifyPriceSupersedesAndMayCross(t *testing.T) {
	ob := newBook()
	sell, _ := common.NewLimitSell(5, d("60"))
	place(t, ob, sell)

	buy, _ := common.NewLimitBuy(5, d("50"))
	res := place(t, ob, buy)

	modRes, err := ob.ModifyPrice(res.OrderID, d("60"))
	require.NoError(t, err)
	assert.Equal(t, common.Modified, modRes.Status)
	require.Len(t, modRes.Trades, 1)
	assert.True(t, d("60").Equal(modRes.Trades[0].Price))
}

func TestReentrancyGuardRejectsNestedPlaceOrder(t *testing.T) {
	ob := newBook()
	sell, _ := common.NewLimitSell(5, d("50"))
	sell.Callback = func(common.Trade) {
		nested, _ := common.NewLimitBuy(1, d("1"))
		_, err := ob.PlaceOrder(&nested)
		assert.ErrorIs(t, err, common.ErrReentrancy)
	}
	place(t, ob, sell)

	buy, _ := common.NewLimitBuy(5, d("50"))
	place(t, ob, buy)
}

func TestCallbackFiresSynchronouslyOnTrade(t *testing.T) {
	ob := newBook()
	var got []common.Trade
	sell, _ := common.NewLimitSell(5, d("50"))
	sell.Callback = func(tr common.Trade) { got = append(got, tr) }
	place(t, ob, sell)

	buy, _ := common.NewLimitBuy(5, d("50"))
	place(t, ob, buy)

	require.Len(t, got, 1)
	assert.Equal(t, int64(5), got[0].Volume)
}

func TestDepthReturnsTopLevels(t *testing.T) {
	ob := newBook()
	for _, p := range []string{"50", "49", "48"} {
		o, _ := common.NewLimitBuy(1, d(p))
		place(t, ob, o)
	}

	snap := ob.Depth(2)
	require.Len(t, snap.Bids, 2)
	assert.True(t, d("50").Equal(snap.Bids[0].Price))
	assert.True(t, d("49").Equal(snap.Bids[1].Price))
}

func TestVolumeAtUnrecognizedTickReturnsZero(t *testing.T) {
	ob := newBook()
	o, _ := common.NewLimitBuy(5, d("50"))
	place(t, ob, o)

	assert.Equal(t, int64(0), ob.VolumeAt(d("999")))
}

func TestClearResetsEverything(t *testing.T) {
	ob := newBook()
	o, _ := common.NewLimitBuy(5, d("50"))
	res := place(t, ob, o)
	_, _ = ob.CancelOrder(res.OrderID)

	ob.Clear()

	assert.Equal(t, int64(0), ob.TotalVolume())
	assert.Empty(t, ob.AuditList())
	assert.Empty(t, ob.OrderList())
	assert.Empty(t, ob.TradeList())
	_, err := ob.MarketPrice()
	assert.ErrorIs(t, err, common.ErrNotInitialized)
}
