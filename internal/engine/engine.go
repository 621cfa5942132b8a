// Package engine is the matching engine core (spec.md §2 components 7-11):
// the OrderBook type, its matching algorithm, stop dispatcher, mutation
// operations, depth introspection, and callback registry. Grounded on the
// teacher's internal/engine/orderbook.go (OrderBook, PriceLevel,
// btree-backed books, Match()) generalized to four price-indexed books,
// decimal prices, stop orders, and cancel/modify semantics.
package engine

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ZMCodi/orderbook-sub000/internal/book"
	"github.com/ZMCodi/orderbook-sub000/internal/common"
	"github.com/ZMCodi/orderbook-sub000/internal/idpool"
)

// DefaultTickSize is the engine's default tick size (spec.md §4.1).
var DefaultTickSize = decimal.NewFromFloat(0.01)

// OrderBook is the engine state of spec.md §3: four price-indexed books, a
// location index, an identifier pool, and the append-only logs.
type OrderBook struct {
	tickSize decimal.Decimal

	bids, asks         *book.Book
	stopBuys, stopSells *book.Book
	locations          *book.Index
	ids                *idpool.Pool

	tradeLog []common.Trade
	orderLog []common.Order
	auditLog []common.AuditRecord

	marketPrice *decimal.Decimal
	totalVolume int64

	// active guards every public entrypoint against reentrancy: a callback
	// fired synchronously from inside a match may not call back into the
	// engine on the same stack (spec.md §4.11, §5), and the stop dispatcher
	// is not itself reentrant (spec.md §4.5) — both are enforced by this
	// single flag, held for the duration of one outer public call.
	active bool

	log zerolog.Logger
	now func() time.Time
}

// Option configures an OrderBook at construction.
type Option func(*OrderBook)

// WithLogger stores a structured logger on the engine; the default is
// zerolog.Nop(). The engine's operations do not write any log events to it.
func WithLogger(logger zerolog.Logger) Option {
	return func(ob *OrderBook) { ob.log = logger }
}

// WithIDFactory overrides how order/trade identifiers are generated (spec.md
// §1: the core consumes a supplied id factory rather than owning one). The
// default is idpool.DefaultFactory (github.com/google/uuid).
func WithIDFactory(gen idpool.Factory) Option {
	return func(ob *OrderBook) { ob.ids = idpool.New(gen) }
}

// WithClock overrides the engine's now() source (spec.md §1: the core
// consumes a supplied now() source rather than calling time.Now directly),
// letting tests and replay tooling control timestamps deterministically.
func WithClock(now func() time.Time) Option {
	return func(ob *OrderBook) { ob.now = now }
}

// New constructs an OrderBook with the given tick size (spec.md §6:
// OrderBook(tickSize = 0.01)). Pass decimal.Zero-valued tickSize to accept
// the default.
func New(tickSize decimal.Decimal, opts ...Option) *OrderBook {
	if tickSize.IsZero() {
		tickSize = DefaultTickSize
	}
	ob := &OrderBook{
		tickSize:  tickSize,
		bids:      book.New(false),
		asks:      book.New(true),
		stopBuys:  book.New(true),
		stopSells: book.New(false),
		locations: book.NewIndex(),
		ids:       idpool.New(nil),
		log:       zerolog.Nop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(ob)
	}
	return ob
}

// TickSize returns the engine's fixed tick size.
func (ob *OrderBook) TickSize() decimal.Decimal {
	return ob.tickSize
}

// TotalVolume returns the sum of resting bid+ask volume (spec.md §8
// invariant 3; stop books do not contribute).
func (ob *OrderBook) TotalVolume() int64 {
	return ob.totalVolume
}

// IDPool exposes the identifier pool for introspection/testing.
func (ob *OrderBook) IDPool() *idpool.Pool {
	return ob.ids
}

// TradeList returns the immutable trade log, oldest first.
func (ob *OrderBook) TradeList() []common.Trade {
	out := make([]common.Trade, len(ob.tradeLog))
	copy(out, ob.tradeLog)
	return out
}

// OrderList returns every admitted order's original bookkeeping copy,
// oldest first.
func (ob *OrderBook) OrderList() []common.Order {
	out := make([]common.Order, len(ob.orderLog))
	copy(out, ob.orderLog)
	return out
}

// AuditList returns the append-only cancellation/volume-decrease log.
func (ob *OrderBook) AuditList() []common.AuditRecord {
	out := make([]common.AuditRecord, len(ob.auditLog))
	copy(out, ob.auditLog)
	return out
}

// Clear resets every index, pool, and scalar to initial state (spec.md
// §4.12), dropping all orders and pending callbacks.
func (ob *OrderBook) Clear() {
	ob.bids.Clear()
	ob.asks.Clear()
	ob.stopBuys.Clear()
	ob.stopSells.Clear()
	ob.locations.Clear()
	ob.ids.Clear()
	ob.tradeLog = nil
	ob.orderLog = nil
	ob.auditLog = nil
	ob.marketPrice = nil
	ob.totalVolume = 0
}

// enter acquires the reentrancy guard for the duration of one public call.
func (ob *OrderBook) enter() error {
	if ob.active {
		return common.NewError(common.Reentrancy, "cannot call back into the engine from inside a callback or nested dispatch")
	}
	ob.active = true
	return nil
}

func (ob *OrderBook) exit() {
	ob.active = false
}
