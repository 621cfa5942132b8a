// Command benchmark is the engine's external stress driver (spec.md §6): it
// is not part of the core library, and the core never imports it. It
// generates randomized orders near the running market price, submits them
// one at a time to a single OrderBook, times the run, and writes a text
// summary. Order generation runs concurrently across a worker pool;
// submission to the book stays on one goroutine, since the core is an
// unsynchronized single-threaded data structure (spec.md §5 Non-goals).
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	tomb "gopkg.in/tomb.v2"

	"github.com/ZMCodi/orderbook-sub000/internal/bench"
	"github.com/ZMCodi/orderbook-sub000/internal/common"
	"github.com/ZMCodi/orderbook-sub000/internal/engine"
)

const (
	defaultIterations = 1000
	workerCount       = 8
	startingPrice     = 100.00
	priceJitterTicks  = 50
)

var (
	ordersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "benchmark_orders_placed_total",
		Help: "Total orders submitted to the book during the run.",
	})
	tradesExecuted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "benchmark_trades_executed_total",
		Help: "Total trades produced during the run.",
	})
	placeLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "benchmark_place_order_seconds",
		Help:    "Wall-clock latency of a single PlaceOrder call.",
		Buckets: prometheus.DefBuckets,
	})
)

func main() {
	n := parseIterations(os.Args)

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	ob := engine.New(decimal.Zero, engine.WithLogger(logger))

	seed, err := common.NewLimitBuy(1, decimal.NewFromFloat(startingPrice))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed book")
	}
	if _, err := ob.PlaceOrder(&seed); err != nil {
		log.Fatal().Err(err).Msg("failed to seed book")
	}

	orders := make(chan *common.Order, workerCount*4)
	t, ctx := tomb.WithContext(context.Background())

	pool := bench.NewPool(workerCount)
	t.Go(func() error {
		return pool.Run(t, n, logger, func(_ *tomb.Tomb, i int) error {
			o := randomOrder(i)
			select {
			case orders <- o:
			case <-ctx.Done():
			}
			return nil
		})
	})

	start := time.Now()
	var totalTrades int
	go func() {
		<-t.Dead()
		close(orders)
	}()
	for o := range orders {
		submitStart := time.Now()
		res, err := ob.PlaceOrder(o)
		placeLatency.Observe(time.Since(submitStart).Seconds())
		if err != nil {
			logger.Warn().Err(err).Msg("order rejected by construction")
			continue
		}
		ordersPlaced.Inc()
		totalTrades += len(res.Trades)
		tradesExecuted.Add(float64(len(res.Trades)))
	}
	elapsed := time.Since(start)

	if err := t.Wait(); err != nil {
		log.Error().Err(err).Msg("generation pool exited with error")
	}

	summary := fmt.Sprintf(
		"iterations=%d\nelapsed=%s\ntrades=%d\ntotalVolume=%d\ntradeLogLen=%d\nauditLogLen=%d\n",
		n, elapsed, totalTrades, ob.TotalVolume(), len(ob.TradeList()), len(ob.AuditList()),
	)
	if err := os.WriteFile("benchmark_summary.txt", []byte(summary), 0o644); err != nil {
		log.Fatal().Err(err).Msg("failed to write summary")
	}
	fmt.Print(summary)
}

// parseIterations reads a single positive integer from argv[1]; any parse
// failure or non-positive value silently falls back to defaultIterations
// (spec.md §6).
func parseIterations(args []string) int {
	if len(args) < 2 {
		return defaultIterations
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n <= 0 {
		return defaultIterations
	}
	return n
}

// randomOrder picks a random side/kind/volume/price near startingPrice.
func randomOrder(seed int) *common.Order {
	r := rand.New(rand.NewSource(int64(seed)))
	side := common.Buy
	if r.Intn(2) == 1 {
		side = common.Sell
	}
	volume := int64(1 + r.Intn(100))
	jitter := decimal.NewFromFloat(float64(r.Intn(priceJitterTicks)-priceJitterTicks/2) * 0.01)
	price := decimal.NewFromFloat(startingPrice).Add(jitter)

	var (
		o   common.Order
		err error
	)
	switch r.Intn(3) {
	case 0:
		if side == common.Buy {
			o, err = common.NewMarketBuy(volume)
		} else {
			o, err = common.NewMarketSell(volume)
		}
	case 1:
		if side == common.Buy {
			o, err = common.NewLimitBuy(volume, price)
		} else {
			o, err = common.NewLimitSell(volume, price)
		}
	default:
		stop := price
		if side == common.Buy {
			o, err = common.NewStopBuy(volume, stop)
		} else {
			o, err = common.NewStopSell(volume, stop)
		}
	}
	if err != nil {
		o, _ = common.NewLimitBuy(volume, price)
	}
	return &o
}
