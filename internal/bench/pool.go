// Package bench supervises the benchmark driver's order-generation workers.
// Adapted from the teacher's internal/worker.go WorkerPool: a fixed number
// of goroutines pull generation tasks from a channel under a tomb.Tomb,
// so the driver can die cleanly on cancellation or on the first worker
// error instead of leaking goroutines.
package bench

import (
	"sync"

	"github.com/rs/zerolog"
	tomb "gopkg.in/tomb.v2"
)

const taskChanSize = 100

// GenFunc produces one randomized order submission; n is the iteration
// index being generated.
type GenFunc func(t *tomb.Tomb, n int) error

// Pool runs a fixed number of generator workers concurrently, each pulling
// iteration indices off a shared channel. The engine itself is never
// touched concurrently: generators hand their finished work to a single
// consumer via whatever channel GenFunc closes over.
type Pool struct {
	n     int
	tasks chan int
}

// NewPool returns a pool sized to run size generator workers concurrently.
func NewPool(size int) *Pool {
	return &Pool{tasks: make(chan int, taskChanSize), n: size}
}

// Run feeds iterations 0..count-1 into the pool and blocks until every
// worker has drained the channel and exited, or the tomb is killed. A
// worker's error is recorded in t (read it with t.Wait); Run returns nil.
func (p *Pool) Run(t *tomb.Tomb, count int, log zerolog.Logger, work GenFunc) error {
	log.Info().Int("workers", p.n).Int("iterations", count).Msg("starting benchmark workers")

	go func() {
		for i := 0; i < count; i++ {
			select {
			case p.tasks <- i:
			case <-t.Dying():
				return
			}
		}
		close(p.tasks)
	}()

	// Wait on the workers only: Run may itself be one of t's goroutines, and
	// t.Wait would then never return.
	var wg sync.WaitGroup
	for i := 0; i < p.n; i++ {
		wg.Add(1)
		t.Go(func() error {
			defer wg.Done()
			return p.worker(t, log, work)
		})
	}
	wg.Wait()
	return nil
}

func (p *Pool) worker(t *tomb.Tomb, log zerolog.Logger, work GenFunc) error {
	for {
		select {
		case <-t.Dying():
			return nil
		case n, ok := <-p.tasks:
			if !ok {
				return nil
			}
			if err := work(t, n); err != nil {
				log.Error().Err(err).Int("iteration", n).Msg("worker exiting")
				return err
			}
		}
	}
}
