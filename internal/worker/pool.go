// Package worker persists recorded exchanges in the background so recording
// does not add store latency to every Web API call.
package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/ewilliams-labs/spotifywebapi/internal/core/ports"
)

// Pool is a write-behind ports.ExchangeStore. Saves are queued to worker
// goroutines; lookups go straight to the underlying store.
type Pool struct {
	store  ports.ExchangeStore
	jobs   chan ports.Exchange
	logger *zap.Logger

	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewPool creates a worker pool with the given worker count and queue size
// and starts its workers.
func NewPool(store ports.ExchangeStore, workers int, queueSize int, logger *zap.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Pool{store: store, jobs: make(chan ports.Exchange, queueSize), logger: logger}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for ex := range p.jobs {
				p.save(ex)
			}
		}()
	}
	return p
}

// Stop waits for queued saves to finish after closing the queue. It is safe
// to call more than once.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.jobs)
		p.wg.Wait()
	})
}

// SaveExchange queues ex without blocking. A full queue drops the exchange
// with a warning.
func (p *Pool) SaveExchange(_ context.Context, ex ports.Exchange) error {
	select {
	case p.jobs <- ex:
	default:
		p.logger.Warn("dropping recorded exchange, queue full", zap.String("key", ex.Key))
	}
	return nil
}

// FindExchange reads from the underlying store. Saves still queued are not
// visible yet.
func (p *Pool) FindExchange(ctx context.Context, key string) (ports.Exchange, error) {
	return p.store.FindExchange(ctx, key)
}

func (p *Pool) save(ex ports.Exchange) {
	if err := p.store.SaveExchange(context.Background(), ex); err != nil {
		p.logger.Warn("failed to save recorded exchange", zap.String("key", ex.Key), zap.Error(err))
		return
	}
	p.logger.Debug("saved recorded exchange", zap.String("key", ex.Key))
}
