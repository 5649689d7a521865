package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/internal/metrics"
)

// ExpirationWorker periodically removes expired resources.
type ExpirationWorker struct {
	remover  ExpiredRemover
	interval time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex

	logger *logger.Logger
}

func NewExpirationWorker(remover ExpiredRemover, interval time.Duration, logger *logger.Logger) *ExpirationWorker {
	return &ExpirationWorker{
		remover:  remover,
		interval: interval,
		logger:   logger,
	}
}

// Run starts the ticker. A non-positive interval disables the worker.
func (w *ExpirationWorker) Run(ctx context.Context) {
	if w.interval <= 0 {
		w.logger.Info().Msg("expiration worker disabled")
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)

	go func() {
		defer w.wg.Done()

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				w.tick(runCtx)
			}
		}
	}()

	w.logger.Info().Dur("interval", w.interval).Msg("expiration worker started")
}

func (w *ExpirationWorker) tick(ctx context.Context) {
	removed, err := w.remover.RemoveExpired(ctx)
	metrics.RecordExpiredResources(removed)
	if err != nil {
		w.logger.Err(err).Str("func", "*ExpirationWorker.tick").Int("removed", removed).Msg("error removing expired resources")
		return
	}
	if removed > 0 {
		w.logger.Debug().Int("removed", removed).Msg("expired resources removed")
	}
}

func (w *ExpirationWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}
