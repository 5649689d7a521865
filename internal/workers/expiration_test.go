package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-acme-cse/internal/logger"
)

type countingRemover struct {
	calls atomic.Int32
	err   error
}

func (r *countingRemover) RemoveExpired(context.Context) (int, error) {
	r.calls.Add(1)
	return 1, r.err
}

func TestExpirationWorker_RemovesPeriodically(t *testing.T) {
	remover := &countingRemover{}
	w := NewExpirationWorker(remover, 5*time.Millisecond, logger.Nop())

	w.Run(context.Background())
	assert.Eventually(t, func() bool { return remover.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	w.Stop()

	calls := remover.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, calls, remover.calls.Load(), "no ticks after Stop")
}

func TestExpirationWorker_KeepsRunningOnError(t *testing.T) {
	remover := &countingRemover{err: errors.New("db locked")}
	w := NewExpirationWorker(remover, 5*time.Millisecond, logger.Nop())

	w.Run(context.Background())
	defer w.Stop()

	assert.Eventually(t, func() bool { return remover.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestExpirationWorker_ContextCancel(t *testing.T) {
	remover := &countingRemover{}
	w := NewExpirationWorker(remover, time.Hour, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	w.Run(ctx)
	w.Run(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after context cancellation")
	}
	assert.Zero(t, remover.calls.Load())
}

func TestExpirationWorker_Disabled(t *testing.T) {
	remover := &countingRemover{}
	w := NewExpirationWorker(remover, 0, logger.Nop())

	w.Run(context.Background())
	w.Stop()

	assert.Zero(t, remover.calls.Load())
}
