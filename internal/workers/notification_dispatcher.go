// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/internal/metrics"
	"github.com/MKhiriev/go-acme-cse/models"
)

const (
	defaultDispatcherWorkers = 4
	queueSizePerWorker       = 64
)

type notificationJob struct {
	target       string
	notification models.Notification
}

// NotificationDispatcher delivers notifications from a bounded queue on a
// fixed number of goroutines. Submit never blocks: when the queue is full the
// notification is dropped.
type NotificationDispatcher struct {
	sender  NotificationSender
	workers int
	timeout time.Duration

	queue chan notificationJob

	mu      sync.RWMutex
	running bool
	closed  bool
	wg      sync.WaitGroup

	logger *logger.Logger
}

func NewNotificationDispatcher(sender NotificationSender, workers int, timeout time.Duration, logger *logger.Logger) *NotificationDispatcher {
	if workers <= 0 {
		workers = defaultDispatcherWorkers
	}
	return &NotificationDispatcher{
		sender:  sender,
		workers: workers,
		timeout: timeout,
		queue:   make(chan notificationJob, workers*queueSizePerWorker),
		logger:  logger,
	}
}

// Submit queues n for target. It reports false when the dispatcher is stopped
// or its queue is full.
func (d *NotificationDispatcher) Submit(target string, n models.Notification) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		metrics.RecordNotification(metrics.NotificationDropped)
		return false
	}

	select {
	case d.queue <- notificationJob{target: target, notification: n}:
		metrics.SetNotificationQueueLength(len(d.queue))
		return true
	default:
		metrics.RecordNotification(metrics.NotificationDropped)
		return false
	}
}

// Run starts the delivery goroutines. Queued notifications are delivered with
// ctx as parent context; they keep draining after ctx is cancelled until Stop
// closes the queue.
func (d *NotificationDispatcher) Run(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running || d.closed {
		return
	}
	d.running = true

	sendCtx := context.WithoutCancel(ctx)
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.loop(sendCtx)
	}

	d.logger.Info().Int("workers", d.workers).Int("queue", cap(d.queue)).Msg("notification dispatcher started")
}

func (d *NotificationDispatcher) loop(ctx context.Context) {
	defer d.wg.Done()

	for job := range d.queue {
		metrics.SetNotificationQueueLength(len(d.queue))
		d.deliver(ctx, job)
	}
}

func (d *NotificationDispatcher) deliver(ctx context.Context, job notificationJob) {
	sendCtx, cancel := ctx, context.CancelFunc(func() {})
	if d.timeout > 0 {
		sendCtx, cancel = context.WithTimeout(ctx, d.timeout)
	}
	defer cancel()

	if err := d.sender.Notify(sendCtx, job.target, job.notification); err != nil {
		metrics.RecordNotification(metrics.NotificationFailed)
		d.logger.Warn().Err(err).
			Str("nu", job.target).
			Str("sur", job.notification.SubscriptionReference).
			Msg("error sending notification")
		return
	}
	metrics.RecordNotification(metrics.NotificationSent)
}

// Stop closes the queue and waits until every queued notification has been
// handled. Subsequent Submit calls are rejected.
func (d *NotificationDispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	running := d.running
	d.mu.Unlock()

	if running {
		d.wg.Wait()
	}
}
