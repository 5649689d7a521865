// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// running multiple workers in a unified way.
package workers

import (
	"context"

	"github.com/MKhiriev/go-acme-cse/models"
)

// Worker is the interface that must be implemented by any background worker.
//
// Run starts the worker and returns immediately; the work happens on
// goroutines owned by the worker and lasts until ctx is cancelled or Stop is
// called. Stop blocks until those goroutines have exited.
//
// Example implementation:
//
//	type MyWorker struct{ wg sync.WaitGroup }
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    w.wg.Add(1)
//	    go func() { defer w.wg.Done(); <-ctx.Done() }()
//	}
type Worker interface {
	Run(ctx context.Context)
	Stop()
}

// ExpiredRemover deletes resources whose expiration time has passed.
type ExpiredRemover interface {
	RemoveExpired(ctx context.Context) (int, error)
}

// NotificationSender delivers a single notification.
type NotificationSender interface {
	Notify(ctx context.Context, target string, n models.Notification) error
}
