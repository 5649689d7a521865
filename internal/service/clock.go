package service

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-acme-cse/models"
)

// Clock hands out resource timestamps.
type Clock interface {
	Now() models.Timestamp
}

// monotonicClock never returns the same timestamp twice. Children are ordered
// by creation time, so two resources created within one microsecond still get
// distinct, increasing values.
type monotonicClock struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

// NewMonotonicClock returns a [Clock] backed by the wall clock.
func NewMonotonicClock() Clock {
	return &monotonicClock{now: time.Now}
}

func (c *monotonicClock) Now() models.Timestamp {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts := models.NewTimestamp(c.now())
	if !ts.After(c.last) {
		ts = models.NewTimestamp(c.last.Add(time.Microsecond))
	}
	c.last = ts.Time
	return ts
}
