package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-acme-cse/models"
)

// dailyJob runs action once a day at a fixed wall-clock time. The job is idle
// until Start is called.
type dailyJob struct {
	at     models.ClockTime
	loc    *time.Location
	action func(ctx context.Context)

	now   func() time.Time
	after func(d time.Duration) <-chan time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newDailyJob(at models.ClockTime, loc *time.Location, action func(ctx context.Context)) *dailyJob {
	if loc == nil {
		loc = time.Local
	}
	return &dailyJob{
		at:     at,
		loc:    loc,
		action: action,
		now:    time.Now,
		after:  time.After,
	}
}

// Next returns the next fire time after now.
func (j *dailyJob) Next(now time.Time) time.Time {
	return j.at.Next(now.In(j.loc))
}

// Start stops any previous run, then arms the timer for the next occurrence
// of the configured time. After every run the job re-arms for the next day.
// The goroutine exits when ctx is cancelled or Stop is called.
func (j *dailyJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()

		for {
			now := j.now()
			wait := j.Next(now).Sub(now)

			select {
			case <-jobCtx.Done():
				return
			case <-j.after(wait):
				j.action(jobCtx)
			}
		}
	}()
}

// Stop cancels the job and blocks until its goroutine has exited. Safe to
// call when the job is not running.
func (j *dailyJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
