package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-acme-cse/internal/adapter"
	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/models"
)

// scheduleService owns the daily start and stop jobs of the noise
// cancellation system. Only one window is active at a time.
type scheduleService struct {
	cse       adapter.CSEAdapter
	states    ExecutionStateService
	container string
	loc       *time.Location

	newJob func(at models.ClockTime, action func(ctx context.Context)) *dailyJob

	mu     sync.Mutex
	window *models.ScheduleWindow
	jobs   []*dailyJob

	logger *logger.Logger
}

// NewScheduleService returns a [ScheduleService] that toggles states on the
// schedule read from container. Times are interpreted in loc.
func NewScheduleService(cse adapter.CSEAdapter, states ExecutionStateService, container string, loc *time.Location, logger *logger.Logger) ScheduleService {
	s := &scheduleService{
		cse:       cse,
		states:    states,
		container: container,
		loc:       loc,
		logger:    logger,
	}
	s.newJob = func(at models.ClockTime, action func(ctx context.Context)) *dailyJob {
		return newDailyJob(at, s.loc, action)
	}
	return s
}

func (s *scheduleService) HandleNotification(ctx context.Context, n models.Notification) error {
	log := logger.FromContext(ctx)

	switch {
	case n.IsVerification():
		log.Info().Str("sur", n.SubscriptionReference).Msg("subscription verification received")
		return nil
	case n.IsDeletion():
		log.Warn().Str("sur", n.SubscriptionReference).Msg("schedule subscription was deleted")
		return nil
	}

	w, err := windowFromNotification(n)
	if err != nil {
		return err
	}

	return s.Apply(ctx, w)
}

// Apply clears the running jobs and registers a start and a stop job for w.
// Jobs outlive the request that applied them.
func (s *scheduleService) Apply(ctx context.Context, w models.ScheduleWindow) error {
	if w.Start == w.Stop {
		return fmt.Errorf("%w: %w", ErrInvalidNotification, models.ErrEmptyScheduleWindow)
	}

	jobCtx := context.WithoutCancel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopJobs()

	start := s.newJob(w.Start, func(ctx context.Context) { s.toggle(ctx, models.ExecutionStateOn) })
	stop := s.newJob(w.Stop, func(ctx context.Context) { s.toggle(ctx, models.ExecutionStateOff) })
	start.Start(jobCtx)
	stop.Start(jobCtx)

	s.jobs = []*dailyJob{start, stop}
	s.window = &w

	now := time.Now()
	s.logger.Info().
		Str("window", w.String()).
		Str("timezone", s.loc.String()).
		Time("next_start", start.Next(now)).
		Time("next_stop", stop.Next(now)).
		Msg("schedule applied")
	return nil
}

func (s *scheduleService) Current(now time.Time) (models.ScheduleStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.window == nil {
		return models.ScheduleStatus{}, ErrNoActiveSchedule
	}

	now = now.In(s.loc)
	return models.ScheduleStatus{
		Window:    s.window.String(),
		NextStart: s.window.Start.Next(now),
		NextStop:  s.window.Stop.Next(now),
	}, nil
}

// Restore applies the newest content instance of the schedule container. An
// empty or missing container leaves the scheduler idle.
func (s *scheduleService) Restore(ctx context.Context) error {
	cin, err := s.cse.RetrieveLatest(ctx, s.container)
	if errors.Is(err, adapter.ErrNotFound) {
		s.logger.Info().Str("container", s.container).Msg("no stored schedule to restore")
		return nil
	}
	if err != nil {
		return fmt.Errorf("error retrieving stored schedule: %w", err)
	}

	w, err := windowFromContent(cin)
	if err != nil {
		return err
	}

	return s.Apply(ctx, w)
}

func (s *scheduleService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopJobs()
	s.window = nil
}

func (s *scheduleService) stopJobs() {
	for _, j := range s.jobs {
		j.Stop()
	}
	s.jobs = nil
}

func (s *scheduleService) toggle(ctx context.Context, state models.ExecutionState) {
	if err := s.states.SetState(ctx, state); err != nil {
		s.logger.Err(err).Str("state", string(state)).Msg("scheduled toggle failed")
	}
}

func windowFromNotification(n models.Notification) (models.ScheduleWindow, error) {
	cin, err := n.RepresentedResource(models.TypeContentInst)
	if err != nil {
		return models.ScheduleWindow{}, fmt.Errorf("%w: %w", ErrInvalidNotification, err)
	}
	return windowFromContent(cin)
}

func windowFromContent(cin models.Resource) (models.ScheduleWindow, error) {
	if cin.Content == nil {
		return models.ScheduleWindow{}, fmt.Errorf("%w: content instance has no con", ErrInvalidNotification)
	}

	w, err := models.ParseScheduleWindow(*cin.Content)
	if err != nil {
		return models.ScheduleWindow{}, fmt.Errorf("%w: %w", ErrInvalidNotification, err)
	}
	return w, nil
}
