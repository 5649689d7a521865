package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidScheduleFormat = errors.New("invalid schedule format, expected HH:MM-HH:MM")
	ErrInvalidScheduleTime   = errors.New("invalid schedule time")
	ErrEmptyScheduleWindow   = errors.New("schedule start and stop times are equal")
)

// ExecutionState is the content written to the execution state container.
type ExecutionState string

const (
	ExecutionStateOn  ExecutionState = "On"
	ExecutionStateOff ExecutionState = "Off"
)

// ClockTime is a time of day with minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses a strict 24h "HH:MM" value.
func ParseClockTime(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	if len(s) != 5 || s[2] != ':' {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrInvalidScheduleTime, s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("%w: %q", ErrInvalidScheduleTime, s)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Next returns the first occurrence of c strictly after now in now's location.
func (c ClockTime) Next(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), c.Hour, c.Minute, 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(now.Year(), now.Month(), now.Day()+1, c.Hour, c.Minute, 0, 0, now.Location())
	}
	return next
}

// ScheduleWindow is the daily noise cancellation window. Start may be later
// than Stop, in which case the window spans midnight.
type ScheduleWindow struct {
	Start ClockTime `json:"-"`
	Stop  ClockTime `json:"-"`
}

// ParseScheduleWindow parses "HH:MM-HH:MM".
func ParseScheduleWindow(s string) (ScheduleWindow, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return ScheduleWindow{}, fmt.Errorf("%w: %q", ErrInvalidScheduleFormat, s)
	}

	start, err := ParseClockTime(parts[0])
	if err != nil {
		return ScheduleWindow{}, err
	}
	stop, err := ParseClockTime(parts[1])
	if err != nil {
		return ScheduleWindow{}, err
	}
	if start == stop {
		return ScheduleWindow{}, fmt.Errorf("%w: %s", ErrEmptyScheduleWindow, start)
	}

	return ScheduleWindow{Start: start, Stop: stop}, nil
}

func (w ScheduleWindow) String() string {
	return w.Start.String() + "-" + w.Stop.String()
}

// ScheduleStatus is returned by the scheduler GET /schedule endpoint.
type ScheduleStatus struct {
	Window    string    `json:"window"`
	NextStart time.Time `json:"next_start"`
	NextStop  time.Time `json:"next_stop"`
}

// CallbackResponse is the body returned to the CSE by the scheduler callback.
type CallbackResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
