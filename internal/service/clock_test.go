package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonotonicClock_StrictlyIncreasing(t *testing.T) {
	frozen := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := &monotonicClock{now: func() time.Time { return frozen }}

	first := c.Now()
	second := c.Now()
	third := c.Now()

	assert.Equal(t, frozen, first.Time)
	assert.Equal(t, time.Microsecond, second.Sub(first.Time))
	assert.True(t, third.After(second.Time))
}

func TestMonotonicClock_FollowsWallClock(t *testing.T) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := &monotonicClock{now: func() time.Time { return current }}

	c.Now()
	current = current.Add(time.Hour)

	assert.Equal(t, current, c.Now().Time)
}
