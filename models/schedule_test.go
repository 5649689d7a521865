package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScheduleWindow(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{name: "day window", in: "08:00-17:30", want: "08:00-17:30"},
		{name: "spans midnight", in: "22:00-07:00", want: "22:00-07:00"},
		{name: "spaces around", in: " 09:15 - 10:45 ", want: "09:15-10:45"},
		{name: "equal times", in: "08:00-08:00", wantErr: ErrEmptyScheduleWindow},
		{name: "no separator", in: "08:00", wantErr: ErrInvalidScheduleFormat},
		{name: "too many parts", in: "08:00-09:00-10:00", wantErr: ErrInvalidScheduleFormat},
		{name: "single digit hour", in: "8:00-09:00", wantErr: ErrInvalidScheduleTime},
		{name: "hour out of range", in: "24:00-09:00", wantErr: ErrInvalidScheduleTime},
		{name: "minute out of range", in: "08:60-09:00", wantErr: ErrInvalidScheduleTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ParseScheduleWindow(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, w.String())
		})
	}
}

func TestClockTime_Next(t *testing.T) {
	loc := time.UTC
	c := ClockTime{Hour: 8, Minute: 0}

	before := time.Date(2026, 3, 10, 7, 59, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 3, 10, 8, 0, 0, 0, loc), c.Next(before))

	exactly := time.Date(2026, 3, 10, 8, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 3, 11, 8, 0, 0, 0, loc), c.Next(exactly))

	endOfMonth := time.Date(2026, 3, 31, 23, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 4, 1, 8, 0, 0, 0, loc), c.Next(endOfMonth))
}
