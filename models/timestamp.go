package models

import (
	"strconv"
	"time"
)

// TimestampLayout is the oneM2M basic time format, e.g. 20260101T120000,000000.
const TimestampLayout = "20060102T150405,000000"

// Timestamp is a UTC point in time serialised in oneM2M basic format.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to microseconds, the precision of the wire format.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Microsecond)}
}

// Now returns the current time as a Timestamp.
func Now() Timestamp {
	return NewTimestamp(time.Now())
}

// ParseTimestamp accepts the basic format with or without fractional seconds.
func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range []string{TimestampLayout, "20060102T150405"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return NewTimestamp(t), nil
		}
	}
	_, err := time.Parse(TimestampLayout, s)
	return Timestamp{}, err
}

func (t Timestamp) String() string {
	return t.UTC().Format(TimestampLayout)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return err
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
