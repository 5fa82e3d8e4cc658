package domain

import (
	"errors"
	"time"
)

var ErrInvalidDuration = errors.New("domain: service duration must be positive")

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewSlot returns the interval a booking of durationMinutes starting at start would occupy.
func NewSlot(start time.Time, durationMinutes int) (Interval, error) {
	if durationMinutes <= 0 {
		return Interval{}, ErrInvalidDuration
	}
	start = start.UTC()
	return Interval{Start: start, End: start.Add(time.Duration(durationMinutes) * time.Minute)}, nil
}

// Overlaps uses half-open semantics, so adjacent intervals do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.End.After(other.Start) && i.Start.Before(other.End)
}

// BookedSlot is an occupied range as read from storage; EndTime may be missing.
type BookedSlot struct {
	StartTime time.Time
	EndTime   *time.Time
}

func (b BookedSlot) Interval(defaultBlock time.Duration) Interval {
	start := b.StartTime.UTC()
	if b.EndTime == nil {
		return Interval{Start: start, End: start.Add(defaultBlock)}
	}
	return Interval{Start: start, End: b.EndTime.UTC()}
}

// IsSlotAvailable reports whether candidate is free of every booked range.
// Both the availability endpoints and appointment creation go through this check.
func IsSlotAvailable(candidate Interval, booked []BookedSlot, defaultBlock time.Duration) bool {
	for _, b := range booked {
		if candidate.Overlaps(b.Interval(defaultBlock)) {
			return false
		}
	}
	return true
}
