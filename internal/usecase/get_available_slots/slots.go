package get_available_slots

import (
	"time"

	"github.com/iglimehmetaj/service-platform2/internal/domain"
)

// dayGrid lays out step-aligned starts over the UTC day and marks each one
// against the booked intervals. Starts before now are left out, so a past
// day yields no slots at all.
func dayGrid(day time.Time, step, duration time.Duration, now time.Time, booked []domain.BookedSlot, defaultBlock time.Duration) []Slot {
	dayEnd := day.Add(24 * time.Hour)
	if !dayEnd.After(now) {
		return []Slot{}
	}

	slots := make([]Slot, 0, int(24*time.Hour/step))
	for start := day; start.Before(dayEnd); start = start.Add(step) {
		if start.Before(now) {
			continue
		}
		candidate := domain.Interval{Start: start, End: start.Add(duration)}
		slots = append(slots, Slot{
			StartTime: candidate.Start,
			EndTime:   candidate.End,
			Available: domain.IsSlotAvailable(candidate, booked, defaultBlock),
		})
	}
	return slots
}
