package get_available_slots

import (
	"time"

	"github.com/google/uuid"
)

// Request asks for the availability grid of one UTC day.
type Request struct {
	ServiceID   string
	Date        string // YYYY-MM-DD
	StepMinutes int    // zero selects the configured step
}

type Response struct {
	ServiceID       uuid.UUID
	Date            string
	DurationMinutes int
	StepMinutes     int
	Slots           []Slot
}

type Slot struct {
	StartTime time.Time
	EndTime   time.Time
	Available bool
}

// CheckRequest asks whether a single candidate start is bookable.
type CheckRequest struct {
	ServiceID string
	StartTime string // RFC 3339
}

type CheckResponse struct {
	ServiceID uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Available bool
}

type parsedGridRequest struct {
	serviceID uuid.UUID
	day       time.Time
	step      time.Duration
}
