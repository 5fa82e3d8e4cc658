package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrUnknownStatus = errors.New("domain: unknown appointment status")

// AppointmentStatus is one of the five recognized appointment states.
// Values are case-sensitive.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusNoShow    AppointmentStatus = "NO_SHOW"
)

// BlockingStatuses hold their slot; CANCELLED and NO_SHOW free it.
var BlockingStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

var AllStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// ParseStatus validates s against the recognized status set.
func ParseStatus(s string) (AppointmentStatus, error) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", ErrUnknownStatus
}

// BlocksSlot reports whether an appointment in this status occupies its interval.
func (s AppointmentStatus) BlocksSlot() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCompleted
}

// Appointment is a booking of a service by a client.
// Price is a snapshot of the service price at creation and never changes afterwards.
type Appointment struct {
	ID        uuid.UUID
	ServiceID uuid.UUID
	ClientID  uuid.UUID
	CompanyID uuid.UUID
	StartTime time.Time
	EndTime   *time.Time
	Status    AppointmentStatus
	Price     decimal.Decimal
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the occupied [start, end) range; a missing end falls back to defaultBlock.
func (a *Appointment) Interval(defaultBlock time.Duration) Interval {
	return BookedSlot{StartTime: a.StartTime, EndTime: a.EndTime}.Interval(defaultBlock)
}

// AppointmentDetails is the read-side projection with joined service, client and company data.
type AppointmentDetails struct {
	Appointment

	ServiceName     string
	ServicePrice    decimal.Decimal
	ClientName      string
	ClientEmail     string
	CompanyName     string
	CompanyLocation *string
}

// AppointmentFilter narrows role-scoped listings. Exactly one of ClientID and CompanyID is set.
type AppointmentFilter struct {
	ClientID  *uuid.UUID
	CompanyID *uuid.UUID
	Status    *AppointmentStatus
	Limit     int
	Offset    int
}
