package appointment

import "errors"

var (
	// ErrAppointmentNotFound is returned when no appointment has the requested id.
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotConflict is returned when the exclusion constraint rejects an overlapping interval.
	ErrSlotConflict = errors.New("appointment.repository: slot conflict")

	ErrBuildQuery = errors.New("appointment.repository: failed to build query")
	ErrExecQuery  = errors.New("appointment.repository: failed to execute query")
	ErrScanRow    = errors.New("appointment.repository: failed to scan row")
)
