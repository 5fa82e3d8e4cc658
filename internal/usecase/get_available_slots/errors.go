package get_available_slots

import "errors"

var (
	// ErrInvalidInput is returned for malformed ids, dates, instants or grid steps.
	ErrInvalidInput = errors.New("get_available_slots: invalid input")

	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrInternal wraps storage failures.
	ErrInternal = errors.New("get_available_slots: internal error")
)
