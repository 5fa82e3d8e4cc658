package appointments

import "errors"

var (
	// ErrUnauthorized is returned when there is no authenticated caller.
	ErrUnauthorized = errors.New("appointments: unauthorized")

	// ErrForbidden is returned for roles without a listing scope.
	ErrForbidden = errors.New("appointments: forbidden")

	// ErrInvalidInput covers missing ids, unknown status filters and
	// company-scoped callers without a company.
	ErrInvalidInput = errors.New("appointments: invalid input")

	ErrInternal = errors.New("appointments: internal error")
)
