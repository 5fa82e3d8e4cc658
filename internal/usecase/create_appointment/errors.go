package create_appointment

import "errors"

var (
	ErrUnauthorized     = errors.New("create_appointment: caller is not authenticated")
	ErrForbidden        = errors.New("create_appointment: caller role may not book")
	ErrInvalidInput     = errors.New("create_appointment: invalid input")
	ErrServiceNotFound  = errors.New("create_appointment: service not found")
	ErrClientNotFound   = errors.New("create_appointment: client not found")
	ErrSlotNotAvailable = errors.New("create_appointment: slot not available")
	ErrInternal         = errors.New("create_appointment: internal error")
)
