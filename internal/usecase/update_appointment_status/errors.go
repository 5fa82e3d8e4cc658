package update_appointment_status

import "errors"

var (
	ErrUnauthorized        = errors.New("update_appointment_status: caller is not authenticated")
	ErrForbidden           = errors.New("update_appointment_status: caller may not manage this appointment")
	ErrInvalidInput        = errors.New("update_appointment_status: invalid input")
	ErrAppointmentNotFound = errors.New("update_appointment_status: appointment not found")
	ErrSlotNotAvailable    = errors.New("update_appointment_status: slot was taken meanwhile")
	ErrInternal            = errors.New("update_appointment_status: internal error")
)
