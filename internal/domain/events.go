package domain

import "github.com/google/uuid"

type AppointmentEventType string

const (
	EventAppointmentCreated       AppointmentEventType = "AppointmentCreated"
	EventAppointmentStatusChanged AppointmentEventType = "AppointmentStatusChanged"
)

// AppointmentEvent is emitted by the lifecycle manager after a committed mutation.
// Actor is the caller who triggered it; the dispatcher derives recipients from it.
type AppointmentEvent struct {
	Type        AppointmentEventType
	Appointment Appointment
	Actor       Caller
}

// NotificationPush is handed to the real-time delivery component, one per recipient.
type NotificationPush struct {
	AppointmentID uuid.UUID
	Recipient     uuid.UUID
	Notification  Notification
}
