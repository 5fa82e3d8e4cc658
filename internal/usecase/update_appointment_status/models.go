package update_appointment_status

import (
	"github.com/google/uuid"

	"github.com/iglimehmetaj/service-platform2/internal/domain"
)

type Request struct {
	Caller        *domain.Caller
	AppointmentID string
	Status        string
}

type Response struct {
	Appointment    domain.Appointment
	PreviousStatus domain.AppointmentStatus
}

type parsedRequest struct {
	appointmentID uuid.UUID
	status        domain.AppointmentStatus
}
