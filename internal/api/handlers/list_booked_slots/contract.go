package list_booked_slots

import (
	"context"

	"github.com/iglimehmetaj/service-platform2/internal/service/appointments/models"
)

type AppointmentService interface {
	ListBookedSlots(ctx context.Context, serviceID string) ([]models.BookedSlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
