package appointments

import (
	"context"

	"github.com/google/uuid"

	"github.com/iglimehmetaj/service-platform2/internal/domain"
)

type AppointmentRepository interface {
	ListDetails(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.AppointmentDetails, error)
	Count(ctx context.Context, filter domain.AppointmentFilter) (int, error)
	ListBookedSlots(ctx context.Context, serviceID uuid.UUID, excludeID *uuid.UUID) ([]domain.BookedSlot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
