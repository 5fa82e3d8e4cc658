package update_appointment_status

import (
	"context"

	"github.com/google/uuid"

	"github.com/iglimehmetaj/service-platform2/internal/domain"
)

type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) (*domain.Appointment, error)
	ListBookedSlots(ctx context.Context, serviceID uuid.UUID, excludeID *uuid.UUID) ([]domain.BookedSlot, error)
}

type ServiceRepository interface {
	GetServiceByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
}

type EventDispatcher interface {
	Dispatch(ctx context.Context, event domain.AppointmentEvent)
}

type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type Metrics interface {
	IncStatusChange(status string)
	IncSlotConflict()
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
