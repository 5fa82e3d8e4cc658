package create_appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/iglimehmetaj/service-platform2/internal/domain"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	ListBookedSlots(ctx context.Context, serviceID uuid.UUID, excludeID *uuid.UUID) ([]domain.BookedSlot, error)
}

type ServiceRepository interface {
	GetServiceByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// EventDispatcher fans appointment events out to notifications. It never fails the caller.
type EventDispatcher interface {
	Dispatch(ctx context.Context, event domain.AppointmentEvent)
}

type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type Metrics interface {
	IncAppointmentCreated()
	IncSlotConflict()
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
