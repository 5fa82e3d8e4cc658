package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iglimehmetaj/service-platform2/internal/domain"
)

type AppointmentRepository interface {
	// ListBookedSlots returns intervals held by slot-blocking appointments of the service.
	ListBookedSlots(ctx context.Context, serviceID uuid.UUID, excludeID *uuid.UUID) ([]domain.BookedSlot, error)
}

type ServiceRepository interface {
	GetServiceByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
}

// TimeProvider returns the current instant. Tests substitute a fixed clock.
type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
