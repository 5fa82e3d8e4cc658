package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iglimehmetaj/service-platform2/internal/domain"
	catalogRepo "github.com/iglimehmetaj/service-platform2/internal/infra/storage/catalog"
)

// UseCase resolves slot availability for a service, either for one candidate
// start or for a whole UTC day. Both paths and appointment creation share
// domain.IsSlotAvailable, so the answers agree.
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	timeProvider    TimeProvider
	logger          Logger
	stepMinutes     int
	defaultBlock    time.Duration
}

func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	logger Logger,
	stepMinutes int,
	defaultBlockMinutes int,
) *UseCase {
	if stepMinutes <= 0 {
		stepMinutes = domain.DefaultSlotStepMinutes
	}
	if defaultBlockMinutes <= 0 {
		defaultBlockMinutes = domain.DefaultBookedBlockMinutes
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		stepMinutes:     stepMinutes,
		defaultBlock:    time.Duration(defaultBlockMinutes) * time.Minute,
	}
}

// WithTimeProvider replaces the clock.
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute builds the availability grid for one UTC day.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%s, date=%s, step=%d", req.ServiceID, req.Date, req.StepMinutes)

	// 1. Input
	parsed, err := parseGridRequest(req, uc.stepMinutes)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Service duration
	service, err := uc.loadService(ctx, parsed.serviceID)
	if err != nil {
		return nil, err
	}

	// 3. Booked intervals
	booked, err := uc.bookedSlots(ctx, parsed.serviceID)
	if err != nil {
		return nil, err
	}

	// 4. Grid
	slots := dayGrid(parsed.day, parsed.step, service.Duration(), uc.timeProvider.Now().UTC(), booked, uc.defaultBlock)

	uc.logger.Info("GetAvailableSlots: service=%s date=%s - %d slots, %d booked intervals",
		parsed.serviceID, parsed.day.Format(domain.DateFormat), len(slots), len(booked))

	return &Response{
		ServiceID:       parsed.serviceID,
		Date:            parsed.day.Format(domain.DateFormat),
		DurationMinutes: service.DurationMinutes,
		StepMinutes:     int(parsed.step / time.Minute),
		Slots:           slots,
	}, nil
}

// CheckSlot answers whether a booking starting at req.StartTime would collide.
func (uc *UseCase) CheckSlot(ctx context.Context, req *CheckRequest) (*CheckResponse, error) {
	serviceID, start, err := parseCheckRequest(req)
	if err != nil {
		uc.logger.Warn("CheckSlot: validation failed: %v", err)
		return nil, err
	}

	service, err := uc.loadService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	booked, err := uc.bookedSlots(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	candidate := domain.Interval{Start: start, End: start.Add(service.Duration())}
	available := domain.IsSlotAvailable(candidate, booked, uc.defaultBlock)

	uc.logger.Info("CheckSlot: service=%s start=%s available=%t", serviceID, start.Format(time.RFC3339), available)

	return &CheckResponse{
		ServiceID: serviceID,
		StartTime: candidate.Start,
		EndTime:   candidate.End,
		Available: available,
	}, nil
}

func (uc *UseCase) loadService(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	service, err := uc.serviceRepo.GetServiceByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", id)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.DurationMinutes <= 0 {
		uc.logger.Warn("GetAvailableSlots: service id=%s has non-positive duration %d", id, service.DurationMinutes)
		return nil, fmt.Errorf("%w: service duration must be positive", ErrInvalidInput)
	}
	return service, nil
}

func (uc *UseCase) bookedSlots(ctx context.Context, serviceID uuid.UUID) ([]domain.BookedSlot, error) {
	booked, err := uc.appointmentRepo.ListBookedSlots(ctx, serviceID, nil)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list booked slots for service id=%s: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to list booked slots: %v", ErrInternal, err)
	}
	return booked, nil
}
