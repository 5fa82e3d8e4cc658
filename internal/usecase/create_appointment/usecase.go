package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iglimehmetaj/service-platform2/internal/domain"
	appointmentRepo "github.com/iglimehmetaj/service-platform2/internal/infra/storage/appointment"
	catalogRepo "github.com/iglimehmetaj/service-platform2/internal/infra/storage/catalog"
	userRepo "github.com/iglimehmetaj/service-platform2/internal/infra/storage/user"
)

// UseCase creates appointments.
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	userRepo        UserRepository
	dispatcher      EventDispatcher
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
	defaultBlock    time.Duration
}

func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	userRepo UserRepository,
	dispatcher EventDispatcher,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
	defaultBlockMinutes int,
) *UseCase {
	if defaultBlockMinutes <= 0 {
		defaultBlockMinutes = domain.DefaultBookedBlockMinutes
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		userRepo:        userRepo,
		dispatcher:      dispatcher,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
		defaultBlock:    time.Duration(defaultBlockMinutes) * time.Minute,
	}
}

// Execute validates the request, re-checks slot availability inside a serializable
// transaction that locks the service row, persists a PENDING appointment and, after
// commit, notifies the company operators.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Caller and role
	if err := validateCaller(req.Caller); err != nil {
		uc.logger.Warn("CreateAppointment: rejected caller: %v", err)
		return nil, err
	}

	// 2. Input
	parsed, err := parseRequest(req)
	if err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: caller=%s, %v", req.Caller.UserID, err)
		return nil, err
	}

	uc.logger.Info("CreateAppointment: caller=%s role=%s service=%s start=%s",
		req.Caller.UserID, req.Caller.Role, parsed.serviceID, parsed.startTime.Format(time.RFC3339))

	// 3. Whose appointment this is
	clientID, err := uc.resolveClient(ctx, req.Caller, parsed.clientID)
	if err != nil {
		return nil, err
	}

	var created *domain.Appointment

	// 4. Availability check and insert under the service lock
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		service, err := uc.serviceRepo.GetServiceByID(txCtx, parsed.serviceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				uc.logger.Warn("CreateAppointment: service id=%s not found", parsed.serviceID)
				return ErrServiceNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get service id=%s: %v", parsed.serviceID, err)
			return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		slot, err := domain.NewSlot(parsed.startTime, service.DurationMinutes)
		if err != nil {
			uc.logger.Warn("CreateAppointment: service id=%s has duration=%d", service.ID, service.DurationMinutes)
			return fmt.Errorf("%w: service has no positive duration", ErrInvalidInput)
		}

		booked, err := uc.appointmentRepo.ListBookedSlots(txCtx, service.ID, nil)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to list booked slots for service id=%s: %v", service.ID, err)
			return fmt.Errorf("%w: failed to list booked slots: %v", ErrInternal, err)
		}

		if !domain.IsSlotAvailable(slot, booked, uc.defaultBlock) {
			uc.logger.Warn("CreateAppointment: slot %s-%s of service id=%s is taken",
				slot.Start.Format(time.RFC3339), slot.End.Format(time.RFC3339), service.ID)
			return ErrSlotNotAvailable
		}

		end := slot.End
		appt := &domain.Appointment{
			ServiceID: service.ID,
			ClientID:  clientID,
			CompanyID: service.CompanyID,
			StartTime: slot.Start,
			EndTime:   &end,
			Status:    domain.StatusPending,
			Price:     service.Price,
			Notes:     parsed.notes,
		}

		created, err = uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotConflict) {
				uc.logger.Warn("CreateAppointment: exclusion constraint rejected slot of service id=%s", service.ID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.metrics.IncSlotConflict()
		}
		if !isKnown(err) {
			uc.logger.Error("CreateAppointment: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.metrics.IncAppointmentCreated()
	uc.logger.Info("CreateAppointment: created appointment id=%s for client=%s", created.ID, created.ClientID)

	// 5. Notifications never undo the booking
	uc.dispatcher.Dispatch(ctx, domain.AppointmentEvent{
		Type:        domain.EventAppointmentCreated,
		Appointment: *created,
		Actor:       *req.Caller,
	})

	return toResponse(created), nil
}

func (uc *UseCase) resolveClient(ctx context.Context, caller *domain.Caller, requested *uuid.UUID) (uuid.UUID, error) {
	if requested == nil || *requested == caller.UserID {
		return caller.UserID, nil
	}

	if !caller.Role.Permissions().CanBookOnBehalf {
		uc.logger.Warn("CreateAppointment: caller=%s tried to book for client=%s", caller.UserID, *requested)
		return uuid.Nil, fmt.Errorf("%w: cannot book on behalf of another user", ErrForbidden)
	}

	client, err := uc.userRepo.GetByID(ctx, *requested)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateAppointment: client id=%s not found", *requested)
			return uuid.Nil, ErrClientNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get client id=%s: %v", *requested, err)
		return uuid.Nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	if client.Role != domain.RoleClient {
		uc.logger.Warn("CreateAppointment: user id=%s has role %s, not CLIENT", client.ID, client.Role)
		return uuid.Nil, ErrClientNotFound
	}

	return client.ID, nil
}

func isKnown(err error) bool {
	for _, known := range []error{ErrInvalidInput, ErrServiceNotFound, ErrSlotNotAvailable, ErrInternal} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}

func toResponse(a *domain.Appointment) *Response {
	resp := &Response{
		ID:        a.ID,
		ServiceID: a.ServiceID,
		ClientID:  a.ClientID,
		CompanyID: a.CompanyID,
		StartTime: a.StartTime,
		Status:    a.Status,
		Price:     a.Price,
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.EndTime != nil {
		resp.EndTime = *a.EndTime
	}
	return resp
}
