package update_appointment_status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iglimehmetaj/service-platform2/internal/domain"
	appointmentRepo "github.com/iglimehmetaj/service-platform2/internal/infra/storage/appointment"
	catalogRepo "github.com/iglimehmetaj/service-platform2/internal/infra/storage/catalog"
)

// UseCase transitions appointment status. Any status may follow any other.
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	dispatcher      EventDispatcher
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
	defaultBlock    time.Duration
}

func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
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
		dispatcher:      dispatcher,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
		defaultBlock:    time.Duration(defaultBlockMinutes) * time.Minute,
	}
}

// Execute checks that the caller owns the appointment (client) or operates its
// company, applies the new status and notifies the counter-party after commit.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Caller
	if err := validateCaller(req.Caller); err != nil {
		uc.logger.Warn("UpdateAppointmentStatus: rejected caller: %v", err)
		return nil, err
	}

	// 2. Input
	parsed, err := parseRequest(req)
	if err != nil {
		uc.logger.Warn("UpdateAppointmentStatus: validation failed: caller=%s, %v", req.Caller.UserID, err)
		return nil, err
	}

	uc.logger.Info("UpdateAppointmentStatus: caller=%s role=%s appointment=%s status=%s",
		req.Caller.UserID, req.Caller.Role, parsed.appointmentID, parsed.status)

	var (
		updated  *domain.Appointment
		previous domain.AppointmentStatus
	)

	// 3. Ownership, reactivation check and write
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.appointmentRepo.GetByID(txCtx, parsed.appointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("UpdateAppointmentStatus: appointment id=%s not found", parsed.appointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointmentStatus: failed to get appointment id=%s: %v", parsed.appointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		if !req.Caller.CanManage(current) {
			uc.logger.Warn("UpdateAppointmentStatus: caller=%s role=%s does not manage appointment id=%s",
				req.Caller.UserID, req.Caller.Role, current.ID)
			return ErrForbidden
		}

		previous = current.Status

		if !current.Status.BlocksSlot() && parsed.status.BlocksSlot() {
			if err := uc.ensureSlotStillFree(txCtx, current); err != nil {
				return err
			}
		}

		updated, err = uc.appointmentRepo.UpdateStatus(txCtx, current.ID, parsed.status)
		if err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
				return ErrAppointmentNotFound
			case errors.Is(err, appointmentRepo.ErrSlotConflict):
				uc.logger.Warn("UpdateAppointmentStatus: exclusion constraint rejected reactivation of id=%s", current.ID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("UpdateAppointmentStatus: failed to update appointment id=%s: %v", current.ID, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.metrics.IncSlotConflict()
		}
		if !isKnown(err) {
			uc.logger.Error("UpdateAppointmentStatus: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.metrics.IncStatusChange(string(updated.Status))
	uc.logger.Info("UpdateAppointmentStatus: appointment id=%s %s -> %s", updated.ID, previous, updated.Status)

	// 4. Counter-party notification, best effort
	uc.dispatcher.Dispatch(ctx, domain.AppointmentEvent{
		Type:        domain.EventAppointmentStatusChanged,
		Appointment: *updated,
		Actor:       *req.Caller,
	})

	return &Response{Appointment: *updated, PreviousStatus: previous}, nil
}

// ensureSlotStillFree guards moving a CANCELLED or NO_SHOW appointment back to a
// slot-holding status after someone else may have booked its interval.
func (uc *UseCase) ensureSlotStillFree(ctx context.Context, appt *domain.Appointment) error {
	if _, err := uc.serviceRepo.GetServiceByID(ctx, appt.ServiceID); err != nil && !errors.Is(err, catalogRepo.ErrServiceNotFound) {
		uc.logger.Error("UpdateAppointmentStatus: failed to lock service id=%s: %v", appt.ServiceID, err)
		return fmt.Errorf("%w: failed to lock service: %v", ErrInternal, err)
	}

	booked, err := uc.appointmentRepo.ListBookedSlots(ctx, appt.ServiceID, &appt.ID)
	if err != nil {
		uc.logger.Error("UpdateAppointmentStatus: failed to list booked slots for service id=%s: %v", appt.ServiceID, err)
		return fmt.Errorf("%w: failed to list booked slots: %v", ErrInternal, err)
	}

	if !domain.IsSlotAvailable(appt.Interval(uc.defaultBlock), booked, uc.defaultBlock) {
		uc.logger.Warn("UpdateAppointmentStatus: slot of appointment id=%s was rebooked", appt.ID)
		return ErrSlotNotAvailable
	}
	return nil
}

func isKnown(err error) bool {
	for _, known := range []error{ErrForbidden, ErrAppointmentNotFound, ErrSlotNotAvailable, ErrInternal} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
