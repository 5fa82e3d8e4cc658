package appointments

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/iglimehmetaj/service-platform2/internal/domain"
	"github.com/iglimehmetaj/service-platform2/internal/service/appointments/models"
)

// Service is the read side of the booking core.
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// ListAppointments returns appointments visible to the caller, ordered by start time.
// Clients see their own; company operators and super admins see their company's.
func (s *Service) ListAppointments(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	caller := req.Caller
	if caller == nil || caller.UserID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	s.logger.Info("ListAppointments: user=%s role=%s status=%v page=%d limit=%d",
		caller.UserID, caller.Role, req.Status, req.Page, req.Limit)

	filter, err := s.scopeFilter(caller)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		status, err := domain.ParseStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListAppointments: invalid status=%s for user=%s", *req.Status, caller.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	if req.Limit < 0 || req.Limit > models.MaxPageSize || req.Page < 0 {
		return nil, fmt.Errorf("%w: page and limit must be within 1..%d", ErrInvalidInput, models.MaxPageSize)
	}
	page := req.Page
	if req.Limit > 0 {
		if page == 0 {
			page = 1
		}
		filter.Limit = req.Limit
		filter.Offset = (page - 1) * req.Limit
	}

	list, err := s.appointmentRepo.ListDetails(ctx, filter)
	if err != nil {
		s.logger.Error("ListAppointments: repository error for user=%s: %v", caller.UserID, err)
		return nil, fmt.Errorf("%w: ListAppointments - repository error: %v", ErrInternal, err)
	}

	total := len(list)
	if req.Limit > 0 {
		total, err = s.appointmentRepo.Count(ctx, filter)
		if err != nil {
			s.logger.Error("ListAppointments: count error for user=%s: %v", caller.UserID, err)
			return nil, fmt.Errorf("%w: ListAppointments - count error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("ListAppointments: fetched %d of %d appointments for user=%s", len(list), total, caller.UserID)

	resp := &models.AppointmentListResponse{
		Appointments: models.FromDomainAppointmentList(list),
		Total:        total,
	}
	if req.Limit > 0 {
		resp.Page = page
		resp.Limit = req.Limit
	}
	return resp, nil
}

func (s *Service) scopeFilter(caller *domain.Caller) (domain.AppointmentFilter, error) {
	switch caller.Role.Permissions().ListScope {
	case domain.ScopeOwn:
		clientID := caller.UserID
		return domain.AppointmentFilter{ClientID: &clientID}, nil
	case domain.ScopeCompany:
		if caller.CompanyID == nil {
			s.logger.Warn("ListAppointments: user=%s role=%s has no company", caller.UserID, caller.Role)
			return domain.AppointmentFilter{}, fmt.Errorf("%w: caller has no associated company", ErrInvalidInput)
		}
		companyID := *caller.CompanyID
		return domain.AppointmentFilter{CompanyID: &companyID}, nil
	default:
		s.logger.Warn("ListAppointments: role=%s of user=%s cannot list appointments", caller.Role, caller.UserID)
		return domain.AppointmentFilter{}, ErrForbidden
	}
}

// ListBookedSlots returns the slot-blocking intervals of a service. An unknown
// service simply has none.
func (s *Service) ListBookedSlots(ctx context.Context, rawServiceID string) ([]models.BookedSlotResponse, error) {
	rawServiceID = strings.TrimSpace(rawServiceID)
	if rawServiceID == "" {
		return nil, fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}
	serviceID, err := uuid.Parse(rawServiceID)
	if err != nil {
		return nil, fmt.Errorf("%w: serviceId is not a valid id", ErrInvalidInput)
	}

	slots, err := s.appointmentRepo.ListBookedSlots(ctx, serviceID, nil)
	if err != nil {
		s.logger.Error("ListBookedSlots: repository error for service=%s: %v", serviceID, err)
		return nil, fmt.Errorf("%w: ListBookedSlots - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBookedSlots: service=%s - %d booked intervals", serviceID, len(slots))
	return models.FromDomainBookedSlots(slots), nil
}
