package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iglimehmetaj/service-platform2/internal/domain"
	notificationRepo "github.com/iglimehmetaj/service-platform2/internal/infra/storage/notification"
	"github.com/iglimehmetaj/service-platform2/internal/service/notifications/models"
)

const (
	resultDelivered     = "delivered"
	resultPersistFailed = "persist_failed"
	resultPublishFailed = "publish_failed"

	dispatchTimeout = 10 * time.Second
)

// Service fans appointment events out to their counter-parties and serves
// the recipient side of notifications.
type Service struct {
	notificationRepo NotificationRepository
	userRepo         UserRepository
	publisher        Publisher
	metrics          Metrics
	logger           Logger
	pageSize         int
}

func NewService(
	notificationRepo NotificationRepository,
	userRepo UserRepository,
	publisher Publisher,
	metrics Metrics,
	logger Logger,
	pageSize int,
) *Service {
	if pageSize <= 0 {
		pageSize = domain.DefaultNotificationsPageSize
	}
	return &Service{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		publisher:        publisher,
		metrics:          metrics,
		logger:           logger,
		pageSize:         pageSize,
	}
}

// Dispatch persists one notification per recipient and then pushes it.
// Failures are logged and counted; the appointment mutation that produced the
// event has already been committed and is never affected.
func (s *Service) Dispatch(ctx context.Context, event domain.AppointmentEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), dispatchTimeout)
	defer cancel()

	appt := event.Appointment

	notificationType, message, recipients, err := s.plan(ctx, event)
	if err != nil {
		s.logger.Error("Dispatch: failed to resolve recipients for appointment id=%s event=%s: %v", appt.ID, event.Type, err)
		s.metrics.IncNotification(string(notificationType), resultPersistFailed)
		return
	}
	if len(recipients) == 0 {
		s.logger.Warn("Dispatch: no recipients for appointment id=%s event=%s", appt.ID, event.Type)
		return
	}

	var wg sync.WaitGroup
	for _, recipient := range recipients {
		wg.Add(1)
		go func(recipient uuid.UUID) {
			defer wg.Done()
			s.deliver(ctx, appt.ID, recipient, notificationType, message)
		}(recipient)
	}
	wg.Wait()

	s.logger.Info("Dispatch: appointment id=%s event=%s - %d recipients", appt.ID, event.Type, len(recipients))
}

// plan decides type, message and recipients of an event.
func (s *Service) plan(ctx context.Context, event domain.AppointmentEvent) (domain.NotificationType, string, []uuid.UUID, error) {
	appt := event.Appointment

	switch event.Type {
	case domain.EventAppointmentCreated:
		operators, err := s.operators(ctx, appt.CompanyID, uuid.Nil)
		return domain.NotificationNewAppointment, domain.NewAppointmentMessage(), operators, err

	case domain.EventAppointmentStatusChanged:
		side := event.Actor.Role.Permissions().Side
		message := domain.StatusChangeMessage(appt.Status, side)
		switch side {
		case domain.SideCompany:
			return domain.NotificationStatusChange, message, []uuid.UUID{appt.ClientID}, nil
		case domain.SideClient:
			operators, err := s.operators(ctx, appt.CompanyID, event.Actor.UserID)
			return domain.NotificationStatusChange, message, operators, err
		}
		return domain.NotificationStatusChange, message, nil, nil
	}

	return "", "", nil, fmt.Errorf("unknown event type %q", event.Type)
}

func (s *Service) operators(ctx context.Context, companyID, exclude uuid.UUID) ([]uuid.UUID, error) {
	users, err := s.userRepo.ListByCompanyAndRole(ctx, companyID, domain.RoleCompany)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		if u.ID == exclude {
			continue
		}
		ids = append(ids, u.ID)
	}
	return ids, nil
}

func (s *Service) deliver(ctx context.Context, appointmentID, recipient uuid.UUID, notificationType domain.NotificationType, message string) {
	relatedID := appointmentID
	created, err := s.notificationRepo.Create(ctx, &domain.Notification{
		UserID:    recipient,
		Type:      notificationType,
		Message:   message,
		RelatedID: &relatedID,
	})
	if err != nil {
		s.logger.Error("Dispatch: failed to persist notification for user=%s appointment id=%s: %v", recipient, appointmentID, err)
		s.metrics.IncNotification(string(notificationType), resultPersistFailed)
		return
	}

	err = s.publisher.Publish(ctx, domain.NotificationPush{
		AppointmentID: appointmentID,
		Recipient:     recipient,
		Notification:  *created,
	})
	if err != nil {
		s.logger.Warn("Dispatch: failed to push notification id=%s to user=%s: %v", created.ID, recipient, err)
		s.metrics.IncNotification(string(notificationType), resultPublishFailed)
		return
	}

	s.metrics.IncNotification(string(notificationType), resultDelivered)
}

// ListNotifications returns the newest page of the caller's notifications and
// the caller's total unread count.
func (s *Service) ListNotifications(ctx context.Context, caller *domain.Caller) (*models.NotificationListResponse, error) {
	if caller == nil || caller.UserID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	s.logger.Info("ListNotifications: user=%s", caller.UserID)

	list, err := s.notificationRepo.ListByUser(ctx, caller.UserID, s.pageSize)
	if err != nil {
		s.logger.Error("ListNotifications: repository error for user=%s: %v", caller.UserID, err)
		return nil, fmt.Errorf("%w: ListNotifications - repository error: %v", ErrInternal, err)
	}

	unread, err := s.notificationRepo.CountUnread(ctx, caller.UserID)
	if err != nil {
		s.logger.Error("ListNotifications: count unread failed for user=%s: %v", caller.UserID, err)
		return nil, fmt.Errorf("%w: ListNotifications - count unread: %v", ErrInternal, err)
	}

	return models.FromDomainNotifications(list, unread), nil
}

// MarkRead flags one of the caller's own notifications as read.
func (s *Service) MarkRead(ctx context.Context, caller *domain.Caller, rawID string) (*models.NotificationResponse, error) {
	if caller == nil || caller.UserID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	rawID = strings.TrimSpace(rawID)
	if rawID == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("%w: id is not a valid id", ErrInvalidInput)
	}

	n, err := s.notificationRepo.MarkRead(ctx, id, caller.UserID)
	if err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			s.logger.Warn("MarkRead: notification id=%s not found for user=%s", id, caller.UserID)
			return nil, ErrNotificationNotFound
		}
		s.logger.Error("MarkRead: repository error for notification id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: MarkRead - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkRead: notification id=%s read by user=%s", id, caller.UserID)
	resp := models.FromDomainNotification(n)
	return &resp, nil
}
