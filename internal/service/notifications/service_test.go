package notifications

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iglimehmetaj/service-platform2/internal/domain"
	notificationRepo "github.com/iglimehmetaj/service-platform2/internal/infra/storage/notification"
)

type memNotifications struct {
	mu      sync.Mutex
	items   []*domain.Notification
	failFor map[uuid.UUID]bool
	listErr error
}

func (m *memNotifications) Create(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[n.UserID] {
		return nil, errors.New("insert failed")
	}
	stored := *n
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now().UTC()
	m.items = append(m.items, &stored)
	return &stored, nil
}

func (m *memNotifications) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]*domain.Notification, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*domain.Notification
	for i := len(m.items) - 1; i >= 0 && len(out) < limit; i-- {
		if m.items[i].UserID == userID {
			out = append(out, m.items[i])
		}
	}
	return out, nil
}

func (m *memNotifications) CountUnread(_ context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, n := range m.items {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (m *memNotifications) MarkRead(_ context.Context, id, userID uuid.UUID) (*domain.Notification, error) {
	for _, n := range m.items {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return n, nil
		}
	}
	return nil, notificationRepo.ErrNotificationNotFound
}

func (m *memNotifications) recipients() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(m.items))
	for _, n := range m.items {
		ids = append(ids, n.UserID)
	}
	return ids
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) ListByCompanyAndRole(ctx context.Context, companyID uuid.UUID, role domain.Role) ([]*domain.User, error) {
	args := m.Called(ctx, companyID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, push domain.NotificationPush) error {
	return m.Called(ctx, push).Error(0)
}

type countingMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *countingMetrics) IncNotification(notificationType, result string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = map[string]int{}
	}
	c.counts[notificationType+"/"+result]++
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	svc       *Service
	store     *memNotifications
	users     *MockUserRepository
	publisher *MockPublisher
	metrics   *countingMetrics
	companyID uuid.UUID
	operators []*domain.User
	appt      domain.Appointment
}

func newFixture(operatorCount int) *fixture {
	companyID := uuid.New()
	operators := make([]*domain.User, 0, operatorCount)
	for i := 0; i < operatorCount; i++ {
		operators = append(operators, &domain.User{ID: uuid.New(), Role: domain.RoleCompany, CompanyID: &companyID})
	}

	f := &fixture{
		store:     &memNotifications{failFor: map[uuid.UUID]bool{}},
		users:     &MockUserRepository{},
		publisher: &MockPublisher{},
		metrics:   &countingMetrics{},
		companyID: companyID,
		operators: operators,
		appt: domain.Appointment{
			ID:        uuid.New(),
			ServiceID: uuid.New(),
			ClientID:  uuid.New(),
			CompanyID: companyID,
			StartTime: time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC),
			Status:    domain.StatusPending,
		},
	}
	f.users.On("ListByCompanyAndRole", mock.Anything, companyID, domain.RoleCompany).Return(operators, nil)
	f.svc = NewService(f.store, f.users, f.publisher, f.metrics, nopLogger{}, 20)
	return f
}

func (f *fixture) operatorIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(f.operators))
	for _, u := range f.operators {
		ids = append(ids, u.ID)
	}
	return ids
}

func TestDispatch_CreatedNotifiesEveryOperator(t *testing.T) {
	f := newFixture(3)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	f.svc.Dispatch(context.Background(), domain.AppointmentEvent{
		Type:        domain.EventAppointmentCreated,
		Appointment: f.appt,
		Actor:       domain.Caller{UserID: f.appt.ClientID, Role: domain.RoleClient},
	})

	assert.ElementsMatch(t, f.operatorIDs(), f.store.recipients())
	for _, n := range f.store.items {
		assert.Equal(t, domain.NotificationNewAppointment, n.Type)
		assert.Equal(t, "A new appointment has been created by client.", n.Message)
		require.NotNil(t, n.RelatedID)
		assert.Equal(t, f.appt.ID, *n.RelatedID)
		assert.False(t, n.Read)
	}
	f.publisher.AssertNumberOfCalls(t, "Publish", 3)
	assert.Equal(t, 3, f.metrics.counts["NEW_APPOINTMENT/delivered"])
}

func TestDispatch_CompanySideStatusChangeNotifiesClient(t *testing.T) {
	f := newFixture(2)
	f.appt.Status = domain.StatusConfirmed
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(p domain.NotificationPush) bool {
		return p.Recipient == f.appt.ClientID && p.Notification.Type == domain.NotificationStatusChange
	})).Return(nil)

	f.svc.Dispatch(context.Background(), domain.AppointmentEvent{
		Type:        domain.EventAppointmentStatusChanged,
		Appointment: f.appt,
		Actor:       domain.Caller{UserID: f.operators[0].ID, Role: domain.RoleCompany, CompanyID: &f.companyID},
	})

	assert.Equal(t, []uuid.UUID{f.appt.ClientID}, f.store.recipients())
	assert.Contains(t, f.store.items[0].Message, "CONFIRMED")
	f.publisher.AssertExpectations(t)
	f.users.AssertNotCalled(t, "ListByCompanyAndRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatch_SuperAdminCountsAsCompanySide(t *testing.T) {
	f := newFixture(2)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	f.svc.Dispatch(context.Background(), domain.AppointmentEvent{
		Type:        domain.EventAppointmentStatusChanged,
		Appointment: f.appt,
		Actor:       domain.Caller{UserID: uuid.New(), Role: domain.RoleSuperAdmin},
	})

	assert.Equal(t, []uuid.UUID{f.appt.ClientID}, f.store.recipients())
}

func TestDispatch_ClientSideStatusChangeSkipsActor(t *testing.T) {
	f := newFixture(3)
	f.appt.Status = domain.StatusCancelled
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	// actor shares an id with one of the operators
	actor := domain.Caller{UserID: f.operators[1].ID, Role: domain.RoleClient}

	f.svc.Dispatch(context.Background(), domain.AppointmentEvent{
		Type:        domain.EventAppointmentStatusChanged,
		Appointment: f.appt,
		Actor:       actor,
	})

	assert.ElementsMatch(t, []uuid.UUID{f.operators[0].ID, f.operators[2].ID}, f.store.recipients())
	assert.NotContains(t, f.store.recipients(), actor.UserID)
}

func TestDispatch_FailuresAreBestEffort(t *testing.T) {
	f := newFixture(3)
	f.store.failFor[f.operators[0].ID] = true
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(p domain.NotificationPush) bool {
		return p.Recipient == f.operators[1].ID
	})).Return(errors.New("redis down"))
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	assert.NotPanics(t, func() {
		f.svc.Dispatch(context.Background(), domain.AppointmentEvent{
			Type:        domain.EventAppointmentCreated,
			Appointment: f.appt,
			Actor:       domain.Caller{UserID: f.appt.ClientID, Role: domain.RoleClient},
		})
	})

	assert.ElementsMatch(t, []uuid.UUID{f.operators[1].ID, f.operators[2].ID}, f.store.recipients())
	f.publisher.AssertNumberOfCalls(t, "Publish", 2)
	assert.Equal(t, 1, f.metrics.counts["NEW_APPOINTMENT/persist_failed"])
	assert.Equal(t, 1, f.metrics.counts["NEW_APPOINTMENT/publish_failed"])
	assert.Equal(t, 1, f.metrics.counts["NEW_APPOINTMENT/delivered"])
}

func TestDispatch_RecipientLookupFailure(t *testing.T) {
	f := newFixture(0)
	users := &MockUserRepository{}
	users.On("ListByCompanyAndRole", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
	f.svc = NewService(f.store, users, f.publisher, f.metrics, nopLogger{}, 20)

	f.svc.Dispatch(context.Background(), domain.AppointmentEvent{
		Type:        domain.EventAppointmentCreated,
		Appointment: f.appt,
	})

	assert.Empty(t, f.store.recipients())
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestDispatch_SurvivesCancelledRequestContext(t *testing.T) {
	f := newFixture(1)
	f.publisher.On("Publish", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil }), mock.Anything).Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f.svc.Dispatch(ctx, domain.AppointmentEvent{
		Type:        domain.EventAppointmentCreated,
		Appointment: f.appt,
	})

	f.publisher.AssertNumberOfCalls(t, "Publish", 1)
}

func TestListNotificationsAndMarkRead(t *testing.T) {
	f := newFixture(1)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	operator := &domain.Caller{UserID: f.operators[0].ID, Role: domain.RoleCompany, CompanyID: &f.companyID}

	for i := 0; i < 25; i++ {
		f.svc.Dispatch(context.Background(), domain.AppointmentEvent{Type: domain.EventAppointmentCreated, Appointment: f.appt})
	}

	list, err := f.svc.ListNotifications(context.Background(), operator)
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 20)
	assert.Equal(t, 25, list.UnreadCount)

	first := list.Notifications[0]
	read, err := f.svc.MarkRead(context.Background(), operator, first.ID.String())
	require.NoError(t, err)
	assert.True(t, read.Read)

	list, err = f.svc.ListNotifications(context.Background(), operator)
	require.NoError(t, err)
	assert.Equal(t, 24, list.UnreadCount)
}

func TestMarkRead_Errors(t *testing.T) {
	f := newFixture(1)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	f.svc.Dispatch(context.Background(), domain.AppointmentEvent{Type: domain.EventAppointmentCreated, Appointment: f.appt})
	owned := f.store.items[0].ID

	stranger := &domain.Caller{UserID: uuid.New(), Role: domain.RoleClient}

	tests := []struct {
		name    string
		caller  *domain.Caller
		id      string
		wantErr error
	}{
		{name: "no session", caller: nil, id: owned.String(), wantErr: ErrUnauthorized},
		{name: "missing id", caller: stranger, id: "", wantErr: ErrInvalidInput},
		{name: "malformed id", caller: stranger, id: "7", wantErr: ErrInvalidInput},
		{name: "someone else's notification", caller: stranger, id: owned.String(), wantErr: ErrNotificationNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.MarkRead(context.Background(), tt.caller, tt.id)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.False(t, f.store.items[0].Read)
}

func TestListNotifications_Errors(t *testing.T) {
	f := newFixture(0)

	_, err := f.svc.ListNotifications(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnauthorized)

	f.store.listErr = errors.New("boom")
	_, err = f.svc.ListNotifications(context.Background(), &domain.Caller{UserID: uuid.New(), Role: domain.RoleClient})
	assert.ErrorIs(t, err, ErrInternal)
}
