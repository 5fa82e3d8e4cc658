package create_appointment

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/iglimehmetaj/service-platform2/internal/domain"
	catalogRepo "github.com/iglimehmetaj/service-platform2/internal/infra/storage/catalog"
	userRepo "github.com/iglimehmetaj/service-platform2/internal/infra/storage/user"
)

// memStore is an in-memory stand-in for the appointment, catalog and user repositories.
type memStore struct {
	mu           sync.Mutex
	services     map[uuid.UUID]*domain.Service
	users        map[uuid.UUID]*domain.User
	appointments map[uuid.UUID]*domain.Appointment
	createErr    error
}

func newMemStore() *memStore {
	return &memStore{
		services:     make(map[uuid.UUID]*domain.Service),
		users:        make(map[uuid.UUID]*domain.User),
		appointments: make(map[uuid.UUID]*domain.Appointment),
	}
}

func (s *memStore) GetServiceByID(_ context.Context, id uuid.UUID) (*domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, ok := s.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	cp := *svc
	return &cp, nil
}

func (s *memStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

func (s *memStore) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}
	if appt.ID == uuid.Nil {
		appt.ID = uuid.New()
	}
	cp := *appt
	s.appointments[appt.ID] = &cp
	return appt, nil
}

func (s *memStore) ListBookedSlots(_ context.Context, serviceID uuid.UUID, excludeID *uuid.UUID) ([]domain.BookedSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.BookedSlot
	for _, a := range s.appointments {
		if a.ServiceID != serviceID || !a.Status.BlocksSlot() {
			continue
		}
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		out = append(out, domain.BookedSlot{StartTime: a.StartTime, EndTime: a.EndTime})
	}
	return out, nil
}

func (s *memStore) setStatus(id uuid.UUID, status domain.AppointmentStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appointments[id].Status = status
}


// serialTx runs closures one at a time, like row locks on the service would.
type serialTx struct {
	mu sync.Mutex
}

func (t *serialTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Dispatch(ctx context.Context, event domain.AppointmentEvent) {
	m.Called(ctx, event)
}

type countingMetrics struct {
	mu        sync.Mutex
	created   int
	conflicts int
}

func (m *countingMetrics) IncAppointmentCreated() {
	m.mu.Lock()
	m.created++
	m.mu.Unlock()
}

func (m *countingMetrics) IncSlotConflict() {
	m.mu.Lock()
	m.conflicts++
	m.mu.Unlock()
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
