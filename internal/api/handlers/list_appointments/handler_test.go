package list_appointments

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/iglimehmetaj/service-platform2/internal/api/middleware"
	"github.com/iglimehmetaj/service-platform2/internal/domain"
	"github.com/iglimehmetaj/service-platform2/internal/service/appointments"
	"github.com/iglimehmetaj/service-platform2/internal/service/appointments/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ListAppointments(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppointmentListResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	caller := &domain.Caller{UserID: uuid.New(), Role: domain.RoleClient}

	tests := []struct {
		name       string
		query      string
		err        error
		wantStatus int
		called     bool
	}{
		{name: "ok", query: "?status=PENDING&page=1&limit=10", wantStatus: http.StatusOK, called: true},
		{name: "bad limit", query: "?limit=ten", wantStatus: http.StatusBadRequest},
		{name: "unauthorized", err: appointments.ErrUnauthorized, wantStatus: http.StatusUnauthorized, called: true},
		{name: "forbidden", err: appointments.ErrForbidden, wantStatus: http.StatusForbidden, called: true},
		{name: "no company", err: appointments.ErrInvalidInput, wantStatus: http.StatusBadRequest, called: true},
		{name: "internal", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, called: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockService{}
			if tt.err != nil {
				svc.On("ListAppointments", mock.Anything, mock.Anything).Return(nil, tt.err)
			} else {
				svc.On("ListAppointments", mock.Anything, mock.MatchedBy(func(r *models.ListAppointmentsRequest) bool {
					return r.Caller == caller && r.Status != nil && *r.Status == "PENDING" && r.Page == 1 && r.Limit == 10
				})).Return(&models.AppointmentListResponse{Appointments: []models.AppointmentResponse{}}, nil)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments"+tt.query, nil)
			req = req.WithContext(middleware.WithCaller(req.Context(), caller))
			rec := httptest.NewRecorder()

			NewHandler(svc, nopLogger{}).Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.called {
				svc.AssertExpectations(t)
			} else {
				svc.AssertNotCalled(t, "ListAppointments", mock.Anything, mock.Anything)
			}
		})
	}
}
