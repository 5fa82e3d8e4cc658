package list_notifications

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iglimehmetaj/service-platform2/internal/api/middleware"
	"github.com/iglimehmetaj/service-platform2/internal/domain"
	"github.com/iglimehmetaj/service-platform2/internal/service/notifications"
	"github.com/iglimehmetaj/service-platform2/internal/service/notifications/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ListNotifications(ctx context.Context, caller *domain.Caller) (*models.NotificationListResponse, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NotificationListResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle_ReturnsPageAndUnreadCount(t *testing.T) {
	caller := &domain.Caller{UserID: uuid.New(), Role: domain.RoleClient}
	svc := &MockService{}
	svc.On("ListNotifications", mock.Anything, caller).Return(&models.NotificationListResponse{
		Notifications: []models.NotificationResponse{{ID: uuid.New()}, {ID: uuid.New(), Read: true}},
		UnreadCount:   7,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	req = req.WithContext(middleware.WithCaller(req.Context(), caller))
	rec := httptest.NewRecorder()

	NewHandler(svc, nopLogger{}).Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.NotificationListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Notifications, 2)
	assert.Equal(t, 7, body.UnreadCount)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "no session", err: notifications.ErrUnauthorized, wantStatus: http.StatusUnauthorized},
		{name: "store failure", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockService{}
			svc.On("ListNotifications", mock.Anything, mock.Anything).Return(nil, tt.err)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
			rec := httptest.NewRecorder()

			NewHandler(svc, nopLogger{}).Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
