package check_slot_availability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/iglimehmetaj/service-platform2/internal/usecase/get_available_slots"
)

type MockChecker struct {
	mock.Mock
}

func (m *MockChecker) CheckSlot(ctx context.Context, req *getAvailableSlots.CheckRequest) (*getAvailableSlots.CheckResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getAvailableSlots.CheckResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(checker *MockChecker, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/services/{serviceId}/slot-availability", NewHandler(checker, nopLogger{}).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	serviceID := uuid.New()
	start := time.Date(2024, 1, 10, 10, 15, 0, 0, time.UTC)

	checker := &MockChecker{}
	checker.On("CheckSlot", mock.Anything, &getAvailableSlots.CheckRequest{
		ServiceID: serviceID.String(),
		StartTime: "2024-01-10T10:15:00Z",
	}).Return(&getAvailableSlots.CheckResponse{
		ServiceID: serviceID,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Available: false,
	}, nil)

	rec := serve(checker, "/api/v1/services/"+serviceID.String()+"/slot-availability?startTime=2024-01-10T10:15:00Z")

	require.Equal(t, http.StatusOK, rec.Code)
	var body SlotAvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Available)
	assert.Equal(t, "2024-01-10T10:45:00Z", body.EndTime)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{err: getAvailableSlots.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{err: getAvailableSlots.ErrServiceNotFound, wantStatus: http.StatusNotFound},
		{err: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			checker := &MockChecker{}
			checker.On("CheckSlot", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(checker, "/api/v1/services/"+uuid.NewString()+"/slot-availability?startTime=x")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
