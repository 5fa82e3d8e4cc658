package get_available_slots

import (
	"context"
	"encoding/json"
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

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getAvailableSlots.Response), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc *MockUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/services/{serviceId}/available-slots", NewHandler(uc, nopLogger{}).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	serviceID := uuid.New()
	start := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	uc := &MockUseCase{}
	uc.On("Execute", mock.Anything, &getAvailableSlots.Request{
		ServiceID:   serviceID.String(),
		Date:        "2024-01-10",
		StepMinutes: 15,
	}).Return(&getAvailableSlots.Response{
		ServiceID:       serviceID,
		Date:            "2024-01-10",
		DurationMinutes: 30,
		StepMinutes:     15,
		Slots: []getAvailableSlots.Slot{
			{StartTime: start, EndTime: start.Add(30 * time.Minute), Available: true},
			{StartTime: start.Add(15 * time.Minute), EndTime: start.Add(45 * time.Minute), Available: false},
		},
	}, nil)

	rec := serve(uc, "/api/v1/services/"+serviceID.String()+"/available-slots?date=2024-01-10&step=15")

	require.Equal(t, http.StatusOK, rec.Code)
	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Slots, 2)
	assert.Equal(t, "2024-01-10T09:00:00Z", body.Slots[0].StartTime)
	assert.True(t, body.Slots[0].Available)
	assert.False(t, body.Slots[1].Available)
}

func TestHandle_Errors(t *testing.T) {
	uc := &MockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *getAvailableSlots.Request) bool { return r.Date == "bad" })).
		Return(nil, getAvailableSlots.ErrInvalidInput)
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, getAvailableSlots.ErrServiceNotFound)

	id := uuid.NewString()
	assert.Equal(t, http.StatusBadRequest, serve(uc, "/api/v1/services/"+id+"/available-slots?date=2024-01-10&step=x").Code)
	assert.Equal(t, http.StatusBadRequest, serve(uc, "/api/v1/services/"+id+"/available-slots?date=bad").Code)
	assert.Equal(t, http.StatusNotFound, serve(uc, "/api/v1/services/"+id+"/available-slots?date=2024-01-10").Code)
}
