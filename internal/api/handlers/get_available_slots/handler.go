package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/iglimehmetaj/service-platform2/internal/api/handlers"
	getAvailableSlots "github.com/iglimehmetaj/service-platform2/internal/usecase/get_available_slots"
)

const (
	msgInvalidStep     = "step must be an integer number of minutes"
	msgServiceNotFound = "service not found"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/available-slots?date=YYYY-MM-DD[&step=30]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]
	query := r.URL.Query()

	step := 0
	if raw := query.Get("step"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidStep)
			return
		}
		step = v
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		ServiceID:   serviceID,
		Date:        query.Get("date"),
		StepMinutes: step,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /services/{serviceId}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)
		default:
			h.logger.Error("GET /services/{serviceId}/available-slots - Failed to get slots: service_id=%s, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/{serviceId}/available-slots - Slots retrieved: service_id=%s, date=%s, count=%d",
		serviceID, result.Date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
