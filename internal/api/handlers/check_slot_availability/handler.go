package check_slot_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/iglimehmetaj/service-platform2/internal/api/handlers"
	getAvailableSlots "github.com/iglimehmetaj/service-platform2/internal/usecase/get_available_slots"
)

const msgServiceNotFound = "service not found"

// SlotAvailabilityResponse HTTP response model
type SlotAvailabilityResponse struct {
	Available bool   `json:"available"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type Handler struct {
	checker SlotChecker
	logger  Logger
}

func NewHandler(checker SlotChecker, logger Logger) *Handler {
	return &Handler{
		checker: checker,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/slot-availability?startTime=RFC3339
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]

	result, err := h.checker.CheckSlot(r.Context(), &getAvailableSlots.CheckRequest{
		ServiceID: serviceID,
		StartTime: r.URL.Query().Get("startTime"),
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)
		default:
			h.logger.Error("GET /services/{serviceId}/slot-availability - Failed to check slot: service_id=%s, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &SlotAvailabilityResponse{
		Available: result.Available,
		StartTime: result.StartTime.Format(time.RFC3339),
		EndTime:   result.EndTime.Format(time.RFC3339),
	})
}
