package list_booked_slots

import (
	"errors"
	"net/http"

	"github.com/iglimehmetaj/service-platform2/internal/api/handlers"
	"github.com/iglimehmetaj/service-platform2/internal/service/appointments"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/booked?serviceId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := r.URL.Query().Get("serviceId")

	slots, err := h.service.ListBookedSlots(r.Context(), serviceID)
	if err != nil {
		if errors.Is(err, appointments.ErrInvalidInput) {
			h.logger.Warn("GET /appointments/booked - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("GET /appointments/booked - Failed to list booked slots: service_id=%s, error=%v", serviceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointments/booked - Booked slots retrieved: service_id=%s, count=%d", serviceID, len(slots))
	handlers.RespondJSON(w, http.StatusOK, slots)
}
