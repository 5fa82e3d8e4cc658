package list_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/iglimehmetaj/service-platform2/internal/api/handlers"
	"github.com/iglimehmetaj/service-platform2/internal/api/middleware"
	"github.com/iglimehmetaj/service-platform2/internal/service/appointments"
	"github.com/iglimehmetaj/service-platform2/internal/service/appointments/models"
)

const (
	msgUnauthorized  = "authentication required"
	msgForbidden     = "your role may not list appointments"
	msgInvalidPaging = "page and limit must be positive integers"
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

// Handle GET /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := optionalInt(query.Get("page"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPaging)
		return
	}
	limit, err := optionalInt(query.Get("limit"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPaging)
		return
	}

	req := &models.ListAppointmentsRequest{
		Caller: middleware.GetCaller(r.Context()),
		Page:   page,
		Limit:  limit,
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.ListAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrUnauthorized):
			handlers.RespondUnauthorized(w, msgUnauthorized)
		case errors.Is(err, appointments.ErrForbidden):
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("GET /appointments - Failed to list appointments: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments - Appointments retrieved: count=%d, total=%d", len(result.Appointments), result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func optionalInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, errors.New("not a non-negative integer")
	}
	return v, nil
}
