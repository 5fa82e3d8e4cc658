package update_appointment_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iglimehmetaj/service-platform2/internal/api/handlers"
	"github.com/iglimehmetaj/service-platform2/internal/api/middleware"
	updateStatus "github.com/iglimehmetaj/service-platform2/internal/usecase/update_appointment_status"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgUnauthorized        = "authentication required"
	msgForbidden           = "you may not change this appointment"
	msgAppointmentNotFound = "appointment not found"
	msgSlotNotAvailable    = "the appointment's time slot has been taken"
)

type Handler struct {
	useCase UpdateAppointmentStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAppointmentStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointmentId"]

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments/{appointmentId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &updateStatus.Request{
		Caller:        middleware.GetCaller(r.Context()),
		AppointmentID: appointmentID,
		Status:        req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, updateStatus.ErrUnauthorized):
			handlers.RespondUnauthorized(w, msgUnauthorized)

		case errors.Is(err, updateStatus.ErrForbidden):
			h.logger.Warn("PUT /appointments/{appointmentId} - Forbidden: appointment_id=%s", appointmentID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateStatus.ErrInvalidInput):
			h.logger.Warn("PUT /appointments/{appointmentId} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, updateStatus.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointments/{appointmentId} - Not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, updateStatus.ErrSlotNotAvailable):
			h.logger.Warn("PUT /appointments/{appointmentId} - Slot taken: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		default:
			h.logger.Error("PUT /appointments/{appointmentId} - Failed to update status: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments/{appointmentId} - Status updated: appointment_id=%s, %s -> %s",
		appointmentID, result.PreviousStatus, result.Appointment.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
