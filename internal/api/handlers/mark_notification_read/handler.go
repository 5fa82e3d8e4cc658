package mark_notification_read

import (
	"errors"
	"net/http"

	"github.com/iglimehmetaj/service-platform2/internal/api/handlers"
	"github.com/iglimehmetaj/service-platform2/internal/api/middleware"
	"github.com/iglimehmetaj/service-platform2/internal/service/notifications"
)

const (
	msgInvalidRequestBody   = "invalid request body"
	msgUnauthorized         = "authentication required"
	msgNotificationNotFound = "notification not found"
)

// MarkReadRequest HTTP request model
type MarkReadRequest struct {
	ID string `json:"id"`
}

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/notifications/read
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req MarkReadRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /notifications/read - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.MarkRead(r.Context(), middleware.GetCaller(r.Context()), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, notifications.ErrUnauthorized):
			handlers.RespondUnauthorized(w, msgUnauthorized)
		case errors.Is(err, notifications.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, notifications.ErrNotificationNotFound):
			handlers.RespondNotFound(w, msgNotificationNotFound)
		default:
			h.logger.Error("POST /notifications/read - Failed to mark notification: id=%s, error=%v", req.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
