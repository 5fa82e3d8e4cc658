package list_notifications

import (
	"errors"
	"net/http"

	"github.com/iglimehmetaj/service-platform2/internal/api/handlers"
	"github.com/iglimehmetaj/service-platform2/internal/api/middleware"
	"github.com/iglimehmetaj/service-platform2/internal/service/notifications"
)

const msgUnauthorized = "authentication required"

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

// Handle GET /api/v1/notifications
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListNotifications(r.Context(), middleware.GetCaller(r.Context()))
	if err != nil {
		if errors.Is(err, notifications.ErrUnauthorized) {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}
		h.logger.Error("GET /notifications - Failed to list notifications: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
