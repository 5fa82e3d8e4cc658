package mark_notification_read

import (
	"context"

	"github.com/iglimehmetaj/service-platform2/internal/domain"
	"github.com/iglimehmetaj/service-platform2/internal/service/notifications/models"
)

type NotificationService interface {
	MarkRead(ctx context.Context, caller *domain.Caller, id string) (*models.NotificationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
