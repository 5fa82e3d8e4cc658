package list_notifications

import (
	"context"

	"github.com/iglimehmetaj/service-platform2/internal/domain"
	"github.com/iglimehmetaj/service-platform2/internal/service/notifications/models"
)

type NotificationService interface {
	ListNotifications(ctx context.Context, caller *domain.Caller) (*models.NotificationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
