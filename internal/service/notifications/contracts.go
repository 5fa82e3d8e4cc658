package notifications

import (
	"context"

	"github.com/google/uuid"

	"github.com/iglimehmetaj/service-platform2/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) (*domain.Notification, error)
}

type UserRepository interface {
	ListByCompanyAndRole(ctx context.Context, companyID uuid.UUID, role domain.Role) ([]*domain.User, error)
}

// Publisher pushes a persisted notification to the recipient's real-time channel.
type Publisher interface {
	Publish(ctx context.Context, push domain.NotificationPush) error
}

type Metrics interface {
	IncNotification(notificationType, result string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
