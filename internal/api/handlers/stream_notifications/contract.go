package stream_notifications

import (
	"context"

	"github.com/google/uuid"

	"github.com/iglimehmetaj/service-platform2/internal/infra/realtime"
)

type Subscriber interface {
	Subscribe(ctx context.Context, userID uuid.UUID) (<-chan realtime.Message, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
