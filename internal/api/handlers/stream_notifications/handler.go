package stream_notifications

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iglimehmetaj/service-platform2/internal/api/handlers"
	"github.com/iglimehmetaj/service-platform2/internal/api/middleware"
	"github.com/iglimehmetaj/service-platform2/internal/infra/realtime"
)

const (
	msgUnauthorized = "authentication required"

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

type Handler struct {
	subscriber Subscriber
	upgrader   websocket.Upgrader
	logger     Logger
}

// NewHandler accepts any origin when allowedOrigins is empty.
func NewHandler(subscriber Subscriber, allowedOrigins []string, logger Logger) *Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}

	return &Handler{
		subscriber: subscriber,
		logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowed) == 0 {
					return true
				}
				_, ok := allowed[r.Header.Get("Origin")]
				return ok
			},
		},
	}
}

// Handle GET /api/v1/notifications/stream
//
// Pushes {"event":"new-notification","notification":{...}} frames for the
// authenticated user until either side closes the connection.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetCaller(r.Context())
	if caller == nil {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	messages, err := h.subscriber.Subscribe(ctx, caller.UserID)
	if err != nil {
		h.logger.Error("GET /notifications/stream - Failed to subscribe: user_id=%s, error=%v", caller.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("GET /notifications/stream - Upgrade failed: user_id=%s, error=%v", caller.UserID, err)
		return
	}
	defer conn.Close()

	h.logger.Info("GET /notifications/stream - Connected: user_id=%s", caller.UserID)

	go h.readLoop(conn, cancel)
	h.writeLoop(ctx, conn, messages)

	h.logger.Info("GET /notifications/stream - Disconnected: user_id=%s", caller.UserID)
}

// readLoop drains client frames so pongs and close frames are processed.
func (h *Handler) readLoop(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("GET /notifications/stream - Read error: %v", err)
			}
			return
		}
	}
}

func (h *Handler) writeLoop(ctx context.Context, conn *websocket.Conn, messages <-chan realtime.Message) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case msg, ok := <-messages:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Warn("GET /notifications/stream - Write failed: notification_id=%s, error=%v", msg.Notification.ID, err)
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
