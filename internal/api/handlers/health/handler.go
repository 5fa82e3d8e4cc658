package health

import (
	"context"
	"net/http"
	"time"

	"github.com/iglimehmetaj/service-platform2/internal/api/handlers"
)

const checkTimeout = 2 * time.Second

// Pinger is a dependency that must answer for the service to be ready.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingerFunc adapts a plain function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

type Logger interface {
	Warn(format string, v ...interface{})
}

type Handler struct {
	deps   map[string]Pinger
	logger Logger
}

func NewHandler(deps map[string]Pinger, logger Logger) *Handler {
	return &Handler{deps: deps, logger: logger}
}

// Live GET /healthz
func (h *Handler) Live(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready GET /readyz
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(h.deps))
	for name, dep := range h.deps {
		if err := dep.PingContext(ctx); err != nil {
			h.logger.Warn("GET /readyz - %s unavailable: %v", name, err)
			checks[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	handlers.RespondJSON(w, status, checks)
}
