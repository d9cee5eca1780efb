package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jessebautista/wpnew-sub000/internal/health"
)

// HealthHandlers serves /health. Each registered dependency is checked
// with a short timeout; the endpoint degrades to 503 when any is down.
type HealthHandlers struct {
	checkers map[string]health.Checker
	mockMode bool
	logger   *slog.Logger
}

func NewHealthHandlers(checkers map[string]health.Checker, mockMode bool, logger *slog.Logger) *HealthHandlers {
	return &HealthHandlers{checkers: checkers, mockMode: mockMode, logger: logger}
}

const healthCheckTimeout = 3 * time.Second

// Health handles GET /health.
func (h *HealthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	status := http.StatusOK
	deps := make(map[string]string, len(h.checkers))
	for name, checker := range h.checkers {
		if err := checker.HealthCheck(ctx); err != nil {
			h.logger.Warn("dependency unhealthy",
				slog.String("dependency", name),
				slog.String("error", err.Error()))
			deps[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	body := map[string]any{
		"status":       "ok",
		"mock_mode":    h.mockMode,
		"dependencies": deps,
	}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	WriteJSON(w, status, body)
}
