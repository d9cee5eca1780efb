package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jessebautista/wpnew-sub000/internal/admin"
)

// AdminHandlers serves the dashboard: headline stats and the recent
// activity feed. The router gates both behind the admin role.
type AdminHandlers struct {
	admin  *admin.Service
	logger *slog.Logger
}

func NewAdminHandlers(adminSvc *admin.Service, logger *slog.Logger) *AdminHandlers {
	return &AdminHandlers{admin: adminSvc, logger: logger}
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.Stats(r.Context())
	if err != nil {
		h.logger.Error("admin stats", slog.String("error", err.Error()))
		WriteError(w, r.Context(), http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

// Activity handles GET /api/admin/activity?limit=.
func (h *AdminHandlers) Activity(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	feed, err := h.admin.RecentActivity(r.Context(), limit)
	if err != nil {
		h.logger.Error("admin activity", slog.String("error", err.Error()))
		WriteError(w, r.Context(), http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"activity": feed, "count": len(feed)})
}
