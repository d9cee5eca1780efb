package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/jessebautista/wpnew-sub000/internal/dataservice"
)

// SearchHandlers serves sitewide search and the public stats counters.
type SearchHandlers struct {
	data   *dataservice.Service
	logger *slog.Logger
}

func NewSearchHandlers(data *dataservice.Service, logger *slog.Logger) *SearchHandlers {
	return &SearchHandlers{data: data, logger: logger}
}

// Search handles GET /api/search?q=: a merged result list across pianos,
// events, and blog posts.
func (h *SearchHandlers) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "q is required")
		return
	}

	results, err := h.data.SearchContent(ctx, query)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"results": results, "count": len(results)})
}

// Stats handles GET /api/stats: homepage headline numbers.
func (h *SearchHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.data.GetStats(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}
