package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jessebautista/wpnew-sub000/internal/geocode"
)

// GeocodeHandlers serves address-to-coordinates lookups for the piano and
// event submission forms.
type GeocodeHandlers struct {
	geocode *geocode.Service
	logger  *slog.Logger
}

func NewGeocodeHandlers(svc *geocode.Service, logger *slog.Logger) *GeocodeHandlers {
	return &GeocodeHandlers{geocode: svc, logger: logger}
}

// Search handles GET /api/geocode?q=.
func (h *GeocodeHandlers) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query().Get("q")
	if query == "" {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "q is required")
		return
	}

	results, err := h.geocode.Search(ctx, query)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			// Client went away; nothing useful to write.
			return
		}
		h.logger.Error("geocode", slog.String("error", err.Error()))
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"results": results, "count": len(results)})
}
