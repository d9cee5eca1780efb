package api

import (
	"log/slog"
	"net/http"

	"github.com/jessebautista/wpnew-sub000/internal/middleware"
	"github.com/jessebautista/wpnew-sub000/internal/settings"
)

// SettingsHandlers serves the site settings aggregate and the SEO analyzer.
type SettingsHandlers struct {
	settings *settings.Service
	logger   *slog.Logger
}

func NewSettingsHandlers(svc *settings.Service, logger *slog.Logger) *SettingsHandlers {
	return &SettingsHandlers{settings: svc, logger: logger}
}

// Get handles GET /api/settings.
func (h *SettingsHandlers) Get(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.settings.Get(r.Context()))
}

// Update handles PUT /api/settings (admin only). Sections absent from the
// body keep their current values.
func (h *SettingsHandlers) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var upd settings.Update
	if err := decodeJSON(w, r, &upd); err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	updated := h.settings.Update(ctx, upd, middleware.GetUserID(ctx))
	WriteJSON(w, http.StatusOK, updated)
}

// AnalyzeSEO handles POST /api/settings/seo: scores page metadata without
// persisting anything.
func (h *SettingsHandlers) AnalyzeSEO(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in settings.SEOInput
	if err := decodeJSON(w, r, &in); err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	WriteJSON(w, http.StatusOK, settings.AnalyzeSEO(in))
}
