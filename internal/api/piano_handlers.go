package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jessebautista/wpnew-sub000/internal/content"
	"github.com/jessebautista/wpnew-sub000/internal/dataservice"
	"github.com/jessebautista/wpnew-sub000/internal/geo"
	"github.com/jessebautista/wpnew-sub000/internal/listing"
	"github.com/jessebautista/wpnew-sub000/internal/middleware"
	"github.com/jessebautista/wpnew-sub000/internal/piano"
	"github.com/jessebautista/wpnew-sub000/internal/user"
	"github.com/jessebautista/wpnew-sub000/internal/validate"
)

// PianoHandlers serves the piano directory: public listing and map views
// plus authenticated submission and moderation.
type PianoHandlers struct {
	data   *dataservice.Service
	pianos piano.Repository
	logger *slog.Logger
}

func NewPianoHandlers(data *dataservice.Service, pianos piano.Repository, logger *slog.Logger) *PianoHandlers {
	return &PianoHandlers{data: data, pianos: pianos, logger: logger}
}

// List handles GET /api/pianos. The public sees approved pianos only;
// moderators may request any moderation status via ?status=.
func (h *PianoHandlers) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	status := content.StatusApproved
	if raw := q.Get("status"); raw != "" {
		role, _ := user.ParseRole(middleware.GetUserRole(ctx))
		if !role.CanModerate() {
			WriteError(w, ctx, http.StatusForbidden, ErrCodeForbidden, "status filter requires moderator access")
			return
		}
		parsed, err := content.ParseStatus(raw)
		if err != nil {
			WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "unknown moderation status")
			return
		}
		status = parsed
	}

	pianos, err := h.data.GetPianos(ctx, status)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	items := make([]*piano.Piano, len(pianos))
	for i := range pianos {
		items[i] = &pianos[i]
	}

	if query := q.Get("q"); query != "" {
		items = listing.Search(items, query)
	}
	if category := q.Get("category"); category != "" {
		items = listing.Filter(items, func(p *piano.Piano) bool {
			return p.Category == category
		})
	}

	page, perPage := pageParams(r)
	WriteJSON(w, http.StatusOK, listing.Paginate(items, page, perPage))
}

// Map handles GET /api/pianos/map: approved pianos that carry valid
// coordinates, unpaginated.
func (h *PianoHandlers) Map(w http.ResponseWriter, r *http.Request) {
	pianos, err := h.data.GetPianos(r.Context(), content.StatusApproved)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	markers := make([]piano.Piano, 0, len(pianos))
	for _, p := range pianos {
		if p.OnMap() {
			markers = append(markers, p)
		}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"pianos": markers, "count": len(markers)})
}

// Get handles GET /api/pianos/{id}.
func (h *PianoHandlers) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.data.GetPiano(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

type createPianoRequest struct {
	Title         string     `json:"title"`
	Statement     string     `json:"statement"`
	LocationName  string     `json:"location_name"`
	Coordinates   *geo.Point `json:"coordinates"`
	ArtistName    string     `json:"artist_name"`
	Category      string     `json:"category"`
	Condition     string     `json:"condition"`
	Accessibility string     `json:"accessibility"`
	Hours         string     `json:"hours"`
}

// Create handles POST /api/pianos. Submissions enter the moderation queue
// as pending; moderator submissions are approved immediately.
func (h *PianoHandlers) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createPianoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	title, err := validate.Text(req.Title, validate.TitleConstraints)
	if err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "title: "+err.Error())
		return
	}
	statement, err := validate.Text(req.Statement, validate.DescriptionConstraints)
	if err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "statement: "+err.Error())
		return
	}

	status := content.StatusPending
	role, _ := user.ParseRole(middleware.GetUserRole(ctx))
	if role.CanModerate() {
		status = content.StatusApproved
	}

	now := time.Now()
	p := &piano.Piano{
		Title:            title,
		Statement:        statement,
		LocationName:     req.LocationName,
		Coordinates:      req.Coordinates,
		ArtistName:       req.ArtistName,
		Category:         req.Category,
		Condition:        req.Condition,
		Accessibility:    req.Accessibility,
		Hours:            req.Hours,
		ModerationStatus: status,
		CreatedBy:        middleware.GetUserID(ctx),
		Source:           piano.SourceUserSubmitted,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := p.Validate(); err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}

	if err := h.data.CreatePiano(ctx, p); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusCreated, p)
}

type moderateRequest struct {
	Status string `json:"status"`
}

// Moderate handles POST /api/pianos/{id}/moderate (moderator only, gated
// by the router).
func (h *PianoHandlers) Moderate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req moderateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	status, err := content.ParseStatus(req.Status)
	if err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "unknown moderation status")
		return
	}

	id := r.PathValue("id")
	if err := h.pianos.SetModerationStatus(ctx, id, status, middleware.GetUserID(ctx)); err != nil {
		if errors.Is(err, piano.ErrPianoNotFound) {
			WriteError(w, ctx, http.StatusNotFound, ErrCodeNotFound, "piano not found")
			return
		}
		h.logger.Error("moderate piano", slog.String("id", id), slog.String("error", err.Error()))
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	p, err := h.pianos.GetByID(ctx, id)
	if err != nil {
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

// Delete removes a piano and its images. Comments and reports that point at
// it are kept.
func (h *PianoHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")
	if err := h.pianos.Delete(ctx, id); err != nil {
		if errors.Is(err, piano.ErrPianoNotFound) {
			WriteError(w, ctx, http.StatusNotFound, ErrCodeNotFound, "piano not found")
			return
		}
		h.logger.Error("delete piano", slog.String("id", id), slog.String("error", err.Error()))
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
