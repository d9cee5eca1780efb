package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jessebautista/wpnew-sub000/internal/content"
	"github.com/jessebautista/wpnew-sub000/internal/dataservice"
	"github.com/jessebautista/wpnew-sub000/internal/event"
	"github.com/jessebautista/wpnew-sub000/internal/geo"
	"github.com/jessebautista/wpnew-sub000/internal/listing"
	"github.com/jessebautista/wpnew-sub000/internal/middleware"
	"github.com/jessebautista/wpnew-sub000/internal/user"
	"github.com/jessebautista/wpnew-sub000/internal/validate"
)

// EventHandlers serves event listing, calendar, submission, moderation,
// and attendance.
type EventHandlers struct {
	data   *dataservice.Service
	events event.Repository
	logger *slog.Logger
}

func NewEventHandlers(data *dataservice.Service, events event.Repository, logger *slog.Logger) *EventHandlers {
	return &EventHandlers{data: data, events: events, logger: logger}
}

// eventView decorates an event with its derived lifecycle label.
type eventView struct {
	event.Event
	LifecycleStatus string `json:"lifecycle_status"`
}

func viewOf(ev event.Event, now time.Time) eventView {
	return eventView{Event: ev, LifecycleStatus: ev.Lifecycle(now)}
}

// List handles GET /api/events with optional ?q=, ?timeframe= and
// ?category= filters.
func (h *EventHandlers) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	timeframe, err := listing.ParseTimeframe(q.Get("timeframe"))
	if err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "unknown timeframe")
		return
	}

	events, err := h.data.GetEvents(ctx, content.StatusApproved)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	items := make([]*event.Event, len(events))
	for i := range events {
		items[i] = &events[i]
	}

	if query := q.Get("q"); query != "" {
		items = listing.Search(items, query)
	}
	now := time.Now()
	items = listing.Filter(items, func(ev *event.Event) bool {
		return listing.MatchTimeframe(timeframe, ev.Date, now)
	})
	if category := q.Get("category"); category != "" {
		cat, err := event.ParseCategory(category)
		if err != nil {
			WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "unknown event category")
			return
		}
		items = listing.Filter(items, func(ev *event.Event) bool {
			return ev.Category == cat
		})
	}

	page, perPage := pageParams(r)
	paged := listing.Paginate(items, page, perPage)

	views := make([]eventView, len(paged.Items))
	for i, ev := range paged.Items {
		views[i] = viewOf(*ev, now)
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"items":       views,
		"page":        paged.Page,
		"per_page":    paged.PerPage,
		"total":       paged.Total,
		"total_pages": paged.TotalPages,
	})
}

// Calendar handles GET /api/events/calendar?year=&month=. It returns the
// six-week grid the monthly calendar view renders.
func (h *EventHandlers) Calendar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	now := time.Now()
	year, month := now.Year(), int(now.Month())
	if raw := q.Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1970 || y > 9999 {
			WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "invalid year")
			return
		}
		year = y
	}
	if raw := q.Get("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "invalid month")
			return
		}
		month = m
	}

	events, err := h.data.GetEvents(ctx, content.StatusApproved)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	grid := event.CalendarGrid(year, time.Month(month), events, time.UTC)
	WriteJSON(w, http.StatusOK, map[string]any{
		"year":  year,
		"month": month,
		"days":  grid,
	})
}

// Get handles GET /api/events/{id}.
func (h *EventHandlers) Get(w http.ResponseWriter, r *http.Request) {
	ev, err := h.data.GetEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, viewOf(*ev, time.Now()))
}

type createEventRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Date         time.Time  `json:"date"`
	LocationName string     `json:"location_name"`
	Coordinates  *geo.Point `json:"coordinates"`
	Category     string     `json:"category"`
	Organizer    string     `json:"organizer"`
}

// Create handles POST /api/events. Like pianos, submissions are pending
// until moderated; moderator submissions are approved immediately.
func (h *EventHandlers) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	title, err := validate.Text(req.Title, validate.TitleConstraints)
	if err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "title: "+err.Error())
		return
	}
	description, err := validate.Text(req.Description, validate.DescriptionConstraints)
	if err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "description: "+err.Error())
		return
	}

	category := event.CategoryOther
	if req.Category != "" {
		category, err = event.ParseCategory(req.Category)
		if err != nil {
			WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "unknown event category")
			return
		}
	}

	status := content.StatusPending
	role, _ := user.ParseRole(middleware.GetUserRole(ctx))
	if role.CanModerate() {
		status = content.StatusApproved
	}

	now := time.Now()
	ev := &event.Event{
		Title:            title,
		Description:      description,
		Date:             req.Date,
		LocationName:     req.LocationName,
		Coordinates:      req.Coordinates,
		Category:         category,
		Organizer:        req.Organizer,
		ModerationStatus: status,
		CreatedBy:        middleware.GetUserID(ctx),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := ev.Validate(); err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}

	if err := h.data.CreateEvent(ctx, ev); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusCreated, viewOf(*ev, now))
}

// Moderate handles POST /api/events/{id}/moderate (moderator only).
func (h *EventHandlers) Moderate(w http.ResponseWriter, r *http.Request) {
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
	if err := h.events.SetModerationStatus(ctx, id, status, middleware.GetUserID(ctx)); err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			WriteError(w, ctx, http.StatusNotFound, ErrCodeNotFound, "event not found")
			return
		}
		h.logger.Error("moderate event", slog.String("id", id), slog.String("error", err.Error()))
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	ev, err := h.events.GetByID(ctx, id)
	if err != nil {
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	WriteJSON(w, http.StatusOK, viewOf(*ev, time.Now()))
}

type attendRequest struct {
	Going bool `json:"going"`
}

// Attend handles POST /api/events/{id}/attend. Going increments the
// attendee count, not-going decrements it; the repository clamps at zero.
func (h *EventHandlers) Attend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req attendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	delta := 1
	if !req.Going {
		delta = -1
	}

	id := r.PathValue("id")
	if err := h.events.SetAttendance(ctx, id, delta); err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			WriteError(w, ctx, http.StatusNotFound, ErrCodeNotFound, "event not found")
			return
		}
		h.logger.Error("set attendance", slog.String("id", id), slog.String("error", err.Error()))
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	ev, err := h.events.GetByID(ctx, id)
	if err != nil {
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"id": ev.ID, "attendee_count": ev.AttendeeCount})
}

func (h *EventHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")
	if err := h.events.Delete(ctx, id); err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			WriteError(w, ctx, http.StatusNotFound, ErrCodeNotFound, "event not found")
			return
		}
		h.logger.Error("delete event", slog.String("id", id), slog.String("error", err.Error()))
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
