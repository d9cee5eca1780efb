package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jessebautista/wpnew-sub000/internal/newsletter"
)

// NewsletterHandlers serves newsletter subscribe/unsubscribe.
type NewsletterHandlers struct {
	subs   newsletter.Repository
	logger *slog.Logger
}

func NewNewsletterHandlers(subs newsletter.Repository, logger *slog.Logger) *NewsletterHandlers {
	return &NewsletterHandlers{subs: subs, logger: logger}
}

type newsletterRequest struct {
	Email string `json:"email"`
}

// Subscribe handles POST /api/newsletter.
func (h *NewsletterHandlers) Subscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req newsletterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	sub, err := h.subs.Subscribe(ctx, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, newsletter.ErrInvalidEmail):
			WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "invalid email address")
		case errors.Is(err, newsletter.ErrAlreadySubscribed):
			WriteError(w, ctx, http.StatusConflict, ErrCodeConflict, "email is already subscribed")
		default:
			h.logger.Error("subscribe", slog.String("error", err.Error()))
			WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		}
		return
	}
	WriteJSON(w, http.StatusCreated, sub)
}

// Unsubscribe handles DELETE /api/newsletter.
func (h *NewsletterHandlers) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req newsletterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	if err := h.subs.Unsubscribe(ctx, req.Email); err != nil {
		switch {
		case errors.Is(err, newsletter.ErrInvalidEmail):
			WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "invalid email address")
		case errors.Is(err, newsletter.ErrNotSubscribed):
			WriteError(w, ctx, http.StatusNotFound, ErrCodeNotFound, "email is not subscribed")
		default:
			h.logger.Error("unsubscribe", slog.String("error", err.Error()))
			WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
