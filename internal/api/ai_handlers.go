package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jessebautista/wpnew-sub000/internal/ai"
	"github.com/jessebautista/wpnew-sub000/internal/content"
	"github.com/jessebautista/wpnew-sub000/internal/dataservice"
)

// AIHandlers serves content enhancement and schema.org structured data.
type AIHandlers struct {
	ai     *ai.Service
	data   *dataservice.Service
	logger *slog.Logger
}

func NewAIHandlers(aiSvc *ai.Service, data *dataservice.Service, logger *slog.Logger) *AIHandlers {
	return &AIHandlers{ai: aiSvc, data: data, logger: logger}
}

// Enhance handles POST /api/ai/enhance: returns improvement suggestions
// for a draft title/description pair.
func (h *AIHandlers) Enhance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in ai.Input
	if err := decodeJSON(w, r, &in); err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	result, err := h.ai.Enhance(ctx, in)
	if err != nil {
		if errors.Is(err, content.ErrInvalidType) {
			WriteError(w, ctx, http.StatusBadRequest, ErrCodeUnsupportedType, "unknown content type")
			return
		}
		h.logger.Error("enhance", slog.String("error", err.Error()))
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// StructuredData handles GET /api/ai/structured?type=&id=: schema.org
// JSON-LD for one content item.
func (h *AIHandlers) StructuredData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	ctype, err := content.ParseType(q.Get("type"))
	if err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeUnsupportedType, "unknown content type")
		return
	}
	id := q.Get("id")
	if id == "" {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "id is required")
		return
	}

	data, err := h.structuredFor(ctx, ctype, id)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, data)
}

func (h *AIHandlers) structuredFor(ctx context.Context, ctype content.Type, id string) (ai.StructuredData, error) {
	switch ctype {
	case content.TypePiano:
		p, err := h.data.GetPiano(ctx, id)
		if err != nil {
			return nil, err
		}
		return ai.StructuredDataForPiano(p), nil
	case content.TypeEvent:
		ev, err := h.data.GetEvent(ctx, id)
		if err != nil {
			return nil, err
		}
		return ai.StructuredDataForEvent(ev), nil
	default:
		p, err := h.data.GetBlogPost(ctx, id)
		if err != nil {
			return nil, err
		}
		return ai.StructuredDataForPost(p), nil
	}
}
