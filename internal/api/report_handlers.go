package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jessebautista/wpnew-sub000/internal/content"
	"github.com/jessebautista/wpnew-sub000/internal/middleware"
	"github.com/jessebautista/wpnew-sub000/internal/report"
	"github.com/jessebautista/wpnew-sub000/internal/validate"
)

// ReportHandlers serves content flagging and the moderator review queue.
type ReportHandlers struct {
	reports report.Repository
	logger  *slog.Logger
}

func NewReportHandlers(reports report.Repository, logger *slog.Logger) *ReportHandlers {
	return &ReportHandlers{reports: reports, logger: logger}
}

type createReportRequest struct {
	ContentType string `json:"content_type"`
	ContentID   string `json:"content_id"`
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

// Create handles POST /api/reports (authenticated). A second report from
// the same user for the same content item is rejected with 409.
func (h *ReportHandlers) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createReportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	ctype, err := content.ParseType(req.ContentType)
	if err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeUnsupportedType, "unknown content type")
		return
	}
	reason, err := report.ParseReason(req.Reason)
	if err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "unknown report reason")
		return
	}
	description, err := validate.Text(req.Description, validate.DescriptionConstraints)
	if err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "description: "+err.Error())
		return
	}

	now := time.Now()
	rep := &report.Report{
		ContentType: ctype,
		ContentID:   req.ContentID,
		ReporterID:  middleware.GetUserID(ctx),
		Reason:      reason,
		Description: description,
		Status:      report.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.reports.Create(ctx, rep); err != nil {
		if errors.Is(err, report.ErrDuplicateReport) {
			WriteError(w, ctx, http.StatusConflict, ErrCodeDuplicateReport, "you have already reported this content")
			return
		}
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}
	WriteJSON(w, http.StatusCreated, rep)
}

// List handles GET /api/reports?status= (moderator only). An empty status
// returns every report, newest first.
func (h *ReportHandlers) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var status report.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := report.ParseStatus(raw)
		if err != nil {
			WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "unknown report status")
			return
		}
		status = parsed
	}

	reports, err := h.reports.List(ctx, status)
	if err != nil {
		h.logger.Error("list reports", slog.String("error", err.Error()))
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"reports": reports, "count": len(reports)})
}

type reportStatusRequest struct {
	Status string `json:"status"`
}

// SetStatus handles POST /api/reports/{id}/status (moderator only). It
// stamps the reviewer and review time on any transition out of pending.
func (h *ReportHandlers) SetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req reportStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	status, err := report.ParseStatus(req.Status)
	if err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "unknown report status")
		return
	}

	id := r.PathValue("id")
	if err := h.reports.SetStatus(ctx, id, status, middleware.GetUserID(ctx)); err != nil {
		if errors.Is(err, report.ErrReportNotFound) {
			WriteError(w, ctx, http.StatusNotFound, ErrCodeNotFound, "report not found")
			return
		}
		h.logger.Error("set report status", slog.String("id", id), slog.String("error", err.Error()))
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	rep, err := h.reports.GetByID(ctx, id)
	if err != nil {
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	WriteJSON(w, http.StatusOK, rep)
}
