// Package api provides the HTTP handlers and router for the WorldPianos API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/jessebautista/wpnew-sub000/internal/dataservice"
	"github.com/jessebautista/wpnew-sub000/internal/middleware"
)

// Error codes returned in the standard error envelope.
const (
	ErrCodeValidation      = "validation_error"
	ErrCodeAuthFailed      = "auth_failed"
	ErrCodeForbidden       = "forbidden"
	ErrCodeNotFound        = "not_found"
	ErrCodeConflict        = "conflict"
	ErrCodeBadRequest      = "bad_request"
	ErrCodeInternal        = "internal_error"
	ErrCodeRateLimited     = "rate_limited"
	ErrCodeUnsupportedType = "unsupported_type"
	ErrCodeDuplicateReport = "duplicate_report"
)

// ErrorResponse is the envelope for every API error:
// {"error": {"code": "...", "message": "..."}}
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the machine-readable code and a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError writes the standard JSON error envelope and records the code
// for the logging middleware.
func WriteError(w http.ResponseWriter, ctx context.Context, status int, code, message string) {
	middleware.SetErrorCode(ctx, code)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}); err != nil {
		fmt.Fprintf(w, `{"error":{"code":%q,"message":"encoding failed"}}`, code)
	}
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeServiceError maps data-service failures onto the error envelope.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	ctx := r.Context()

	var valErr *dataservice.ValidationError
	var authErr *dataservice.AuthorizationError
	switch {
	case errors.Is(err, dataservice.ErrNotFound):
		WriteError(w, ctx, http.StatusNotFound, ErrCodeNotFound, "resource not found")
	case errors.As(err, &valErr):
		msg := valErr.Message
		if msg == "" {
			msg = valErr.Error()
		}
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, msg)
	case errors.As(err, &authErr):
		WriteError(w, ctx, http.StatusForbidden, ErrCodeForbidden, authErr.Message)
	default:
		logger.Error("data service failure",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
}

// maxBodyBytes bounds JSON request bodies. Image uploads have their own
// limit in the upload handler.
const maxBodyBytes = 1 << 20

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	// A second value means trailing garbage.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}
