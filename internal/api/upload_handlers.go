package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/jessebautista/wpnew-sub000/internal/piano"
	"github.com/jessebautista/wpnew-sub000/internal/upload"
)

// UploadHandlers serves piano image uploads.
type UploadHandlers struct {
	uploads *upload.Service
	logger  *slog.Logger
	maxSize int64
}

func NewUploadHandlers(uploads *upload.Service, maxSizeMB int, logger *slog.Logger) *UploadHandlers {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &UploadHandlers{uploads: uploads, logger: logger, maxSize: int64(maxSizeMB) << 20}
}

// PianoImage handles POST /api/pianos/{id}/images (multipart, field name
// "image", optional "alt_text").
func (h *UploadHandlers) PianoImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+1<<20)
	if err := r.ParseMultipartForm(h.maxSize); err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "image file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if err := h.uploads.Validate(contentType, header.Size); err != nil {
		writeUploadError(w, r, err)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("read upload", slog.String("error", err.Error()))
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	img, err := h.uploads.UploadPianoImage(ctx, r.PathValue("id"), contentType, r.FormValue("alt_text"), data)
	if err != nil {
		writeUploadError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, img)
}

func writeUploadError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, upload.ErrUnsupportedType):
		WriteError(w, ctx, http.StatusUnsupportedMediaType, ErrCodeUnsupportedType, "only jpeg, png, webp and gif images are accepted")
	case errors.Is(err, upload.ErrFileTooLarge):
		WriteError(w, ctx, http.StatusRequestEntityTooLarge, ErrCodeValidation, "file exceeds the maximum upload size")
	case errors.Is(err, upload.ErrPianoIDRequired), errors.Is(err, piano.ErrPianoNotFound):
		WriteError(w, ctx, http.StatusNotFound, ErrCodeNotFound, "piano not found")
	default:
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "upload failed")
	}
}
