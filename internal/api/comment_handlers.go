package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jessebautista/wpnew-sub000/internal/blog"
	"github.com/jessebautista/wpnew-sub000/internal/comment"
	"github.com/jessebautista/wpnew-sub000/internal/content"
	"github.com/jessebautista/wpnew-sub000/internal/middleware"
	"github.com/jessebautista/wpnew-sub000/internal/user"
	"github.com/jessebautista/wpnew-sub000/internal/validate"
)

// CommentHandlers serves comment threads on pianos, events, and blog posts.
// Anonymous commenters get a stable session-derived pseudonym.
type CommentHandlers struct {
	comments comment.Repository
	posts    blog.Repository
	users    user.Repository
	logger   *slog.Logger
}

func NewCommentHandlers(comments comment.Repository, posts blog.Repository, users user.Repository, logger *slog.Logger) *CommentHandlers {
	return &CommentHandlers{comments: comments, posts: posts, users: users, logger: logger}
}

func contentRef(r *http.Request) (content.Type, string, error) {
	q := r.URL.Query()
	ctype, err := content.ParseType(q.Get("content_type"))
	if err != nil {
		return "", "", err
	}
	id := q.Get("content_id")
	if id == "" {
		return "", "", errors.New("content_id is required")
	}
	return ctype, id, nil
}

// List handles GET /api/comments?content_type=&content_id=. Only approved
// comments are returned, oldest first.
func (h *CommentHandlers) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ctype, contentID, err := contentRef(r)
	if err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}

	comments, err := h.comments.ListForContent(ctx, ctype, contentID)
	if err != nil {
		h.logger.Error("list comments", slog.String("error", err.Error()))
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"comments": comments, "count": len(comments)})
}

type createCommentRequest struct {
	ContentType string `json:"content_type"`
	ContentID   string `json:"content_id"`
	Text        string `json:"text"`
}

// Create handles POST /api/comments. Authenticated users comment under
// their account name; anonymous requests need an X-Session-ID header and
// get a derived pseudonym.
func (h *CommentHandlers) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	ctype, err := content.ParseType(req.ContentType)
	if err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeUnsupportedType, "unknown content type")
		return
	}
	text, err := validate.Text(req.Text, validate.CommentConstraints)
	if err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "text: "+err.Error())
		return
	}

	// Blog authors can switch comments off per post.
	if ctype == content.TypeBlogPost {
		post, err := h.posts.GetByID(ctx, req.ContentID)
		if err == nil && !post.AllowComments {
			WriteError(w, ctx, http.StatusForbidden, ErrCodeForbidden, comment.ErrCommentsDisabled.Error())
			return
		}
	}

	authorID := middleware.GetUserID(ctx)
	var authorName string
	switch {
	case authorID != "":
		if u, err := h.users.GetByID(ctx, authorID); err == nil {
			authorName = u.FullName
		}
	default:
		sessionID := r.Header.Get("X-Session-ID")
		if sessionID == "" {
			WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "anonymous comments require an X-Session-ID header")
			return
		}
		authorName = comment.AnonymousName(sessionID)
	}

	now := time.Now()
	c := &comment.Comment{
		ContentType:      ctype,
		ContentID:        req.ContentID,
		AuthorID:         authorID,
		AuthorName:       authorName,
		Text:             text,
		ModerationStatus: content.StatusApproved,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := h.comments.Create(ctx, c); err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}
	WriteJSON(w, http.StatusCreated, c)
}

// Moderate handles POST /api/comments/{id}/moderate (moderator only).
func (h *CommentHandlers) Moderate(w http.ResponseWriter, r *http.Request) {
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
	if err := h.comments.SetModerationStatus(ctx, id, status); err != nil {
		if errors.Is(err, comment.ErrCommentNotFound) {
			WriteError(w, ctx, http.StatusNotFound, ErrCodeNotFound, "comment not found")
			return
		}
		h.logger.Error("moderate comment", slog.String("id", id), slog.String("error", err.Error()))
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/comments/{id} (moderator only).
func (h *CommentHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	if err := h.comments.Delete(ctx, id); err != nil {
		if errors.Is(err, comment.ErrCommentNotFound) {
			WriteError(w, ctx, http.StatusNotFound, ErrCodeNotFound, "comment not found")
			return
		}
		h.logger.Error("delete comment", slog.String("id", id), slog.String("error", err.Error()))
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
