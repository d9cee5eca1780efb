package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jessebautista/wpnew-sub000/internal/blog"
	"github.com/jessebautista/wpnew-sub000/internal/content"
	"github.com/jessebautista/wpnew-sub000/internal/dataservice"
	"github.com/jessebautista/wpnew-sub000/internal/listing"
	"github.com/jessebautista/wpnew-sub000/internal/middleware"
	"github.com/jessebautista/wpnew-sub000/internal/user"
	"github.com/jessebautista/wpnew-sub000/internal/validate"
)

// BlogHandlers serves the blog: public reads of published posts, authoring,
// and moderation.
type BlogHandlers struct {
	data   *dataservice.Service
	posts  blog.Repository
	users  user.Repository
	logger *slog.Logger
}

func NewBlogHandlers(data *dataservice.Service, posts blog.Repository, users user.Repository, logger *slog.Logger) *BlogHandlers {
	return &BlogHandlers{data: data, posts: posts, users: users, logger: logger}
}

// List handles GET /api/blog. The public sees published posts; moderators
// may pass ?drafts=true to include unpublished ones.
func (h *BlogHandlers) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	publishedOnly := true
	if q.Get("drafts") == "true" {
		role, _ := user.ParseRole(middleware.GetUserRole(ctx))
		if !role.CanModerate() {
			WriteError(w, ctx, http.StatusForbidden, ErrCodeForbidden, "drafts require moderator access")
			return
		}
		publishedOnly = false
	}

	posts, err := h.data.GetBlogPosts(ctx, publishedOnly)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	items := make([]*blog.Post, len(posts))
	for i := range posts {
		items[i] = &posts[i]
	}

	if query := q.Get("q"); query != "" {
		items = listing.Search(items, query)
	}
	if category := q.Get("category"); category != "" {
		items = listing.Filter(items, func(p *blog.Post) bool {
			return p.Category == category
		})
	}
	if tag := q.Get("tag"); tag != "" {
		items = listing.Filter(items, func(p *blog.Post) bool {
			for _, t := range p.Tags {
				if t == tag {
					return true
				}
			}
			return false
		})
	}

	page, perPage := pageParams(r)
	WriteJSON(w, http.StatusOK, listing.Paginate(items, page, perPage))
}

// Get handles GET /api/blog/{id}.
func (h *BlogHandlers) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.data.GetBlogPost(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

type createPostRequest struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	Published     bool     `json:"published"`
	AllowComments *bool    `json:"allow_comments"`
}

// Create handles POST /api/blog (authenticated authors; the router gates it).
func (h *BlogHandlers) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createPostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	title, err := validate.Text(req.Title, validate.TitleConstraints)
	if err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "title: "+err.Error())
		return
	}
	if req.Content == "" {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, "content is required")
		return
	}

	authorID := middleware.GetUserID(ctx)
	authorName := ""
	if u, err := h.users.GetByID(ctx, authorID); err == nil {
		authorName = u.FullName
	}

	allowComments := true
	if req.AllowComments != nil {
		allowComments = *req.AllowComments
	}

	status := content.StatusPending
	role, _ := user.ParseRole(middleware.GetUserRole(ctx))
	if role.CanModerate() {
		status = content.StatusApproved
	}

	now := time.Now()
	p := &blog.Post{
		Title:            title,
		Content:          req.Content,
		Excerpt:          req.Excerpt,
		Category:         req.Category,
		Tags:             req.Tags,
		Published:        req.Published,
		AllowComments:    allowComments,
		AuthorID:         authorID,
		AuthorName:       authorName,
		ModerationStatus: status,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := p.Validate(); err != nil {
		WriteError(w, ctx, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}

	if err := h.data.CreateBlogPost(ctx, p); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusCreated, p)
}

// Moderate handles POST /api/blog/{id}/moderate (moderator only).
func (h *BlogHandlers) Moderate(w http.ResponseWriter, r *http.Request) {
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
	if err := h.posts.SetModerationStatus(ctx, id, status); err != nil {
		if errors.Is(err, blog.ErrPostNotFound) {
			WriteError(w, ctx, http.StatusNotFound, ErrCodeNotFound, "blog post not found")
			return
		}
		h.logger.Error("moderate blog post", slog.String("id", id), slog.String("error", err.Error()))
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	p, err := h.posts.GetByID(ctx, id)
	if err != nil {
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

func (h *BlogHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")
	if err := h.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, blog.ErrPostNotFound) {
			WriteError(w, ctx, http.StatusNotFound, ErrCodeNotFound, "blog post not found")
			return
		}
		h.logger.Error("delete blog post", slog.String("id", id), slog.String("error", err.Error()))
		WriteError(w, ctx, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
