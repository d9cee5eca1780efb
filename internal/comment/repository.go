package comment

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jessebautista/wpnew-sub000/internal/content"
)

// ErrCommentNotFound is returned when a comment lookup misses.
var ErrCommentNotFound = errors.New("comment not found")

// Repository abstracts comment persistence.
type Repository interface {
	Create(ctx context.Context, c *Comment) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Comment, error)
	ListForContent(ctx context.Context, ctype content.Type, contentID string) ([]Comment, error)
	ListByStatus(ctx context.Context, status content.Status) ([]Comment, error)
	SetModerationStatus(ctx context.Context, id string, status content.Status) error
	CountByStatus(ctx context.Context, status content.Status) (int, error)
}

// InMemoryRepository is a mutex-guarded map store used in tests and in
// mock-data mode.
type InMemoryRepository struct {
	mu       sync.RWMutex
	comments map[string]*Comment
}

// NewInMemoryRepository creates an empty in-memory comment store.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{comments: make(map[string]*Comment)}
}

func (r *InMemoryRepository) Create(_ context.Context, c *Comment) error {
	if err := c.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.ModerationStatus == "" {
		c.ModerationStatus = content.StatusApproved
	}
	cp := *c
	r.comments[c.ID] = &cp
	return nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (*Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, ErrCommentNotFound
	}
	cp := *c
	return &cp, nil
}

// ListForContent returns approved comments for one content item, oldest first.
func (r *InMemoryRepository) ListForContent(_ context.Context, ctype content.Type, contentID string) ([]Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Comment
	for _, c := range r.comments {
		if c.ContentType != ctype || c.ContentID != contentID {
			continue
		}
		if c.ModerationStatus != content.StatusApproved {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) ListByStatus(_ context.Context, status content.Status) ([]Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Comment
	for _, c := range r.comments {
		if c.ModerationStatus != status {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) SetModerationStatus(_ context.Context, id string, status content.Status) error {
	if _, err := content.ParseStatus(string(status)); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return ErrCommentNotFound
	}
	c.ModerationStatus = status
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *InMemoryRepository) CountByStatus(_ context.Context, status content.Status) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, c := range r.comments {
		if c.ModerationStatus == status {
			n++
		}
	}
	return n, nil
}
