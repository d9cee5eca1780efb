package blog

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jessebautista/wpnew-sub000/internal/content"
)

// ErrPostNotFound is returned when a post lookup misses.
var ErrPostNotFound = errors.New("blog post not found")

// Repository abstracts blog post persistence.
type Repository interface {
	Create(ctx context.Context, p *Post) error
	Update(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Post, error)
	List(ctx context.Context, publishedOnly bool) ([]Post, error)
	SetModerationStatus(ctx context.Context, id string, status content.Status) error
	CountByStatus(ctx context.Context) (map[content.Status]int, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}

// InMemoryRepository is a mutex-guarded map store used in tests and in
// mock-data mode.
type InMemoryRepository struct {
	mu    sync.RWMutex
	posts map[string]*Post
}

// NewInMemoryRepository creates an empty in-memory post store.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{posts: make(map[string]*Post)}
}

func clonePost(p *Post) *Post {
	cp := *p
	if p.Tags != nil {
		cp.Tags = append([]string(nil), p.Tags...)
	}
	return &cp
}

func (r *InMemoryRepository) Create(_ context.Context, p *Post) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.ModerationStatus == "" {
		p.ModerationStatus = content.StatusPending
	}
	r.posts[p.ID] = clonePost(p)
	return nil
}

func (r *InMemoryRepository) Update(_ context.Context, p *Post) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.posts[p.ID]
	if !ok {
		return ErrPostNotFound
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	r.posts[p.ID] = clonePost(p)
	return nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (*Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, ErrPostNotFound
	}
	return clonePost(p), nil
}

// List returns posts newest first; publishedOnly filters out drafts.
func (r *InMemoryRepository) List(_ context.Context, publishedOnly bool) ([]Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Post, 0, len(r.posts))
	for _, p := range r.posts {
		if publishedOnly && !p.Published {
			continue
		}
		out = append(out, *clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) SetModerationStatus(_ context.Context, id string, status content.Status) error {
	if _, err := content.ParseStatus(string(status)); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return ErrPostNotFound
	}
	p.ModerationStatus = status
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *InMemoryRepository) CountByStatus(_ context.Context) (map[content.Status]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[content.Status]int)
	for _, p := range r.posts {
		counts[p.ModerationStatus]++
	}
	return counts, nil
}

func (r *InMemoryRepository) CountSince(_ context.Context, since time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, p := range r.posts {
		if !p.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}
