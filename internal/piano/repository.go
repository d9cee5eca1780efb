package piano

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jessebautista/wpnew-sub000/internal/content"
)

// Common errors for piano operations.
var ErrPianoNotFound = errors.New("piano not found")

// Repository defines the interface for piano data operations.
type Repository interface {
	// Create stores a new piano.
	Create(ctx context.Context, p *Piano) error

	// Update stores mutated fields of an existing piano.
	Update(ctx context.Context, p *Piano) error

	// Delete removes a piano row. Comments and reports referencing it are
	// intentionally left in place for audit.
	Delete(ctx context.Context, id string) error

	// GetByID retrieves a piano by id regardless of moderation status.
	GetByID(ctx context.Context, id string) (*Piano, error)

	// List retrieves pianos filtered by moderation status
	// (empty status means all), newest first.
	List(ctx context.Context, status content.Status) ([]Piano, error)

	// SetModerationStatus transitions a piano's moderation status and
	// records the moderator.
	SetModerationStatus(ctx context.Context, id string, status content.Status, moderator string) error

	// CountByStatus returns piano counts per moderation status.
	CountByStatus(ctx context.Context) (map[content.Status]int, error)

	// CountSince returns the number of pianos submitted at or after the cutoff.
	CountSince(ctx context.Context, cutoff time.Time) (int, error)

	// AddImage appends an image record to a piano's collection.
	AddImage(ctx context.Context, img *Image) error
}

// InMemoryRepository is an in-memory implementation of Repository.
// Used for mock mode and tests. Thread-safe via RWMutex.
type InMemoryRepository struct {
	mu     sync.RWMutex
	pianos map[string]*Piano
}

// NewInMemoryRepository creates a new in-memory piano repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{pianos: make(map[string]*Piano)}
}

func clonePiano(p *Piano) *Piano {
	cp := *p
	if p.Coordinates != nil {
		point := *p.Coordinates
		cp.Coordinates = &point
	}
	if p.Images != nil {
		cp.Images = append([]Image(nil), p.Images...)
	}
	return &cp
}

// Create stores a new piano.
func (r *InMemoryRepository) Create(_ context.Context, p *Piano) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pianos[p.ID] = clonePiano(p)
	return nil
}

// Update stores mutated fields of an existing piano.
func (r *InMemoryRepository) Update(_ context.Context, p *Piano) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pianos[p.ID]; !ok {
		return ErrPianoNotFound
	}
	r.pianos[p.ID] = clonePiano(p)
	return nil
}

// Delete removes a piano row.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pianos[id]; !ok {
		return ErrPianoNotFound
	}
	delete(r.pianos, id)
	return nil
}

// GetByID retrieves a piano by id.
func (r *InMemoryRepository) GetByID(_ context.Context, id string) (*Piano, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pianos[id]
	if !ok {
		return nil, ErrPianoNotFound
	}
	return clonePiano(p), nil
}

// List retrieves pianos filtered by moderation status, newest first.
func (r *InMemoryRepository) List(_ context.Context, status content.Status) ([]Piano, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Piano, 0, len(r.pianos))
	for _, p := range r.pianos {
		if status != "" && p.ModerationStatus != status {
			continue
		}
		out = append(out, *clonePiano(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// SetModerationStatus transitions a piano's moderation status.
func (r *InMemoryRepository) SetModerationStatus(_ context.Context, id string, status content.Status, moderator string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pianos[id]
	if !ok {
		return ErrPianoNotFound
	}
	p.ModerationStatus = status
	if status == content.StatusApproved {
		p.Verified = true
		p.VerifiedBy = &moderator
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// CountByStatus returns piano counts per moderation status.
func (r *InMemoryRepository) CountByStatus(_ context.Context) (map[content.Status]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[content.Status]int)
	for _, p := range r.pianos {
		counts[p.ModerationStatus]++
	}
	return counts, nil
}

// CountSince returns the number of pianos submitted at or after the cutoff.
func (r *InMemoryRepository) CountSince(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, p := range r.pianos {
		if !p.CreatedAt.Before(cutoff) {
			n++
		}
	}
	return n, nil
}

// AddImage appends an image record to a piano's collection.
func (r *InMemoryRepository) AddImage(_ context.Context, img *Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pianos[img.PianoID]
	if !ok {
		return ErrPianoNotFound
	}
	p.Images = append(p.Images, *img)
	return nil
}
