package event

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jessebautista/wpnew-sub000/internal/content"
)

// ErrEventNotFound is returned when an event lookup misses.
var ErrEventNotFound = errors.New("event not found")

// Repository abstracts event persistence.
type Repository interface {
	Create(ctx context.Context, ev *Event) error
	Update(ctx context.Context, ev *Event) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, status content.Status) ([]Event, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]Event, error)
	SetModerationStatus(ctx context.Context, id string, status content.Status, moderatorID string) error
	SetAttendance(ctx context.Context, id string, delta int) error
	CountByStatus(ctx context.Context) (map[content.Status]int, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}

// InMemoryRepository is a mutex-guarded map store used in tests and in
// mock-data mode.
type InMemoryRepository struct {
	mu     sync.RWMutex
	events map[string]*Event
}

// NewInMemoryRepository creates an empty in-memory event store.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{events: make(map[string]*Event)}
}

func cloneEvent(ev *Event) *Event {
	cp := *ev
	if ev.Coordinates != nil {
		pt := *ev.Coordinates
		cp.Coordinates = &pt
	}
	if ev.VerifiedBy != nil {
		v := *ev.VerifiedBy
		cp.VerifiedBy = &v
	}
	return &cp
}

func (r *InMemoryRepository) Create(_ context.Context, ev *Event) error {
	if err := ev.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	ev.CreatedAt = now
	ev.UpdatedAt = now
	if ev.ModerationStatus == "" {
		ev.ModerationStatus = content.StatusPending
	}
	r.events[ev.ID] = cloneEvent(ev)
	return nil
}

func (r *InMemoryRepository) Update(_ context.Context, ev *Event) error {
	if err := ev.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.events[ev.ID]
	if !ok {
		return ErrEventNotFound
	}
	ev.CreatedAt = existing.CreatedAt
	ev.UpdatedAt = time.Now().UTC()
	r.events[ev.ID] = cloneEvent(ev)
	return nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (*Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ev, ok := r.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	return cloneEvent(ev), nil
}

// List returns events with the given moderation status, or all events when
// status is empty, ordered by event date ascending.
func (r *InMemoryRepository) List(_ context.Context, status content.Status) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Event, 0, len(r.events))
	for _, ev := range r.events {
		if status != "" && ev.ModerationStatus != status {
			continue
		}
		out = append(out, *cloneEvent(ev))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *InMemoryRepository) ListBetween(_ context.Context, from, to time.Time) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Event
	for _, ev := range r.events {
		if ev.Date.Before(from) || ev.Date.After(to) {
			continue
		}
		out = append(out, *cloneEvent(ev))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *InMemoryRepository) SetModerationStatus(_ context.Context, id string, status content.Status, moderatorID string) error {
	if _, err := content.ParseStatus(string(status)); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ev, ok := r.events[id]
	if !ok {
		return ErrEventNotFound
	}
	ev.ModerationStatus = status
	if status == content.StatusApproved {
		ev.Verified = true
		ev.VerifiedBy = &moderatorID
	}
	ev.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *InMemoryRepository) SetAttendance(_ context.Context, id string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev, ok := r.events[id]
	if !ok {
		return ErrEventNotFound
	}
	ev.AttendeeCount += delta
	if ev.AttendeeCount < 0 {
		ev.AttendeeCount = 0
	}
	ev.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *InMemoryRepository) CountByStatus(_ context.Context) (map[content.Status]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[content.Status]int)
	for _, ev := range r.events {
		counts[ev.ModerationStatus]++
	}
	return counts, nil
}

func (r *InMemoryRepository) CountSince(_ context.Context, since time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, ev := range r.events {
		if !ev.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}
