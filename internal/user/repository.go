package user

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrUserNotFound is returned when an id or email lookup misses.
var ErrUserNotFound = errors.New("user not found")

// Repository defines the interface for user data operations.
type Repository interface {
	// Create stores a new user.
	Create(ctx context.Context, u *User) error

	// GetByID retrieves a user by id.
	GetByID(ctx context.Context, id string) (*User, error)

	// List retrieves all users ordered by creation time (newest first).
	List(ctx context.Context) ([]*User, error)

	// CountByRole returns the number of users per role.
	CountByRole(ctx context.Context) (map[Role]int, error)

	// CountSince returns the number of users created at or after the cutoff.
	CountSince(ctx context.Context, cutoff time.Time) (int, error)
}

// InMemoryRepository is an in-memory implementation of Repository.
// Used for mock mode and tests. Thread-safe via RWMutex.
type InMemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*User
}

// NewInMemoryRepository creates a new in-memory user repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[string]*User)}
}

// Create stores a new user.
func (r *InMemoryRepository) Create(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[cp.ID] = &cp
	return nil
}

// GetByID retrieves a user by id.
func (r *InMemoryRepository) GetByID(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

// List retrieves all users ordered by creation time (newest first).
func (r *InMemoryRepository) List(_ context.Context) ([]*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// CountByRole returns the number of users per role.
func (r *InMemoryRepository) CountByRole(_ context.Context) (map[Role]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[Role]int)
	for _, u := range r.users {
		counts[u.Role]++
	}
	return counts, nil
}

// CountSince returns the number of users created at or after the cutoff.
func (r *InMemoryRepository) CountSince(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, u := range r.users {
		if !u.CreatedAt.Before(cutoff) {
			n++
		}
	}
	return n, nil
}
