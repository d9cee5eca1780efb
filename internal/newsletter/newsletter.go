// Package newsletter manages email subscriptions for the site newsletter.
package newsletter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/jessebautista/wpnew-sub000/internal/validate"
)

// Subscription errors.
var (
	ErrAlreadySubscribed = errors.New("email already subscribed")
	ErrNotSubscribed     = errors.New("email not subscribed")
	ErrInvalidEmail      = errors.New("invalid email address")
)

// Subscription records one subscribed email address.
type Subscription struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// Repository abstracts subscription persistence.
type Repository interface {
	Subscribe(ctx context.Context, email string) (*Subscription, error)
	Unsubscribe(ctx context.Context, email string) error
	Count(ctx context.Context) (int, error)
}

func normalize(email string) (string, error) {
	normalized, err := validate.Email(email)
	if err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

// InMemoryRepository is a mutex-guarded store used in tests and in
// mock-data mode.
type InMemoryRepository struct {
	mu   sync.RWMutex
	subs map[string]*Subscription
}

// NewInMemoryRepository creates an empty in-memory subscription store.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{subs: make(map[string]*Subscription)}
}

func (r *InMemoryRepository) Subscribe(_ context.Context, email string) (*Subscription, error) {
	email, err := normalize(email)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subs[email]; ok {
		return nil, ErrAlreadySubscribed
	}
	sub := &Subscription{
		ID:           uuid.NewString(),
		Email:        email,
		SubscribedAt: time.Now().UTC(),
	}
	r.subs[email] = sub
	cp := *sub
	return &cp, nil
}

func (r *InMemoryRepository) Unsubscribe(_ context.Context, email string) error {
	email, err := normalize(email)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subs[email]; !ok {
		return ErrNotSubscribed
	}
	delete(r.subs, email)
	return nil
}

func (r *InMemoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs), nil
}

// PostgresRepository stores subscriptions in PostgreSQL with a unique
// constraint on email.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository wraps an open database handle.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Subscribe(ctx context.Context, email string) (*Subscription, error) {
	email, err := normalize(email)
	if err != nil {
		return nil, err
	}
	sub := &Subscription{
		ID:           uuid.NewString(),
		Email:        email,
		SubscribedAt: time.Now().UTC(),
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO newsletter_subscriptions (id, email, subscribed_at)
		VALUES ($1, $2, $3)`,
		sub.ID, sub.Email, sub.SubscribedAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return nil, ErrAlreadySubscribed
	}
	if err != nil {
		return nil, fmt.Errorf("insert subscription: %w", err)
	}
	return sub, nil
}

func (r *PostgresRepository) Unsubscribe(ctx context.Context, email string) error {
	email, err := normalize(email)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM newsletter_subscriptions WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotSubscribed
	}
	return nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM newsletter_subscriptions`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count subscriptions: %w", err)
	}
	return n, nil
}
