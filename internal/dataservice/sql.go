package dataservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jessebautista/wpnew-sub000/internal/blog"
	"github.com/jessebautista/wpnew-sub000/internal/content"
	"github.com/jessebautista/wpnew-sub000/internal/event"
	"github.com/jessebautista/wpnew-sub000/internal/piano"
)

// sqlTransport reaches the dataset through the PostgreSQL repositories.
type sqlTransport struct {
	pianos piano.Repository
	events event.Repository
	posts  blog.Repository
}

// NewSQLTransport builds the direct-database transport.
func NewSQLTransport(db *sql.DB) Transport {
	return &sqlTransport{
		pianos: piano.NewPostgresRepository(db),
		events: event.NewPostgresRepository(db),
		posts:  blog.NewPostgresRepository(db),
	}
}

func (t *sqlTransport) Name() string { return "database" }

// classify maps repository errors into the transport error taxonomy: lookup
// misses and validation failures are fatal, everything else (connection
// refused, timeouts, bad credentials at the wire level) is a network error
// that advances the fallback chain.
func (t *sqlTransport) classify(err error, missing error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, missing) {
		return ErrNotFound
	}
	if isModelValidation(err) {
		return &ValidationError{Err: err}
	}
	return &NetworkError{Transport: t.Name(), Err: err}
}

func isModelValidation(err error) bool {
	for _, v := range []error{
		piano.ErrTitleRequired, piano.ErrInvalidCoordinates,
		event.ErrTitleRequired, event.ErrDateRequired,
		event.ErrInvalidCoordinates, event.ErrInvalidCategory,
		blog.ErrTitleRequired, blog.ErrContentRequired,
		content.ErrInvalidType, content.ErrInvalidStatus,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

func (t *sqlTransport) GetPianos(ctx context.Context, status content.Status) ([]piano.Piano, error) {
	out, err := t.pianos.List(ctx, status)
	return out, t.classify(err, piano.ErrPianoNotFound)
}

func (t *sqlTransport) GetPiano(ctx context.Context, id string) (*piano.Piano, error) {
	p, err := t.pianos.GetByID(ctx, id)
	return p, t.classify(err, piano.ErrPianoNotFound)
}

func (t *sqlTransport) CreatePiano(ctx context.Context, p *piano.Piano) error {
	return t.classify(t.pianos.Create(ctx, p), piano.ErrPianoNotFound)
}

func (t *sqlTransport) GetEvents(ctx context.Context, status content.Status) ([]event.Event, error) {
	out, err := t.events.List(ctx, status)
	return out, t.classify(err, event.ErrEventNotFound)
}

func (t *sqlTransport) GetEvent(ctx context.Context, id string) (*event.Event, error) {
	ev, err := t.events.GetByID(ctx, id)
	return ev, t.classify(err, event.ErrEventNotFound)
}

func (t *sqlTransport) CreateEvent(ctx context.Context, ev *event.Event) error {
	return t.classify(t.events.Create(ctx, ev), event.ErrEventNotFound)
}

func (t *sqlTransport) GetBlogPosts(ctx context.Context, publishedOnly bool) ([]blog.Post, error) {
	out, err := t.posts.List(ctx, publishedOnly)
	return out, t.classify(err, blog.ErrPostNotFound)
}

func (t *sqlTransport) GetBlogPost(ctx context.Context, id string) (*blog.Post, error) {
	p, err := t.posts.GetByID(ctx, id)
	return p, t.classify(err, blog.ErrPostNotFound)
}

func (t *sqlTransport) CreateBlogPost(ctx context.Context, p *blog.Post) error {
	return t.classify(t.posts.Create(ctx, p), blog.ErrPostNotFound)
}
