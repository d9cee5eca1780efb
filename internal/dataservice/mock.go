package dataservice

import (
	"context"
	"errors"
	"time"

	"github.com/jessebautista/wpnew-sub000/internal/blog"
	"github.com/jessebautista/wpnew-sub000/internal/content"
	"github.com/jessebautista/wpnew-sub000/internal/event"
	"github.com/jessebautista/wpnew-sub000/internal/mockdata"
	"github.com/jessebautista/wpnew-sub000/internal/piano"
)

// mockTransport serves the built-in demo dataset. It sits at the end of
// every fallback chain and never fails for network reasons; a small sleep
// keeps demo-mode timing honest.
type mockTransport struct {
	store *mockdata.Store
	delay time.Duration
}

// NewMockTransport builds the demo-data transport over a seeded store.
func NewMockTransport(store *mockdata.Store) Transport {
	return &mockTransport{store: store, delay: mockdata.Latency}
}

func (t *mockTransport) Name() string { return "mock" }

func (t *mockTransport) wait(ctx context.Context) error {
	if t.delay <= 0 {
		return nil
	}
	select {
	case <-time.After(t.delay):
		return nil
	case <-ctx.Done():
		return &NetworkError{Transport: t.Name(), Err: ctx.Err()}
	}
}

func (t *mockTransport) classify(err error, missing error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, missing) {
		return ErrNotFound
	}
	return &ValidationError{Err: err}
}

func (t *mockTransport) GetPianos(ctx context.Context, status content.Status) ([]piano.Piano, error) {
	if err := t.wait(ctx); err != nil {
		return nil, err
	}
	out, err := t.store.Pianos.List(ctx, status)
	return out, t.classify(err, piano.ErrPianoNotFound)
}

func (t *mockTransport) GetPiano(ctx context.Context, id string) (*piano.Piano, error) {
	if err := t.wait(ctx); err != nil {
		return nil, err
	}
	p, err := t.store.Pianos.GetByID(ctx, id)
	return p, t.classify(err, piano.ErrPianoNotFound)
}

func (t *mockTransport) CreatePiano(ctx context.Context, p *piano.Piano) error {
	if err := t.wait(ctx); err != nil {
		return err
	}
	return t.classify(t.store.Pianos.Create(ctx, p), piano.ErrPianoNotFound)
}

func (t *mockTransport) GetEvents(ctx context.Context, status content.Status) ([]event.Event, error) {
	if err := t.wait(ctx); err != nil {
		return nil, err
	}
	out, err := t.store.Events.List(ctx, status)
	return out, t.classify(err, event.ErrEventNotFound)
}

func (t *mockTransport) GetEvent(ctx context.Context, id string) (*event.Event, error) {
	if err := t.wait(ctx); err != nil {
		return nil, err
	}
	ev, err := t.store.Events.GetByID(ctx, id)
	return ev, t.classify(err, event.ErrEventNotFound)
}

func (t *mockTransport) CreateEvent(ctx context.Context, ev *event.Event) error {
	if err := t.wait(ctx); err != nil {
		return err
	}
	return t.classify(t.store.Events.Create(ctx, ev), event.ErrEventNotFound)
}

func (t *mockTransport) GetBlogPosts(ctx context.Context, publishedOnly bool) ([]blog.Post, error) {
	if err := t.wait(ctx); err != nil {
		return nil, err
	}
	out, err := t.store.Posts.List(ctx, publishedOnly)
	return out, t.classify(err, blog.ErrPostNotFound)
}

func (t *mockTransport) GetBlogPost(ctx context.Context, id string) (*blog.Post, error) {
	if err := t.wait(ctx); err != nil {
		return nil, err
	}
	p, err := t.store.Posts.GetByID(ctx, id)
	return p, t.classify(err, blog.ErrPostNotFound)
}

func (t *mockTransport) CreateBlogPost(ctx context.Context, p *blog.Post) error {
	if err := t.wait(ctx); err != nil {
		return err
	}
	return t.classify(t.store.Posts.Create(ctx, p), blog.ErrPostNotFound)
}
