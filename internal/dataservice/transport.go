package dataservice

import (
	"context"

	"github.com/jessebautista/wpnew-sub000/internal/blog"
	"github.com/jessebautista/wpnew-sub000/internal/content"
	"github.com/jessebautista/wpnew-sub000/internal/event"
	"github.com/jessebautista/wpnew-sub000/internal/piano"
)

// Transport is one way of reaching the live dataset. The service holds an
// ordered list of transports and walks it on every call.
type Transport interface {
	Name() string

	GetPianos(ctx context.Context, status content.Status) ([]piano.Piano, error)
	GetPiano(ctx context.Context, id string) (*piano.Piano, error)
	CreatePiano(ctx context.Context, p *piano.Piano) error

	GetEvents(ctx context.Context, status content.Status) ([]event.Event, error)
	GetEvent(ctx context.Context, id string) (*event.Event, error)
	CreateEvent(ctx context.Context, ev *event.Event) error

	GetBlogPosts(ctx context.Context, publishedOnly bool) ([]blog.Post, error)
	GetBlogPost(ctx context.Context, id string) (*blog.Post, error)
	CreateBlogPost(ctx context.Context, p *blog.Post) error
}
