// Package dataservice is the single entry point the HTTP layer uses to
// read and write content. It walks an ordered list of transports —
// typically the database first, then the REST API — and falls back to the
// built-in mock dataset when every live transport is unreachable, so read
// paths degrade instead of failing.
package dataservice

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/jessebautista/wpnew-sub000/internal/blog"
	"github.com/jessebautista/wpnew-sub000/internal/content"
	"github.com/jessebautista/wpnew-sub000/internal/event"
	"github.com/jessebautista/wpnew-sub000/internal/listing"
	"github.com/jessebautista/wpnew-sub000/internal/piano"
)

// liveTimeout bounds each call to a live transport so one slow backend
// cannot stall the whole chain.
const liveTimeout = 10 * time.Second

// Service fronts the ordered transport chain.
type Service struct {
	transports []Transport
	mock       Transport
	logger     *slog.Logger
}

// New builds a service. transports are tried in order; mock is the terminal
// fallback for reads and the write target when no live transport exists.
func New(logger *slog.Logger, mock Transport, transports ...Transport) *Service {
	return &Service{
		transports: transports,
		mock:       mock,
		logger:     logger,
	}
}

// UsingMock reports whether the service has no live transport at all.
func (s *Service) UsingMock() bool {
	return len(s.transports) == 0
}

// read walks the chain. Authorization and validation errors, and definite
// lookup misses, stop it immediately; network failures advance it; when
// every live transport has failed the mock dataset answers.
func read[T any](ctx context.Context, s *Service, op string, fn func(context.Context, Transport) (T, error)) (T, error) {
	for _, t := range s.transports {
		callCtx, cancel := context.WithTimeout(ctx, liveTimeout)
		out, err := fn(callCtx, t)
		cancel()
		if err == nil {
			return out, nil
		}
		if fatal(err) {
			return out, err
		}
		s.logger.Warn("transport failed, falling back",
			"op", op, "transport", t.Name(), "error", err)
	}
	if len(s.transports) > 0 {
		s.logger.Warn("all live transports failed, serving mock data", "op", op)
	}
	return fn(ctx, s.mock)
}

// write uses the first live transport and propagates its errors; masking a
// failed write with mock data would lose the caller's submission silently.
// With no live transport configured, writes land in the mock store and
// survive for the life of the process.
func (s *Service) write(ctx context.Context, op string, fn func(context.Context, Transport) error) error {
	if len(s.transports) == 0 {
		return fn(ctx, s.mock)
	}
	t := s.transports[0]
	callCtx, cancel := context.WithTimeout(ctx, liveTimeout)
	defer cancel()
	if err := fn(callCtx, t); err != nil {
		s.logger.Error("write failed", "op", op, "transport", t.Name(), "error", err)
		return err
	}
	return nil
}

func (s *Service) GetPianos(ctx context.Context, status content.Status) ([]piano.Piano, error) {
	return read(ctx, s, "get_pianos", func(ctx context.Context, t Transport) ([]piano.Piano, error) {
		return t.GetPianos(ctx, status)
	})
}

func (s *Service) GetPiano(ctx context.Context, id string) (*piano.Piano, error) {
	return read(ctx, s, "get_piano", func(ctx context.Context, t Transport) (*piano.Piano, error) {
		return t.GetPiano(ctx, id)
	})
}

func (s *Service) CreatePiano(ctx context.Context, p *piano.Piano) error {
	return s.write(ctx, "create_piano", func(ctx context.Context, t Transport) error {
		return t.CreatePiano(ctx, p)
	})
}

func (s *Service) GetEvents(ctx context.Context, status content.Status) ([]event.Event, error) {
	return read(ctx, s, "get_events", func(ctx context.Context, t Transport) ([]event.Event, error) {
		return t.GetEvents(ctx, status)
	})
}

func (s *Service) GetEvent(ctx context.Context, id string) (*event.Event, error) {
	return read(ctx, s, "get_event", func(ctx context.Context, t Transport) (*event.Event, error) {
		return t.GetEvent(ctx, id)
	})
}

func (s *Service) CreateEvent(ctx context.Context, ev *event.Event) error {
	return s.write(ctx, "create_event", func(ctx context.Context, t Transport) error {
		return t.CreateEvent(ctx, ev)
	})
}

func (s *Service) GetBlogPosts(ctx context.Context, publishedOnly bool) ([]blog.Post, error) {
	return read(ctx, s, "get_blog_posts", func(ctx context.Context, t Transport) ([]blog.Post, error) {
		return t.GetBlogPosts(ctx, publishedOnly)
	})
}

func (s *Service) GetBlogPost(ctx context.Context, id string) (*blog.Post, error) {
	return read(ctx, s, "get_blog_post", func(ctx context.Context, t Transport) (*blog.Post, error) {
		return t.GetBlogPost(ctx, id)
	})
}

func (s *Service) CreateBlogPost(ctx context.Context, p *blog.Post) error {
	return s.write(ctx, "create_blog_post", func(ctx context.Context, t Transport) error {
		return t.CreateBlogPost(ctx, p)
	})
}

// Stats summarizes the dataset for the public landing page.
type Stats struct {
	TotalPianos    int `json:"total_pianos"`
	VerifiedPianos int `json:"verified_pianos"`
	TotalEvents    int `json:"total_events"`
	UpcomingEvents int `json:"upcoming_events"`
	TotalPosts     int `json:"total_posts"`
	CountriesCount int `json:"countries_count"`
}

// GetStats derives headline numbers from the approved dataset through the
// same degrading read path as everything else.
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	pianos, err := s.GetPianos(ctx, content.StatusApproved)
	if err != nil {
		return nil, err
	}
	events, err := s.GetEvents(ctx, content.StatusApproved)
	if err != nil {
		return nil, err
	}
	posts, err := s.GetBlogPosts(ctx, true)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalPianos: len(pianos),
		TotalEvents: len(events),
		TotalPosts:  len(posts),
	}
	locations := map[string]struct{}{}
	for _, p := range pianos {
		if p.Verified {
			stats.VerifiedPianos++
		}
		if p.LocationName != "" {
			locations[lastSegment(p.LocationName)] = struct{}{}
		}
	}
	stats.CountriesCount = len(locations)
	now := time.Now()
	for _, ev := range events {
		if listing.MatchTimeframe(listing.TimeframeUpcoming, ev.Date, now) {
			stats.UpcomingEvents++
		}
	}
	return stats, nil
}

func lastSegment(location string) string {
	seg := location
	for i := len(location) - 1; i >= 0; i-- {
		if location[i] == ',' {
			seg = location[i+1:]
			break
		}
	}
	for len(seg) > 0 && seg[0] == ' ' {
		seg = seg[1:]
	}
	return seg
}

// SearchResult is one hit of the cross-content search.
type SearchResult struct {
	Type    content.Type `json:"type"`
	ID      string       `json:"id"`
	Title   string       `json:"title"`
	Snippet string       `json:"snippet,omitempty"`
}

// SearchContent queries pianos, events, and blog posts at once and returns
// a merged result list ordered by title.
func (s *Service) SearchContent(ctx context.Context, query string) ([]SearchResult, error) {
	pianos, err := s.GetPianos(ctx, content.StatusApproved)
	if err != nil {
		return nil, err
	}
	events, err := s.GetEvents(ctx, content.StatusApproved)
	if err != nil {
		return nil, err
	}
	posts, err := s.GetBlogPosts(ctx, true)
	if err != nil {
		return nil, err
	}

	var results []SearchResult
	for _, p := range listing.Search(toPtrs(pianos), query) {
		results = append(results, SearchResult{
			Type: content.TypePiano, ID: p.ID, Title: p.Title, Snippet: p.LocationName,
		})
	}
	for _, ev := range listing.Search(toPtrs(events), query) {
		results = append(results, SearchResult{
			Type: content.TypeEvent, ID: ev.ID, Title: ev.Title, Snippet: ev.LocationName,
		})
	}
	for _, p := range listing.Search(toPtrs(posts), query) {
		results = append(results, SearchResult{
			Type: content.TypeBlogPost, ID: p.ID, Title: p.Title, Snippet: p.Excerpt,
		})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Title < results[j].Title })
	return results, nil
}

func toPtrs[T any](items []T) []*T {
	out := make([]*T, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}
