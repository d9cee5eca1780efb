// Package admin aggregates the numbers and activity feed behind the admin
// dashboard.
package admin

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jessebautista/wpnew-sub000/internal/blog"
	"github.com/jessebautista/wpnew-sub000/internal/comment"
	"github.com/jessebautista/wpnew-sub000/internal/content"
	"github.com/jessebautista/wpnew-sub000/internal/event"
	"github.com/jessebautista/wpnew-sub000/internal/piano"
	"github.com/jessebautista/wpnew-sub000/internal/report"
	"github.com/jessebautista/wpnew-sub000/internal/user"
)

// Stats is the dashboard headline block.
type Stats struct {
	UsersByRole     map[user.Role]int      `json:"users_by_role"`
	PianosByStatus  map[content.Status]int `json:"pianos_by_status"`
	EventsByStatus  map[content.Status]int `json:"events_by_status"`
	PostsByStatus   map[content.Status]int `json:"posts_by_status"`
	PendingReports  int                    `json:"pending_reports"`
	ResolvedReports int                    `json:"resolved_reports"`
	SignupsToday    int                    `json:"signups_today"`
	PianosToday     int                    `json:"pianos_today"`
	EventsToday     int                    `json:"events_today"`
	PendingComments int                    `json:"pending_comments"`
}

// Service runs the dashboard queries.
type Service struct {
	users    user.Repository
	pianos   piano.Repository
	events   event.Repository
	posts    blog.Repository
	comments comment.Repository
	reports  report.Repository
}

// NewService wires the dashboard over the given repositories.
func NewService(users user.Repository, pianos piano.Repository, events event.Repository,
	posts blog.Repository, comments comment.Repository, reports report.Repository) *Service {
	return &Service{
		users:    users,
		pianos:   pianos,
		events:   events,
		posts:    posts,
		comments: comments,
		reports:  reports,
	}
}

// Stats gathers every count in parallel; one failing query fails the whole
// dashboard load rather than rendering partial numbers.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		UsersByRole:    make(map[user.Role]int),
		PianosByStatus: make(map[content.Status]int),
		EventsByStatus: make(map[content.Status]int),
		PostsByStatus:  make(map[content.Status]int),
	}
	dayStart := time.Now().UTC().Truncate(24 * time.Hour)

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		byRole, err := s.users.CountByRole(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		stats.UsersByRole = byRole
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		byStatus, err := s.pianos.CountByStatus(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		stats.PianosByStatus = byStatus
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		byStatus, err := s.events.CountByStatus(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		stats.EventsByStatus = byStatus
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		byStatus, err := s.posts.CountByStatus(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		stats.PostsByStatus = byStatus
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		n, err := s.reports.CountByStatus(ctx, report.StatusPending)
		if err != nil {
			return err
		}
		stats.PendingReports = n
		return nil
	})
	g.Go(func() error {
		n, err := s.reports.CountByStatus(ctx, report.StatusResolved)
		if err != nil {
			return err
		}
		stats.ResolvedReports = n
		return nil
	})
	g.Go(func() error {
		n, err := s.comments.CountByStatus(ctx, content.StatusPending)
		if err != nil {
			return err
		}
		stats.PendingComments = n
		return nil
	})
	g.Go(func() error {
		n, err := s.users.CountSince(ctx, dayStart)
		if err != nil {
			return err
		}
		stats.SignupsToday = n
		return nil
	})
	g.Go(func() error {
		n, err := s.pianos.CountSince(ctx, dayStart)
		if err != nil {
			return err
		}
		stats.PianosToday = n
		return nil
	})
	g.Go(func() error {
		n, err := s.events.CountSince(ctx, dayStart)
		if err != nil {
			return err
		}
		stats.EventsToday = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
