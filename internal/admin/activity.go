package admin

import (
	"context"
	"sort"
	"time"

	"github.com/jessebautista/wpnew-sub000/internal/content"
	"github.com/jessebautista/wpnew-sub000/internal/report"
)

// ActivityStatus drives the dashboard badge color.
type ActivityStatus string

const (
	ActivitySuccess ActivityStatus = "success"
	ActivityWarning ActivityStatus = "warning"
	ActivityError   ActivityStatus = "error"
)

// Activity is one row of the recent-activity feed.
type Activity struct {
	Kind       string         `json:"kind"`
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Status     ActivityStatus `json:"status"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// statusOf maps a moderation status to a badge.
func statusOf(s content.Status) ActivityStatus {
	switch s {
	case content.StatusApproved:
		return ActivitySuccess
	case content.StatusRejected:
		return ActivityError
	default:
		return ActivityWarning
	}
}

func reportStatusOf(s report.Status) ActivityStatus {
	switch s {
	case report.StatusResolved, report.StatusReviewed:
		return ActivitySuccess
	case report.StatusDismissed:
		return ActivityError
	default:
		return ActivityWarning
	}
}

// RecentActivity merges the newest rows from every source into one feed,
// newest first, capped at limit.
func (s *Service) RecentActivity(ctx context.Context, limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = 20
	}
	var feed []Activity

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		feed = append(feed, Activity{
			Kind:       "signup",
			ID:         u.ID,
			Title:      u.FullName + " joined",
			Status:     ActivitySuccess,
			OccurredAt: u.CreatedAt,
		})
	}

	pianos, err := s.pianos.List(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, p := range pianos {
		feed = append(feed, Activity{
			Kind:       "piano",
			ID:         p.ID,
			Title:      "Piano submitted: " + p.Title,
			Status:     statusOf(p.ModerationStatus),
			OccurredAt: p.CreatedAt,
		})
	}

	events, err := s.events.List(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, ev := range events {
		feed = append(feed, Activity{
			Kind:       "event",
			ID:         ev.ID,
			Title:      "Event submitted: " + ev.Title,
			Status:     statusOf(ev.ModerationStatus),
			OccurredAt: ev.CreatedAt,
		})
	}

	posts, err := s.posts.List(ctx, false)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		feed = append(feed, Activity{
			Kind:       "blog_post",
			ID:         p.ID,
			Title:      "Post published: " + p.Title,
			Status:     statusOf(p.ModerationStatus),
			OccurredAt: p.CreatedAt,
		})
	}

	reports, err := s.reports.List(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, rep := range reports {
		feed = append(feed, Activity{
			Kind:       "report",
			ID:         rep.ID,
			Title:      "Content reported: " + string(rep.Reason),
			Status:     reportStatusOf(rep.Status),
			OccurredAt: rep.CreatedAt,
		})
	}

	sort.Slice(feed, func(i, j int) bool { return feed[i].OccurredAt.After(feed[j].OccurredAt) })
	if len(feed) > limit {
		feed = feed[:limit]
	}
	return feed, nil
}
