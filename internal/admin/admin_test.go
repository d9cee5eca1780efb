package admin

import (
	"context"
	"testing"
	"time"

	"github.com/jessebautista/wpnew-sub000/internal/blog"
	"github.com/jessebautista/wpnew-sub000/internal/comment"
	"github.com/jessebautista/wpnew-sub000/internal/content"
	"github.com/jessebautista/wpnew-sub000/internal/event"
	"github.com/jessebautista/wpnew-sub000/internal/mockdata"
	"github.com/jessebautista/wpnew-sub000/internal/piano"
	"github.com/jessebautista/wpnew-sub000/internal/report"
	"github.com/jessebautista/wpnew-sub000/internal/user"
)

func seededService(t *testing.T) (*Service, *mockdata.Store) {
	t.Helper()
	store, err := mockdata.NewStore()
	if err != nil {
		t.Fatal(err)
	}
	svc := NewService(store.Users, store.Pianos, store.Events, store.Posts, store.Comments, store.Reports)
	return svc, store
}

func TestStatsCountsSeededContent(t *testing.T) {
	svc, store := seededService(t)
	ctx := context.Background()

	rep := &report.Report{
		ContentType: content.TypePiano,
		ContentID:   "mock-piano-3",
		ReporterID:  "mock-user-3",
		Reason:      report.ReasonIncorrectInfo,
	}
	if err := store.Reports.Create(ctx, rep); err != nil {
		t.Fatal(err)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if got := stats.UsersByRole[user.RoleAdmin]; got != 1 {
		t.Errorf("admin count = %d, want 1", got)
	}
	if got := stats.PianosByStatus[content.StatusApproved]; got != 2 {
		t.Errorf("approved pianos = %d, want 2", got)
	}
	if got := stats.PianosByStatus[content.StatusPending]; got != 1 {
		t.Errorf("pending pianos = %d, want 1", got)
	}
	if stats.PendingReports != 1 {
		t.Errorf("pending reports = %d, want 1", stats.PendingReports)
	}
	if stats.ResolvedReports != 0 {
		t.Errorf("resolved reports = %d, want 0", stats.ResolvedReports)
	}
}

func TestRecentActivityMergesAndSortsSources(t *testing.T) {
	users := user.NewInMemoryRepository()
	pianos := piano.NewInMemoryRepository()
	events := event.NewInMemoryRepository()
	posts := blog.NewInMemoryRepository()
	comments := comment.NewInMemoryRepository()
	reports := report.NewInMemoryRepository()
	svc := NewService(users, pianos, events, posts, comments, reports)
	ctx := context.Background()

	if err := users.Create(ctx, &user.User{ID: "u1", Email: "a@b.co", FullName: "First Player", Role: user.RoleUser}); err != nil {
		t.Fatal(err)
	}
	if err := pianos.Create(ctx, &piano.Piano{Title: "New Piano"}); err != nil {
		t.Fatal(err)
	}
	if err := events.Create(ctx, &event.Event{
		Title:    "New Event",
		Date:     time.Now().Add(time.Hour),
		Category: event.CategoryMeetup,
	}); err != nil {
		t.Fatal(err)
	}

	feed, err := svc.RecentActivity(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(feed) != 3 {
		t.Fatalf("feed has %d rows, want 3", len(feed))
	}
	for i := 1; i < len(feed); i++ {
		if feed[i].OccurredAt.After(feed[i-1].OccurredAt) {
			t.Errorf("feed out of order at %d", i)
		}
	}

	kinds := map[string]bool{}
	for _, a := range feed {
		kinds[a.Kind] = true
	}
	for _, want := range []string{"signup", "piano", "event"} {
		if !kinds[want] {
			t.Errorf("feed missing %q row", want)
		}
	}
}

func TestRecentActivityStatusClassification(t *testing.T) {
	svc, _ := seededService(t)
	feed, err := svc.RecentActivity(context.Background(), 50)
	if err != nil {
		t.Fatal(err)
	}

	var sawWarning bool
	for _, a := range feed {
		if a.Kind == "piano" && a.Status == ActivityWarning {
			sawWarning = true
		}
	}
	if !sawWarning {
		t.Error("pending piano not classified as warning")
	}
}

func TestRecentActivityHonorsLimit(t *testing.T) {
	svc, _ := seededService(t)
	feed, err := svc.RecentActivity(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(feed) != 2 {
		t.Errorf("feed has %d rows, want 2", len(feed))
	}
}
