package report

import (
	"context"
	"errors"
	"testing"

	"github.com/jessebautista/wpnew-sub000/internal/content"
)

func newReport(reporter, contentID string) *Report {
	return &Report{
		ContentType: content.TypePiano,
		ContentID:   contentID,
		ReporterID:  reporter,
		Reason:      ReasonSpam,
	}
}

func TestCreateRejectsDuplicate(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	if err := repo.Create(ctx, newReport("user-1", "piano-1")); err != nil {
		t.Fatalf("first report: %v", err)
	}
	err := repo.Create(ctx, newReport("user-1", "piano-1"))
	if !errors.Is(err, ErrDuplicateReport) {
		t.Fatalf("second report: got %v, want ErrDuplicateReport", err)
	}

	// A different reporter, or a different content item, is allowed.
	if err := repo.Create(ctx, newReport("user-2", "piano-1")); err != nil {
		t.Errorf("different reporter: %v", err)
	}
	if err := repo.Create(ctx, newReport("user-1", "piano-2")); err != nil {
		t.Errorf("different content: %v", err)
	}
}

func TestHasUserReported(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	if err := repo.Create(ctx, newReport("user-1", "piano-1")); err != nil {
		t.Fatal(err)
	}

	got, err := repo.HasUserReported(ctx, "user-1", content.TypePiano, "piano-1")
	if err != nil || !got {
		t.Errorf("HasUserReported(existing) = %v, %v; want true", got, err)
	}
	got, err = repo.HasUserReported(ctx, "user-1", content.TypeEvent, "piano-1")
	if err != nil || got {
		t.Errorf("HasUserReported(other type) = %v, %v; want false", got, err)
	}
}

func TestSetStatusStampsReviewer(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	rep := newReport("user-1", "piano-1")
	if err := repo.Create(ctx, rep); err != nil {
		t.Fatal(err)
	}
	if err := repo.SetStatus(ctx, rep.ID, StatusResolved, "mod-1"); err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetByID(ctx, rep.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != StatusResolved {
		t.Errorf("status = %q, want resolved", got.Status)
	}
	if got.ReviewedBy == nil || *got.ReviewedBy != "mod-1" {
		t.Errorf("reviewed_by = %v, want mod-1", got.ReviewedBy)
	}
	if got.ReviewedAt == nil {
		t.Error("reviewed_at not set")
	}
}

func TestCreateValidatesReason(t *testing.T) {
	repo := NewInMemoryRepository()
	rep := newReport("user-1", "piano-1")
	rep.Reason = "grumpy"
	if err := repo.Create(context.Background(), rep); !errors.Is(err, ErrInvalidReason) {
		t.Errorf("got %v, want ErrInvalidReason", err)
	}
}
