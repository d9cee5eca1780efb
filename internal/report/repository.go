package report

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jessebautista/wpnew-sub000/internal/content"
)

// Lookup and idempotency errors.
var (
	ErrReportNotFound  = errors.New("report not found")
	ErrDuplicateReport = errors.New("content already reported by this user")
)

// Repository abstracts report persistence.
type Repository interface {
	// Create rejects a second report from the same reporter for the same
	// content item with ErrDuplicateReport.
	Create(ctx context.Context, rep *Report) error
	GetByID(ctx context.Context, id string) (*Report, error)
	List(ctx context.Context, status Status) ([]Report, error)
	HasUserReported(ctx context.Context, reporterID string, ctype content.Type, contentID string) (bool, error)
	SetStatus(ctx context.Context, id string, status Status, reviewerID string) error
	CountByStatus(ctx context.Context, status Status) (int, error)
}

// InMemoryRepository is a mutex-guarded map store used in tests and in
// mock-data mode.
type InMemoryRepository struct {
	mu      sync.RWMutex
	reports map[string]*Report
}

// NewInMemoryRepository creates an empty in-memory report store.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{reports: make(map[string]*Report)}
}

func cloneReport(rep *Report) *Report {
	cp := *rep
	if rep.ReviewedBy != nil {
		v := *rep.ReviewedBy
		cp.ReviewedBy = &v
	}
	if rep.ReviewedAt != nil {
		t := *rep.ReviewedAt
		cp.ReviewedAt = &t
	}
	return &cp
}

func (r *InMemoryRepository) Create(_ context.Context, rep *Report) error {
	if err := rep.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reports {
		if existing.ReporterID == rep.ReporterID &&
			existing.ContentType == rep.ContentType &&
			existing.ContentID == rep.ContentID {
			return ErrDuplicateReport
		}
	}
	if rep.ID == "" {
		rep.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	rep.CreatedAt = now
	rep.UpdatedAt = now
	if rep.Status == "" {
		rep.Status = StatusPending
	}
	r.reports[rep.ID] = cloneReport(rep)
	return nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (*Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rep, ok := r.reports[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	return cloneReport(rep), nil
}

// List returns reports with the given status, or all reports when status is
// empty, oldest first so moderators work the queue in arrival order.
func (r *InMemoryRepository) List(_ context.Context, status Status) ([]Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Report, 0, len(r.reports))
	for _, rep := range r.reports {
		if status != "" && rep.Status != status {
			continue
		}
		out = append(out, *cloneReport(rep))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) HasUserReported(_ context.Context, reporterID string, ctype content.Type, contentID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rep := range r.reports {
		if rep.ReporterID == reporterID && rep.ContentType == ctype && rep.ContentID == contentID {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryRepository) SetStatus(_ context.Context, id string, status Status, reviewerID string) error {
	if _, err := ParseStatus(string(status)); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rep, ok := r.reports[id]
	if !ok {
		return ErrReportNotFound
	}
	now := time.Now().UTC()
	rep.Status = status
	rep.ReviewedBy = &reviewerID
	rep.ReviewedAt = &now
	rep.UpdatedAt = now
	return nil
}

func (r *InMemoryRepository) CountByStatus(_ context.Context, status Status) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, rep := range r.reports {
		if rep.Status == status {
			n++
		}
	}
	return n, nil
}
