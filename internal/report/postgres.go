package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/jessebautista/wpnew-sub000/internal/content"
)

// PostgresRepository stores reports in PostgreSQL. The duplicate-report
// guard is backed by a unique index on (reporter_id, content_type,
// content_id).
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository wraps an open database handle.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const reportColumns = `id, content_type, content_id, reporter_id, reason,
		COALESCE(description, ''), status, reviewed_by, reviewed_at,
		created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*Report, error) {
	var rep Report
	var reviewedBy sql.NullString
	var reviewedAt sql.NullTime
	err := row.Scan(
		&rep.ID, &rep.ContentType, &rep.ContentID, &rep.ReporterID, &rep.Reason,
		&rep.Description, &rep.Status, &reviewedBy, &reviewedAt,
		&rep.CreatedAt, &rep.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if reviewedBy.Valid {
		rep.ReviewedBy = &reviewedBy.String
	}
	if reviewedAt.Valid {
		rep.ReviewedAt = &reviewedAt.Time
	}
	return &rep, nil
}

func (r *PostgresRepository) Create(ctx context.Context, rep *Report) error {
	if err := rep.Validate(); err != nil {
		return err
	}
	if rep.ID == "" {
		rep.ID = uuid.NewString()
	}
	if rep.Status == "" {
		rep.Status = StatusPending
	}
	now := time.Now().UTC()
	rep.CreatedAt = now
	rep.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reports (
			id, content_type, content_id, reporter_id, reason, description,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9)`,
		rep.ID, rep.ContentType, rep.ContentID, rep.ReporterID, rep.Reason,
		rep.Description, rep.Status, rep.CreatedAt, rep.UpdatedAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicateReport
	}
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Report, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = $1`, id)
	rep, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	return rep, nil
}

func (r *PostgresRepository) List(ctx context.Context, status Status) ([]Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		out = append(out, *rep)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) HasUserReported(ctx context.Context, reporterID string, ctype content.Type, contentID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reports
			WHERE reporter_id = $1 AND content_type = $2 AND content_id = $3
		)`, reporterID, ctype, contentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check report: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) SetStatus(ctx context.Context, id string, status Status, reviewerID string) error {
	if _, err := ParseStatus(string(status)); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE reports SET
			status = $2, reviewed_by = $3, reviewed_at = NOW(), updated_at = NOW()
		WHERE id = $1`,
		id, status, reviewerID,
	)
	if err != nil {
		return fmt.Errorf("review report: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReportNotFound
	}
	return nil
}

func (r *PostgresRepository) CountByStatus(ctx context.Context, status Status) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reports WHERE status = $1`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count reports: %w", err)
	}
	return n, nil
}
