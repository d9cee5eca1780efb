package comment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jessebautista/wpnew-sub000/internal/content"
)

// PostgresRepository stores comments in PostgreSQL.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository wraps an open database handle.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const commentColumns = `id, content_type, content_id,
		COALESCE(author_id, ''), author_name, text,
		moderation_status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComment(row rowScanner) (*Comment, error) {
	var c Comment
	err := row.Scan(
		&c.ID, &c.ContentType, &c.ContentID,
		&c.AuthorID, &c.AuthorName, &c.Text,
		&c.ModerationStatus, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, c *Comment) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.ModerationStatus == "" {
		c.ModerationStatus = content.StatusApproved
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO comments (
			id, content_type, content_id, author_id, author_name, text,
			moderation_status, created_at, updated_at
		) VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9)`,
		c.ID, c.ContentType, c.ContentID, c.AuthorID, c.AuthorName, c.Text,
		c.ModerationStatus, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Comment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id)
	c, err := scanComment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) ListForContent(ctx context.Context, ctype content.Type, contentID string) ([]Comment, error) {
	return r.queryComments(ctx, `
		SELECT `+commentColumns+` FROM comments
		WHERE content_type = $1 AND content_id = $2 AND moderation_status = 'approved'
		ORDER BY created_at ASC`, ctype, contentID)
}

func (r *PostgresRepository) ListByStatus(ctx context.Context, status content.Status) ([]Comment, error) {
	return r.queryComments(ctx, `
		SELECT `+commentColumns+` FROM comments
		WHERE moderation_status = $1
		ORDER BY created_at ASC`, status)
}

func (r *PostgresRepository) queryComments(ctx context.Context, query string, args ...any) ([]Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var out []Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) SetModerationStatus(ctx context.Context, id string, status content.Status) error {
	if _, err := content.ParseStatus(string(status)); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE comments SET moderation_status = $2, updated_at = NOW()
		WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("moderate comment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *PostgresRepository) CountByStatus(ctx context.Context, status content.Status) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comments WHERE moderation_status = $1`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return n, nil
}
