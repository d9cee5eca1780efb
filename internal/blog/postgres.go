package blog

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

// PostgresRepository stores blog posts in PostgreSQL.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository wraps an open database handle.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const postColumns = `id, title, content, COALESCE(excerpt, ''),
		COALESCE(category, ''), tags, published, allow_comments,
		COALESCE(author_id, ''), COALESCE(author_name, ''),
		moderation_status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*Post, error) {
	var p Post
	var tags pq.StringArray
	err := row.Scan(
		&p.ID, &p.Title, &p.Content, &p.Excerpt,
		&p.Category, &tags, &p.Published, &p.AllowComments,
		&p.AuthorID, &p.AuthorName,
		&p.ModerationStatus, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Tags = []string(tags)
	return &p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *Post) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.ModerationStatus == "" {
		p.ModerationStatus = content.StatusPending
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO blog_posts (
			id, title, content, excerpt, category, tags, published,
			allow_comments, author_id, author_name, moderation_status,
			created_at, updated_at
		) VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7,
			$8, NULLIF($9, ''), NULLIF($10, ''), $11, $12, $13)`,
		p.ID, p.Title, p.Content, p.Excerpt, p.Category, pq.Array(p.Tags),
		p.Published, p.AllowComments, p.AuthorID, p.AuthorName,
		p.ModerationStatus, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert blog post: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, p *Post) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE blog_posts SET
			title = $2, content = $3, excerpt = NULLIF($4, ''),
			category = NULLIF($5, ''), tags = $6, published = $7,
			allow_comments = $8, updated_at = $9
		WHERE id = $1`,
		p.ID, p.Title, p.Content, p.Excerpt, p.Category, pq.Array(p.Tags),
		p.Published, p.AllowComments, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update blog post: %w", err)
	}
	return requireRow(res, ErrPostNotFound)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete blog post: %w", err)
	}
	return requireRow(res, ErrPostNotFound)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Post, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM blog_posts WHERE id = $1`, id)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get blog post: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context, publishedOnly bool) ([]Post, error) {
	query := `SELECT ` + postColumns + ` FROM blog_posts`
	if publishedOnly {
		query += ` WHERE published = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}
	defer rows.Close()

	var out []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blog post: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) SetModerationStatus(ctx context.Context, id string, status content.Status) error {
	if _, err := content.ParseStatus(string(status)); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE blog_posts SET moderation_status = $2, updated_at = NOW()
		WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("moderate blog post: %w", err)
	}
	return requireRow(res, ErrPostNotFound)
}

func (r *PostgresRepository) CountByStatus(ctx context.Context) (map[content.Status]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT moderation_status, COUNT(*) FROM blog_posts GROUP BY moderation_status`)
	if err != nil {
		return nil, fmt.Errorf("count blog posts: %w", err)
	}
	defer rows.Close()

	counts := make(map[content.Status]int)
	for rows.Next() {
		var status content.Status
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan post count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *PostgresRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blog_posts WHERE created_at >= $1`, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count blog posts: %w", err)
	}
	return n, nil
}

func requireRow(res sql.Result, missing error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return missing
	}
	return nil
}
