package piano

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/jessebautista/wpnew-sub000/internal/content"
	"github.com/jessebautista/wpnew-sub000/internal/geo"
)

// PostgresRepository implements Repository backed by the pianos and
// piano_images tables.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new Postgres-backed piano repository.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const pianoColumns = `id, title, COALESCE(statement, ''), COALESCE(location_name, ''),
	latitude, longitude,
	COALESCE(artist_name, ''), COALESCE(artist_bio, ''), COALESCE(artist_website, ''),
	COALESCE(category, ''), COALESCE(condition, ''), COALESCE(accessibility, ''), COALESCE(hours, ''),
	verified, moderation_status, verified_by,
	COALESCE(created_by, ''), piano_source, created_at, updated_at`

// Create stores a new piano.
func (r *PostgresRepository) Create(ctx context.Context, p *Piano) error {
	var lat, lng sql.NullFloat64
	if p.Coordinates != nil {
		lat = sql.NullFloat64{Float64: p.Coordinates.Lat, Valid: true}
		lng = sql.NullFloat64{Float64: p.Coordinates.Lng, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pianos (id, title, statement, location_name, latitude, longitude,
			artist_name, artist_bio, artist_website, category, condition, accessibility, hours,
			verified, moderation_status, verified_by, created_by, piano_source, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6,
			NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''), NULLIF($12, ''), NULLIF($13, ''),
			$14, $15, $16, NULLIF($17, ''), $18, $19, $20)`,
		p.ID, p.Title, p.Statement, p.LocationName, lat, lng,
		p.ArtistName, p.ArtistBio, p.ArtistWebsite, p.Category, p.Condition, p.Accessibility, p.Hours,
		p.Verified, p.ModerationStatus, p.VerifiedBy, p.CreatedBy, p.Source, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert piano: %w", err)
	}
	return nil
}

// Update stores mutated fields of an existing piano.
func (r *PostgresRepository) Update(ctx context.Context, p *Piano) error {
	var lat, lng sql.NullFloat64
	if p.Coordinates != nil {
		lat = sql.NullFloat64{Float64: p.Coordinates.Lat, Valid: true}
		lng = sql.NullFloat64{Float64: p.Coordinates.Lng, Valid: true}
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE pianos SET title = $2, statement = NULLIF($3, ''), location_name = NULLIF($4, ''),
			latitude = $5, longitude = $6, artist_name = NULLIF($7, ''), artist_bio = NULLIF($8, ''),
			artist_website = NULLIF($9, ''), category = NULLIF($10, ''), condition = NULLIF($11, ''),
			accessibility = NULLIF($12, ''), hours = NULLIF($13, ''), updated_at = $14
		WHERE id = $1`,
		p.ID, p.Title, p.Statement, p.LocationName, lat, lng,
		p.ArtistName, p.ArtistBio, p.ArtistWebsite, p.Category, p.Condition,
		p.Accessibility, p.Hours, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update piano: %w", err)
	}
	return requireRow(res, ErrPianoNotFound)
}

// Delete removes a piano row. No cascade beyond its own images.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pianos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete piano: %w", err)
	}
	return requireRow(res, ErrPianoNotFound)
}

// GetByID retrieves a piano by id, with its ordered image collection.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Piano, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+pianoColumns+` FROM pianos WHERE id = $1`, id)
	p, err := scanPiano(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPianoNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadImages(ctx, map[string]*Piano{p.ID: p}); err != nil {
		return nil, err
	}
	return p, nil
}

// List retrieves pianos filtered by moderation status, newest first.
func (r *PostgresRepository) List(ctx context.Context, status content.Status) ([]Piano, error) {
	query := `SELECT ` + pianoColumns + ` FROM pianos`
	args := []any{}
	if status != "" {
		query += ` WHERE moderation_status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pianos: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*Piano)
	var ptrs []*Piano
	for rows.Next() {
		p, err := scanPiano(rows)
		if err != nil {
			return nil, err
		}
		byID[p.ID] = p
		ptrs = append(ptrs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadImages(ctx, byID); err != nil {
		return nil, err
	}
	out := make([]Piano, len(ptrs))
	for i, p := range ptrs {
		out[i] = *p
	}
	return out, nil
}

// SetModerationStatus transitions a piano's moderation status.
func (r *PostgresRepository) SetModerationStatus(ctx context.Context, id string, status content.Status, moderator string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pianos SET moderation_status = $2,
			verified = CASE WHEN $2 = 'approved' THEN TRUE ELSE verified END,
			verified_by = CASE WHEN $2 = 'approved' THEN $3 ELSE verified_by END,
			updated_at = $4
		WHERE id = $1`,
		id, status, moderator, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("moderate piano: %w", err)
	}
	return requireRow(res, ErrPianoNotFound)
}

// CountByStatus returns piano counts per moderation status.
func (r *PostgresRepository) CountByStatus(ctx context.Context) (map[content.Status]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT moderation_status, COUNT(*) FROM pianos GROUP BY moderation_status`)
	if err != nil {
		return nil, fmt.Errorf("count pianos: %w", err)
	}
	defer rows.Close()

	counts := make(map[content.Status]int)
	for rows.Next() {
		var s content.Status
		var n int
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		counts[s] = n
	}
	return counts, rows.Err()
}

// CountSince returns the number of pianos submitted at or after the cutoff.
func (r *PostgresRepository) CountSince(ctx context.Context, cutoff time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pianos WHERE created_at >= $1`, cutoff).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count pianos since: %w", err)
	}
	return n, nil
}

// AddImage appends an image record to a piano's collection.
func (r *PostgresRepository) AddImage(ctx context.Context, img *Image) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO piano_images (id, piano_id, image_url, alt_text, display_order, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)`,
		img.ID, img.PianoID, img.ImageURL, img.AltText, img.DisplayOrder, img.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert piano image: %w", err)
	}
	return nil
}

func (r *PostgresRepository) loadImages(ctx context.Context, byID map[string]*Piano) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, piano_id, image_url, COALESCE(alt_text, ''), display_order, created_at
		FROM piano_images WHERE piano_id = ANY($1) ORDER BY piano_id, display_order`,
		pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load piano images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.PianoID, &img.ImageURL, &img.AltText, &img.DisplayOrder, &img.CreatedAt); err != nil {
			return err
		}
		if p, ok := byID[img.PianoID]; ok {
			p.Images = append(p.Images, img)
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPiano(row rowScanner) (*Piano, error) {
	var p Piano
	var lat, lng sql.NullFloat64
	if err := row.Scan(&p.ID, &p.Title, &p.Statement, &p.LocationName,
		&lat, &lng,
		&p.ArtistName, &p.ArtistBio, &p.ArtistWebsite,
		&p.Category, &p.Condition, &p.Accessibility, &p.Hours,
		&p.Verified, &p.ModerationStatus, &p.VerifiedBy,
		&p.CreatedBy, &p.Source, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if lat.Valid && lng.Valid {
		p.Coordinates = &geo.Point{Lat: lat.Float64, Lng: lng.Float64}
	}
	return &p, nil
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
