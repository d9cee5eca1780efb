package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jessebautista/wpnew-sub000/internal/content"
	"github.com/jessebautista/wpnew-sub000/internal/geo"
)

// PostgresRepository stores events in PostgreSQL.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository wraps an open database handle.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const eventColumns = `id, title, COALESCE(description, ''), date,
		COALESCE(location_name, ''), latitude, longitude, category,
		COALESCE(organizer, ''), verified, moderation_status, verified_by,
		COALESCE(created_by, ''), attendee_count, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*Event, error) {
	var ev Event
	var lat, lng sql.NullFloat64
	var verifiedBy sql.NullString
	err := row.Scan(
		&ev.ID, &ev.Title, &ev.Description, &ev.Date,
		&ev.LocationName, &lat, &lng, &ev.Category,
		&ev.Organizer, &ev.Verified, &ev.ModerationStatus, &verifiedBy,
		&ev.CreatedBy, &ev.AttendeeCount, &ev.CreatedAt, &ev.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lat.Valid && lng.Valid {
		ev.Coordinates = &geo.Point{Lat: lat.Float64, Lng: lng.Float64}
	}
	if verifiedBy.Valid {
		ev.VerifiedBy = &verifiedBy.String
	}
	return &ev, nil
}

func coords(ev *Event) (lat, lng any) {
	if ev.Coordinates == nil {
		return nil, nil
	}
	return ev.Coordinates.Lat, ev.Coordinates.Lng
}

func (r *PostgresRepository) Create(ctx context.Context, ev *Event) error {
	if err := ev.Validate(); err != nil {
		return err
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.ModerationStatus == "" {
		ev.ModerationStatus = content.StatusPending
	}
	now := time.Now().UTC()
	ev.CreatedAt = now
	ev.UpdatedAt = now
	lat, lng := coords(ev)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO events (
			id, title, description, date, location_name, latitude, longitude,
			category, organizer, verified, moderation_status, created_by,
			attendee_count, created_at, updated_at
		) VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), $6, $7,
			$8, NULLIF($9, ''), $10, $11, NULLIF($12, ''), $13, $14, $15)`,
		ev.ID, ev.Title, ev.Description, ev.Date, ev.LocationName, lat, lng,
		ev.Category, ev.Organizer, ev.Verified, ev.ModerationStatus, ev.CreatedBy,
		ev.AttendeeCount, ev.CreatedAt, ev.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, ev *Event) error {
	if err := ev.Validate(); err != nil {
		return err
	}
	ev.UpdatedAt = time.Now().UTC()
	lat, lng := coords(ev)
	res, err := r.db.ExecContext(ctx, `
		UPDATE events SET
			title = $2, description = NULLIF($3, ''), date = $4,
			location_name = NULLIF($5, ''), latitude = $6, longitude = $7,
			category = $8, organizer = NULLIF($9, ''), updated_at = $10
		WHERE id = $1`,
		ev.ID, ev.Title, ev.Description, ev.Date, ev.LocationName, lat, lng,
		ev.Category, ev.Organizer, ev.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return requireRow(res, ErrEventNotFound)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return requireRow(res, ErrEventNotFound)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Event, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	ev, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return ev, nil
}

func (r *PostgresRepository) List(ctx context.Context, status content.Status) ([]Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events`
	args := []any{}
	if status != "" {
		query += ` WHERE moderation_status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY date ASC`
	return r.queryEvents(ctx, query, args...)
}

func (r *PostgresRepository) ListBetween(ctx context.Context, from, to time.Time) ([]Event, error) {
	return r.queryEvents(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC`, from, to)
}

func (r *PostgresRepository) queryEvents(ctx context.Context, query string, args ...any) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, *ev)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) SetModerationStatus(ctx context.Context, id string, status content.Status, moderatorID string) error {
	if _, err := content.ParseStatus(string(status)); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE events SET
			moderation_status = $2,
			verified = CASE WHEN $2 = 'approved' THEN TRUE ELSE verified END,
			verified_by = CASE WHEN $2 = 'approved' THEN $3 ELSE verified_by END,
			updated_at = NOW()
		WHERE id = $1`,
		id, status, moderatorID,
	)
	if err != nil {
		return fmt.Errorf("moderate event: %w", err)
	}
	return requireRow(res, ErrEventNotFound)
}

func (r *PostgresRepository) SetAttendance(ctx context.Context, id string, delta int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE events SET
			attendee_count = GREATEST(attendee_count + $2, 0),
			updated_at = NOW()
		WHERE id = $1`,
		id, delta,
	)
	if err != nil {
		return fmt.Errorf("update attendance: %w", err)
	}
	return requireRow(res, ErrEventNotFound)
}

func (r *PostgresRepository) CountByStatus(ctx context.Context) (map[content.Status]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT moderation_status, COUNT(*) FROM events GROUP BY moderation_status`)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	defer rows.Close()

	counts := make(map[content.Status]int)
	for rows.Next() {
		var status content.Status
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan event count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *PostgresRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM events WHERE created_at >= $1`, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
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
