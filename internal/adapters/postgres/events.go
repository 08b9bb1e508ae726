package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sandeshlamsal/eventpasal/internal/domain"
)

const eventColumns = `id, title, description, date, time, location, category,
	COALESCE(price, 0), COALESCE(image_url, ''), user_id, attendees, capacity,
	created_at, updated_at`

func (r *Repository) CreateEvent(ctx context.Context, tx pgx.Tx, ev domain.Event) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO events (id, title, description, date, time, location, category,
			price, image_url, user_id, attendees, capacity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11, $12, $13, $13)
	`, ev.ID, ev.Title, ev.Description, ev.Date, ev.Time, ev.Location, ev.Category,
		ev.Price, ev.ImageURL, ev.UserID, ev.Attendees, ev.Capacity, ev.CreatedAt)
	return err
}

func (r *Repository) GetEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	ev, err := scanEvent(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// ListEvents returns the full listing ordered by date ascending, optionally
// narrowed by a case-insensitive search across title, description, location
// and category.
func (r *Repository) ListEvents(ctx context.Context, search string) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events`
	args := []interface{}{}
	if search != "" {
		query += ` WHERE title ILIKE $1 OR description ILIKE $1 OR location ILIKE $1 OR category ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY date ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *Repository) UpcomingEvents(ctx context.Context, from time.Time, limit int) ([]domain.Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE date >= $1 ORDER BY date ASC LIMIT $2
	`, from, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *Repository) FeaturedEvents(ctx context.Context, from time.Time, limit int) ([]domain.Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE date >= $1 ORDER BY attendees DESC LIMIT $2
	`, from, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *Repository) ListEventsByOwner(ctx context.Context, userID uuid.UUID) ([]domain.Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *Repository) UpdateEvent(ctx context.Context, ev domain.Event) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE events
		SET title = $2, description = $3, date = $4, time = $5, location = $6,
			category = $7, price = $8, image_url = NULLIF($9, ''), capacity = $10,
			updated_at = now()
		WHERE id = $1
	`, ev.ID, ev.Title, ev.Description, ev.Date, ev.Time, ev.Location,
		ev.Category, ev.Price, ev.ImageURL, ev.Capacity)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementAttendees bumps the attendee count with a capacity guard, so two
// racing registrations cannot push a full event past its capacity.
func (r *Repository) IncrementAttendees(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE events SET attendees = attendees + 1, updated_at = now()
		WHERE id = $1 AND attendees < capacity
	`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrCapacityFull
	}
	return nil
}

// EventPrice is one row of the legacy repair scan.
type EventPrice struct {
	ID    uuid.UUID
	Price *float64
}

// OutOfBandPrices lists events whose stored nonzero price falls outside the
// accepted band, null included.
func (r *Repository) OutOfBandPrices(ctx context.Context, min, max float64) ([]EventPrice, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, price FROM events
		WHERE (price IS NULL OR price < $1 OR price > $2) AND (price IS NULL OR price <> 0)
	`, min, max)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EventPrice
	for rows.Next() {
		var ep EventPrice
		if err := rows.Scan(&ep.ID, &ep.Price); err != nil {
			return nil, err
		}
		out = append(out, ep)
	}
	return out, rows.Err()
}

func (r *Repository) SetEventPrice(ctx context.Context, id uuid.UUID, price float64) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE events SET price = $2, updated_at = now() WHERE id = $1
	`, id, price)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var ev domain.Event
	err := row.Scan(&ev.ID, &ev.Title, &ev.Description, &ev.Date, &ev.Time,
		&ev.Location, &ev.Category, &ev.Price, &ev.ImageURL, &ev.UserID,
		&ev.Attendees, &ev.Capacity, &ev.CreatedAt, &ev.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func scanEvents(rows pgx.Rows) ([]domain.Event, error) {
	var events []domain.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	return events, rows.Err()
}
