package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sandeshlamsal/eventpasal/internal/domain"
)

func (r *Repository) CreateBooking(ctx context.Context, tx pgx.Tx, b domain.Booking) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO event_bookings (id, event_id, user_id, amount, tickets,
			payment_status, payment_method, phone_number, created_at, payment_completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10)
	`, b.ID, b.EventID, b.UserID, b.Amount, b.Tickets,
		b.Status, b.Method, b.PhoneNumber, b.CreatedAt, b.CompletedAt)
	return err
}

func (r *Repository) GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var b domain.Booking
	err := r.pool.QueryRow(ctx, `
		SELECT id, event_id, user_id, amount, tickets, payment_status,
			payment_method, COALESCE(phone_number, ''), created_at, payment_completed_at
		FROM event_bookings WHERE id = $1
	`, id).Scan(&b.ID, &b.EventID, &b.UserID, &b.Amount, &b.Tickets,
		&b.Status, &b.Method, &b.PhoneNumber, &b.CreatedAt, &b.CompletedAt)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CompleteBooking flips a pending booking to completed. A booking that is
// already completed (or missing) is not an error worth retrying, so both
// report ErrNotFound.
func (r *Repository) CompleteBooking(ctx context.Context, id uuid.UUID, completedAt time.Time) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE event_bookings
		SET payment_status = $2, payment_completed_at = $3
		WHERE id = $1 AND payment_status = $4
	`, id, domain.PaymentCompleted, completedAt, domain.PaymentPending)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository) ListBookingsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, event_id, user_id, amount, tickets, payment_status,
			payment_method, COALESCE(phone_number, ''), created_at, payment_completed_at
		FROM event_bookings WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.EventID, &b.UserID, &b.Amount, &b.Tickets,
			&b.Status, &b.Method, &b.PhoneNumber, &b.CreatedAt, &b.CompletedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
