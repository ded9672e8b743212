package booking

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, tx *sqlx.Tx, userID, activityID string) (*Booking, error) {
	query := `
		INSERT INTO bookings (id, user_id, activity_id, status, spots)
		VALUES ($1, $2, $3, 'confirmed', 1)
		RETURNING id, user_id, activity_id, status, spots, created_at
	`

	var b Booking
	err := tx.GetContext(ctx, &b, query, uuid.NewString(), userID, activityID)
	if err != nil {
		// The unique (user_id, activity_id) index is the backstop for
		// duplicate checks that race past another writer.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrConstraintViolation
		}
		return nil, err
	}

	return &b, nil
}

func (r *repository) ExistsForUserAndActivity(ctx context.Context, tx *sqlx.Tx, userID, activityID string) (bool, error) {
	// Any status counts: a cancelled booking still blocks rebooking.
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE user_id = $1 AND activity_id = $2
		)
	`

	var exists bool
	err := tx.GetContext(ctx, &exists, query, userID, activityID)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) GetByIDForUser(ctx context.Context, tx *sqlx.Tx, bookingID, userID string) (*Booking, error) {
	query := `
		SELECT id, user_id, activity_id, status, spots, created_at
		FROM bookings
		WHERE id = $1 AND user_id = $2
	`

	var b Booking
	err := tx.GetContext(ctx, &b, query, bookingID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	return &b, nil
}

func (r *repository) MarkCancelled(ctx context.Context, tx *sqlx.Tx, bookingID string) error {
	// Guarded flip: only a confirmed booking can be cancelled, so a
	// racing second cancel can never trigger a second spot increment.
	query := `
		UPDATE bookings
		SET status = 'cancelled'
		WHERE id = $1 AND status = 'confirmed'
	`

	result, err := tx.ExecContext(ctx, query, bookingID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrAlreadyCancelled
	}

	return nil
}

func (r *repository) GetDetailsByID(ctx context.Context, bookingID string) (*BookingWithDetails, error) {
	query := `
		SELECT
			b.id,
			b.user_id,
			b.activity_id,
			b.status,
			b.spots,
			b.created_at,
			a.title AS activity_title,
			a.description AS activity_description,
			a.location AS activity_location,
			a.starts_at AS activity_starts_at,
			u.name AS user_name,
			u.email AS user_email
		FROM bookings b
		JOIN activities a ON b.activity_id = a.id
		JOIN users u ON b.user_id = u.id
		WHERE b.id = $1
	`

	var b BookingWithDetails
	err := r.db.GetContext(ctx, &b, query, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	return &b, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]BookingWithDetails, error) {
	query := `
		SELECT
			b.id,
			b.user_id,
			b.activity_id,
			b.status,
			b.spots,
			b.created_at,
			a.title AS activity_title,
			a.description AS activity_description,
			a.location AS activity_location,
			a.starts_at AS activity_starts_at,
			u.name AS user_name,
			u.email AS user_email
		FROM bookings b
		JOIN activities a ON b.activity_id = a.id
		JOIN users u ON b.user_id = u.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
	`

	var bookings []BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query, userID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}
