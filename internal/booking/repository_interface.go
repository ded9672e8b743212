package booking

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	// Tx-scoped operations used inside the coordinator's transaction.
	Create(ctx context.Context, tx *sqlx.Tx, userID, activityID string) (*Booking, error)
	ExistsForUserAndActivity(ctx context.Context, tx *sqlx.Tx, userID, activityID string) (bool, error)
	GetByIDForUser(ctx context.Context, tx *sqlx.Tx, bookingID, userID string) (*Booking, error)
	MarkCancelled(ctx context.Context, tx *sqlx.Tx, bookingID string) error

	// Plain reads, outside any transaction.
	GetDetailsByID(ctx context.Context, bookingID string) (*BookingWithDetails, error)
	ListByUser(ctx context.Context, userID string) ([]BookingWithDetails, error)
}
