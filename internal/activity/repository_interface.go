package activity

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, title, description, location string, startsAt time.Time, capacity int) (*Activity, error)
	GetByID(ctx context.Context, id string) (*Activity, error)
	List(ctx context.Context) ([]Activity, error)

	// Tx-scoped reads and writes used by the booking coordinator. The
	// row lock taken by GetByIDForUpdate serializes concurrent bookings
	// on the same activity for the lifetime of tx.
	GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id string) (*Activity, error)
	SetAvailableSpots(ctx context.Context, tx *sqlx.Tx, id string, spots int) error
}
