package activity

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("activity not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, title, description, location string, startsAt time.Time, capacity int) (*Activity, error) {
	query := `
		INSERT INTO activities (id, title, description, location, starts_at, capacity, available_spots)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id, title, description, location, starts_at, capacity, available_spots, created_at
	`

	var a Activity
	err := r.db.GetContext(ctx, &a, query, uuid.NewString(), title, description, location, startsAt, capacity)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Activity, error) {
	query := `
		SELECT id, title, description, location, starts_at, capacity, available_spots, created_at
		FROM activities
		WHERE id = $1
	`

	var a Activity
	err := r.db.GetContext(ctx, &a, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &a, nil
}

func (r *repository) List(ctx context.Context) ([]Activity, error) {
	query := `
		SELECT id, title, description, location, starts_at, capacity, available_spots, created_at
		FROM activities
		ORDER BY starts_at ASC
	`

	var activities []Activity
	err := r.db.SelectContext(ctx, &activities, query)
	if err != nil {
		return nil, err
	}

	return activities, nil
}

func (r *repository) GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id string) (*Activity, error) {
	query := `
		SELECT id, title, description, location, starts_at, capacity, available_spots, created_at
		FROM activities
		WHERE id = $1
		FOR UPDATE
	`

	var a Activity
	err := tx.GetContext(ctx, &a, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &a, nil
}

func (r *repository) SetAvailableSpots(ctx context.Context, tx *sqlx.Tx, id string, spots int) error {
	query := `UPDATE activities SET available_spots = $2 WHERE id = $1`

	result, err := tx.ExecContext(ctx, query, id, spots)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
