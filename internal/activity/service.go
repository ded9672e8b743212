package activity

import (
	"context"
	"errors"
	"strings"
	"time"
)

const defaultCapacity = 10

var ErrStartsInPast = errors.New("activity date must be in the future")

type Service interface {
	Create(ctx context.Context, req CreateActivityRequest) (*Activity, error)
	GetByID(ctx context.Context, id string) (*Activity, error)
	List(ctx context.Context) ([]Activity, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateActivityRequest) (*Activity, error) {
	// A one-minute grace window so a request composed "now" is not
	// rejected by clock skew or processing delay.
	if !req.StartsAt.After(time.Now().Add(-time.Minute)) {
		return nil, ErrStartsInPast
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = defaultCapacity
	}

	return s.repo.Create(
		ctx,
		strings.TrimSpace(req.Title),
		strings.TrimSpace(req.Description),
		strings.TrimSpace(req.Location),
		req.StartsAt,
		capacity,
	)
}

func (s *service) GetByID(ctx context.Context, id string) (*Activity, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]Activity, error) {
	return s.repo.List(ctx)
}
