package activity

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockActivityRepo struct{ mock.Mock }

func (m *MockActivityRepo) Create(ctx context.Context, title, description, location string, startsAt time.Time, capacity int) (*Activity, error) {
	args := m.Called(ctx, title, description, location, startsAt, capacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Activity), args.Error(1)
}

func (m *MockActivityRepo) GetByID(ctx context.Context, id string) (*Activity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Activity), args.Error(1)
}

func (m *MockActivityRepo) List(ctx context.Context) ([]Activity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Activity), args.Error(1)
}

func (m *MockActivityRepo) GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id string) (*Activity, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Activity), args.Error(1)
}

func (m *MockActivityRepo) SetAvailableSpots(ctx context.Context, tx *sqlx.Tx, id string, spots int) error {
	return m.Called(ctx, tx, id, spots).Error(0)
}

func TestCreateActivity(t *testing.T) {
	future := time.Now().Add(48 * time.Hour)

	tests := []struct {
		name        string
		req         CreateActivityRequest
		setupMock   func(*MockActivityRepo)
		wantErr     error
		wantSpots   int
	}{
		{
			name: "success with explicit capacity",
			req: CreateActivityRequest{
				Title:       "Cricket Match",
				Description: "Friendly cricket match at the local ground.",
				Location:    "City Sports Complex",
				StartsAt:    future,
				Capacity:    22,
			},
			setupMock: func(repo *MockActivityRepo) {
				repo.On("Create", mock.Anything, "Cricket Match", "Friendly cricket match at the local ground.", "City Sports Complex", future, 22).
					Return(&Activity{ID: "a1", Capacity: 22, AvailableSpots: 22}, nil)
			},
			wantSpots: 22,
		},
		{
			name: "capacity defaults to 10",
			req: CreateActivityRequest{
				Title:       "Yoga in the Park",
				Description: "Morning yoga session, bring your own mat.",
				Location:    "Central Park",
				StartsAt:    future,
			},
			setupMock: func(repo *MockActivityRepo) {
				repo.On("Create", mock.Anything, "Yoga in the Park", "Morning yoga session, bring your own mat.", "Central Park", future, 10).
					Return(&Activity{ID: "a2", Capacity: 10, AvailableSpots: 10}, nil)
			},
			wantSpots: 10,
		},
		{
			name: "rejects past date",
			req: CreateActivityRequest{
				Title:       "Time Travel",
				Description: "An activity scheduled in the past.",
				Location:    "Nowhere",
				StartsAt:    time.Now().Add(-2 * time.Hour),
				Capacity:    5,
			},
			setupMock: func(repo *MockActivityRepo) {},
			wantErr:   ErrStartsInPast,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockActivityRepo)
			tt.setupMock(repo)
			svc := NewService(repo)

			a, err := svc.Create(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantSpots, a.AvailableSpots)
			repo.AssertExpectations(t)
		})
	}
}

func TestIsFull(t *testing.T) {
	a := &Activity{Capacity: 2, AvailableSpots: 1}
	assert.False(t, a.IsFull())

	a.AvailableSpots = 0
	assert.True(t, a.IsFull())
}
