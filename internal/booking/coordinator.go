package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Naveenverma440/activity-booking-app/internal/activity"
	"github.com/Naveenverma440/activity-booking-app/internal/logger"
	"github.com/Naveenverma440/activity-booking-app/internal/metrics"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	maxTxAttempts     = 3
	retryBackoff      = 10 * time.Millisecond
	notifySendTimeout = 10 * time.Second
)

type Service interface {
	CreateBooking(ctx context.Context, userID, activityID string) (*BookingWithDetails, error)
	CancelBooking(ctx context.Context, userID, bookingID string) error
	ListUserBookings(ctx context.Context, userID string) ([]BookingWithDetails, error)
}

// Notifier queues a booking lifecycle email. Satisfied by notify.Service.
type Notifier interface {
	Send(ctx context.Context, to, name, subject, body string) error
}

// coordinator owns the transaction scope for every booking mutation.
// Each request runs in its own *sqlx.Tx; the activity row lock taken at
// the start of the unit serializes all writers on the same activity.
type coordinator struct {
	db         *sqlx.DB
	bookings   Repository
	activities activity.Repository
	notifier   Notifier
	txTimeout  time.Duration
}

func NewService(db *sqlx.DB, bookings Repository, activities activity.Repository, notifier Notifier, txTimeout time.Duration) Service {
	return &coordinator{
		db:         db,
		bookings:   bookings,
		activities: activities,
		notifier:   notifier,
		txTimeout:  txTimeout,
	}
}

func (s *coordinator) CreateBooking(ctx context.Context, userID, activityID string) (*BookingWithDetails, error) {
	var created *Booking

	err := s.runInTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		act, err := s.activities.GetByIDForUpdate(ctx, tx, activityID)
		if err != nil {
			if errors.Is(err, activity.ErrNotFound) {
				return ErrActivityNotFound
			}
			return err
		}

		if act.IsFull() {
			return ErrCapacityExceeded
		}

		exists, err := s.bookings.ExistsForUserAndActivity(ctx, tx, userID, activityID)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateBooking
		}

		b, err := s.bookings.Create(ctx, tx, userID, activityID)
		if err != nil {
			return err
		}

		if err := s.activities.SetAvailableSpots(ctx, tx, act.ID, act.AvailableSpots-1); err != nil {
			return err
		}

		created = b
		return nil
	})
	if err != nil {
		metrics.RecordBooking(outcomeLabel(err))
		return nil, err
	}
	metrics.RecordBooking("confirmed")

	// Joined response read happens after commit; it is not part of the
	// transactional unit.
	details, err := s.bookings.GetDetailsByID(ctx, created.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	s.notify(details, "Booking confirmed",
		fmt.Sprintf("Your spot for %q on %s is confirmed.",
			details.ActivityTitle, details.ActivityStartsAt.Format("Jan 2, 2006 at 3:04 PM")))

	return details, nil
}

func (s *coordinator) CancelBooking(ctx context.Context, userID, bookingID string) error {
	var activityID string

	err := s.runInTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		b, err := s.bookings.GetByIDForUser(ctx, tx, bookingID, userID)
		if err != nil {
			return err
		}

		if b.Status != StatusConfirmed {
			return ErrAlreadyCancelled
		}

		if err := s.bookings.MarkCancelled(ctx, tx, b.ID); err != nil {
			return err
		}

		// The booking we just flipped accounted for exactly one prior
		// decrement, so one increment restores the counter.
		act, err := s.activities.GetByIDForUpdate(ctx, tx, b.ActivityID)
		if err != nil {
			return err
		}

		if err := s.activities.SetAvailableSpots(ctx, tx, act.ID, act.AvailableSpots+1); err != nil {
			return err
		}

		activityID = act.ID
		return nil
	})
	if err != nil {
		metrics.RecordCancellation(outcomeLabel(err))
		return err
	}
	metrics.RecordCancellation("cancelled")

	if details, derr := s.bookings.GetDetailsByID(ctx, bookingID); derr == nil {
		s.notify(details, "Booking cancelled",
			fmt.Sprintf("Your booking for %q has been cancelled.", details.ActivityTitle))
	} else {
		logger.Errorf("Failed to load booking %s for cancellation notice (activity %s): %v", bookingID, activityID, derr)
	}

	return nil
}

func (s *coordinator) ListUserBookings(ctx context.Context, userID string) ([]BookingWithDetails, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return bookings, nil
}

// runInTx executes fn inside a transaction with a bounded time budget,
// retrying on storage conflicts. Business failures are never retried;
// they roll back and surface unchanged. A unique-constraint hit retries
// so the duplicate check can report the business condition on the next
// attempt, and only surfaces as ErrConstraintViolation when it keeps
// racing past every retry.
func (s *coordinator) runInTx(ctx context.Context, fn func(context.Context, *sqlx.Tx) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = s.runAttempt(ctx, fn)
		if err == nil || isBusinessError(err) {
			return err
		}

		if !errors.Is(err, ErrConstraintViolation) && !isSerializationFailure(err) {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}

		if attempt < maxTxAttempts {
			metrics.RecordBookingTxRetry()
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", ErrStorage, ctx.Err())
			case <-time.After(time.Duration(attempt) * retryBackoff):
			}
		}
	}

	if errors.Is(err, ErrConstraintViolation) {
		return ErrConstraintViolation
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}

func (s *coordinator) runAttempt(ctx context.Context, fn func(context.Context, *sqlx.Tx) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(ctx, tx); err != nil {
		// Roll back the whole unit; no partial state survives.
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Errorf("Transaction rollback failed: %v", rbErr)
		}
		return err
	}

	return tx.Commit()
}

func (s *coordinator) notify(details *BookingWithDetails, subject, body string) {
	if s.notifier == nil {
		return
	}
	// Fire and forget: notification failures never affect the booking
	// outcome that already committed.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifySendTimeout)
		defer cancel()
		if err := s.notifier.Send(ctx, details.UserEmail, details.UserName, subject, body); err != nil {
			logger.Errorf("Failed to queue notification for booking %s: %v", details.ID, err)
		}
	}()
}

func isBusinessError(err error) bool {
	return errors.Is(err, ErrActivityNotFound) ||
		errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrCapacityExceeded) ||
		errors.Is(err, ErrDuplicateBooking) ||
		errors.Is(err, ErrAlreadyCancelled)
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, ErrActivityNotFound), errors.Is(err, ErrBookingNotFound):
		return "not_found"
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrDuplicateBooking):
		return "duplicate"
	case errors.Is(err, ErrAlreadyCancelled):
		return "already_cancelled"
	case errors.Is(err, ErrConstraintViolation):
		return "constraint_violation"
	default:
		return "storage_failure"
	}
}
