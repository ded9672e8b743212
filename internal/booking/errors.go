package booking

import "errors"

// The closed set of failure kinds a booking or cancellation can end in.
// Handlers switch on these; nothing else escapes the coordinator.
var (
	ErrActivityNotFound    = errors.New("activity not found")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrCapacityExceeded    = errors.New("activity is fully booked")
	ErrDuplicateBooking    = errors.New("activity already booked by this user")
	ErrAlreadyCancelled    = errors.New("booking already cancelled")
	ErrConstraintViolation = errors.New("booking uniqueness constraint violated")
	ErrStorage             = errors.New("storage failure")
)
