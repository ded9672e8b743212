package booking

import "time"

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

type Booking struct {
	ID         string    `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"user_id"`
	ActivityID string    `db:"activity_id" json:"activity_id"`
	Status     string    `db:"status" json:"status"`
	Spots      int       `db:"spots" json:"spots"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type BookingWithDetails struct {
	Booking
	ActivityTitle       string    `db:"activity_title" json:"activity_title"`
	ActivityDescription string    `db:"activity_description" json:"activity_description"`
	ActivityLocation    string    `db:"activity_location" json:"activity_location"`
	ActivityStartsAt    time.Time `db:"activity_starts_at" json:"activity_starts_at"`
	UserName            string    `db:"user_name" json:"user_name"`
	UserEmail           string    `db:"user_email" json:"user_email"`
}

type CreateBookingRequest struct {
	ActivityID string `json:"activity_id" binding:"required,uuid"`
}
