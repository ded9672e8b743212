package activity

import "time"

type Activity struct {
	ID             string    `db:"id" json:"id"`
	Title          string    `db:"title" json:"title"`
	Description    string    `db:"description" json:"description"`
	Location       string    `db:"location" json:"location"`
	StartsAt       time.Time `db:"starts_at" json:"starts_at"`
	Capacity       int       `db:"capacity" json:"capacity"`
	AvailableSpots int       `db:"available_spots" json:"available_spots"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// IsFull reports whether no spots remain.
func (a *Activity) IsFull() bool {
	return a.AvailableSpots <= 0
}

type CreateActivityRequest struct {
	Title       string    `json:"title" binding:"required,min=3,max=100"`
	Description string    `json:"description" binding:"required,min=10,max=1000"`
	Location    string    `json:"location" binding:"required,min=3,max=100"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	Capacity    int       `json:"capacity" binding:"omitempty,gte=1"`
}
