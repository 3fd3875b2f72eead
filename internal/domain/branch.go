package domain

import "time"

// Branch is a physical salon location. TotalSeats and AvailableSeats are an
// advisory materialized view: they are always recomputed by counting the
// branch's seat rows, never incremented in place.
type Branch struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name" validate:"required"`
	Address        string    `json:"address,omitempty"`
	City           string    `json:"city,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	TotalSeats     int       `json:"total_seats"`
	AvailableSeats int       `json:"available_seats"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
