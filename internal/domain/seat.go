package domain

import "time"

type SeatType string

const (
	SeatRegular SeatType = "regular"
	SeatPremium SeatType = "premium"
	SeatVIP     SeatType = "vip"
	SeatCouple  SeatType = "couple"
)

type SeatStatus string

const (
	SeatAvailable   SeatStatus = "available"
	SeatBooked      SeatStatus = "booked"
	SeatMaintenance SeatStatus = "maintenance"
	SeatReserved    SeatStatus = "reserved"
)

// ValidSeatStatus reports whether s is one of the four enumerated statuses.
func ValidSeatStatus(s SeatStatus) bool {
	switch s {
	case SeatAvailable, SeatBooked, SeatMaintenance, SeatReserved:
		return true
	}
	return false
}

// ValidSeatType reports whether t is a known seat type.
func ValidSeatType(t SeatType) bool {
	switch t {
	case SeatRegular, SeatPremium, SeatVIP, SeatCouple:
		return true
	}
	return false
}

// Seat is a bookable chair/station in a branch, billed per hour when added
// to a walk-in order. SeatNumber is unique within its branch.
type Seat struct {
	ID         int64      `json:"id"`
	BranchID   int64      `json:"branch_id" validate:"required" gorm:"uniqueIndex:idx_branch_seat_number"`
	SeatNumber int        `json:"seat_number" validate:"required,gt=0" gorm:"uniqueIndex:idx_branch_seat_number"`
	SeatType   SeatType   `json:"seat_type"`
	Status     SeatStatus `json:"status"`
	HourlyRate float64    `json:"hourly_rate"`
	Position   string     `json:"position,omitempty"`
	LastBooked *time.Time `json:"last_booked,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
