package seats

import "salonpos/internal/domain"

type CreateSeatRequest struct {
	BranchID   int64           `json:"branch_id"`
	SeatNumber int             `json:"seat_number" validate:"required,gt=0"`
	SeatType   domain.SeatType `json:"seat_type"`
	HourlyRate float64         `json:"hourly_rate" validate:"gte=0"`
	Position   string          `json:"position"`
}

type CreateBranchRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
}

type UpdateBranchRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
}

type BulkCreateRequest struct {
	Seats []CreateSeatRequest `json:"seats" validate:"required,min=1"`
}

type UpdateStatusRequest struct {
	Status domain.SeatStatus `json:"status" validate:"required"`
}

// SkippedSeat reports one rejected entry of a bulk create.
type SkippedSeat struct {
	SeatNumber int    `json:"seat_number"`
	Reason     string `json:"reason"`
}

// BulkCreateResult carries partial-success output: committed seats plus a
// report of every skipped entry.
type BulkCreateResult struct {
	Created []domain.Seat `json:"created"`
	Skipped []SkippedSeat `json:"skipped"`
}

func (r *BulkCreateResult) skip(seatNumber int, reason string) {
	r.Skipped = append(r.Skipped, SkippedSeat{SeatNumber: seatNumber, Reason: reason})
}
