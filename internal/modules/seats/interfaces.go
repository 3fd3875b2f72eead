package seats

import (
	"context"

	"salonpos/internal/domain"
)

type SeatRepository interface {
	Create(ctx context.Context, s *domain.Seat) error
	GetByID(ctx context.Context, id int64) (*domain.Seat, error)
	ListByBranch(ctx context.Context, branchID int64) ([]domain.Seat, error)
	Delete(ctx context.Context, id int64) error
	NumberExists(ctx context.Context, branchID int64, seatNumber int) (bool, error)
	SetStatus(ctx context.Context, id int64, status domain.SeatStatus) error
	Transition(ctx context.Context, id int64, from, to domain.SeatStatus) (bool, error)
	CountByBranch(ctx context.Context, branchID int64) (total, available int, err error)
}

type BranchRepository interface {
	Create(ctx context.Context, b *domain.Branch) error
	Update(ctx context.Context, b *domain.Branch) error
	GetByID(ctx context.Context, id int64) (*domain.Branch, error)
	List(ctx context.Context) ([]domain.Branch, error)
	SetSeatCounts(ctx context.Context, id int64, total, available int) error
}

// SeatEventSink receives seat status changes for live dashboards. Optional;
// nil disables broadcasting.
type SeatEventSink interface {
	SeatStatusChanged(branchID int64, seat *domain.Seat)
}
