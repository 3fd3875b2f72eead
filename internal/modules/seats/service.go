package seats

import (
	"context"
	"fmt"

	"salonpos/internal/domain"
	"salonpos/internal/repository"
)

// Registry owns per-seat status and keeps the branch seat aggregates
// consistent. Aggregates are always recomputed by counting seat rows after
// a mutation settles; a short staleness window is acceptable because the
// stored counts are advisory.
type Registry struct {
	seats    SeatRepository
	branches BranchRepository
	events   SeatEventSink
}

func NewRegistry(seats SeatRepository, branches BranchRepository, events SeatEventSink) *Registry {
	return &Registry{seats: seats, branches: branches, events: events}
}

// CreateSeat adds a single seat. Seat numbers are unique per branch; the
// pre-check catches the common case and the unique index catches races.
func (r *Registry) CreateSeat(ctx context.Context, req CreateSeatRequest) (*domain.Seat, error) {
	seat, err := r.buildSeat(req)
	if err != nil {
		return nil, err
	}

	if _, err := r.branches.GetByID(ctx, req.BranchID); err != nil {
		return nil, err
	}

	exists, err := r.seats.NumberExists(ctx, req.BranchID, req.SeatNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("seat %d in branch %d: %w", req.SeatNumber, req.BranchID, ErrDuplicateSeatNumber)
	}

	if err := r.seats.Create(ctx, seat); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, fmt.Errorf("seat %d in branch %d: %w", req.SeatNumber, req.BranchID, ErrDuplicateSeatNumber)
		}
		return nil, err
	}

	if err := r.RecomputeBranchCounts(ctx, req.BranchID); err != nil {
		return nil, err
	}

	return seat, nil
}

// BulkCreateSeats validates and commits each entry independently: invalid
// or duplicate entries are skipped and reported, valid ones are created.
// The branch aggregate is recomputed once at the end, not per seat.
func (r *Registry) BulkCreateSeats(ctx context.Context, branchID int64, entries []CreateSeatRequest) (*BulkCreateResult, error) {
	if _, err := r.branches.GetByID(ctx, branchID); err != nil {
		return nil, err
	}

	result := &BulkCreateResult{}
	seen := make(map[int]bool, len(entries))

	for _, req := range entries {
		req.BranchID = branchID

		if seen[req.SeatNumber] {
			result.skip(req.SeatNumber, "duplicate seat number in request")
			continue
		}

		seat, err := r.buildSeat(req)
		if err != nil {
			result.skip(req.SeatNumber, err.Error())
			continue
		}

		exists, err := r.seats.NumberExists(ctx, branchID, req.SeatNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			result.skip(req.SeatNumber, ErrDuplicateSeatNumber.Error())
			continue
		}

		if err := r.seats.Create(ctx, seat); err != nil {
			if repository.IsDuplicateKey(err) {
				result.skip(req.SeatNumber, ErrDuplicateSeatNumber.Error())
				continue
			}
			return nil, err
		}

		seen[req.SeatNumber] = true
		result.Created = append(result.Created, *seat)
	}

	if err := r.RecomputeBranchCounts(ctx, branchID); err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateSeatStatus is the admin status write. Only the enumerated statuses
// are accepted; entering booked stamps last_booked in the repository.
func (r *Registry) UpdateSeatStatus(ctx context.Context, seatID int64, status domain.SeatStatus) (*domain.Seat, error) {
	if !domain.ValidSeatStatus(status) {
		return nil, fmt.Errorf("seat %d: %q: %w", seatID, status, ErrInvalidSeatStatus)
	}

	seat, err := r.seats.GetByID(ctx, seatID)
	if err != nil {
		return nil, err
	}

	if err := r.seats.SetStatus(ctx, seatID, status); err != nil {
		return nil, err
	}

	if err := r.RecomputeBranchCounts(ctx, seat.BranchID); err != nil {
		return nil, err
	}

	updated, err := r.seats.GetByID(ctx, seatID)
	if err != nil {
		return nil, err
	}

	r.broadcast(updated)
	return updated, nil
}

func (r *Registry) DeleteSeat(ctx context.Context, seatID int64) error {
	seat, err := r.seats.GetByID(ctx, seatID)
	if err != nil {
		return err
	}

	if err := r.seats.Delete(ctx, seatID); err != nil {
		return err
	}

	return r.RecomputeBranchCounts(ctx, seat.BranchID)
}

// BookSeat transitions a seat available -> booked with a single conditional
// write. Used by walk-in composition; fails when the seat is held by anyone
// else, regardless of what an earlier read said.
func (r *Registry) BookSeat(ctx context.Context, seatID int64) (*domain.Seat, error) {
	seat, err := r.seats.GetByID(ctx, seatID)
	if err != nil {
		return nil, err
	}

	ok, err := r.seats.Transition(ctx, seatID, domain.SeatAvailable, domain.SeatBooked)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("seat %d (currently %s): %w", seatID, seat.Status, ErrSeatUnavailable)
	}

	if err := r.RecomputeBranchCounts(ctx, seat.BranchID); err != nil {
		return nil, err
	}

	updated, err := r.seats.GetByID(ctx, seatID)
	if err != nil {
		return nil, err
	}

	r.broadcast(updated)
	return updated, nil
}

// FreeSeat transitions booked -> available when a seat line is removed or
// an order is cancelled. Freeing a seat that is no longer booked is a no-op
// so compensation can always run.
func (r *Registry) FreeSeat(ctx context.Context, seatID int64) error {
	seat, err := r.seats.GetByID(ctx, seatID)
	if err != nil {
		return err
	}

	ok, err := r.seats.Transition(ctx, seatID, domain.SeatBooked, domain.SeatAvailable)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := r.RecomputeBranchCounts(ctx, seat.BranchID); err != nil {
		return err
	}

	updated, err := r.seats.GetByID(ctx, seatID)
	if err == nil {
		r.broadcast(updated)
	}
	return nil
}

func (r *Registry) GetSeat(ctx context.Context, seatID int64) (*domain.Seat, error) {
	return r.seats.GetByID(ctx, seatID)
}

func (r *Registry) ListByBranch(ctx context.Context, branchID int64) ([]domain.Seat, error) {
	return r.seats.ListByBranch(ctx, branchID)
}

// RecomputeBranchCounts derives totalSeats/availableSeats from current seat
// rows and stores them on the branch. Never increments a stored counter.
func (r *Registry) RecomputeBranchCounts(ctx context.Context, branchID int64) error {
	total, available, err := r.seats.CountByBranch(ctx, branchID)
	if err != nil {
		return err
	}
	return r.branches.SetSeatCounts(ctx, branchID, total, available)
}

/* ---------- BRANCH MANAGEMENT ---------- */

func (r *Registry) CreateBranch(ctx context.Context, req CreateBranchRequest) (*domain.Branch, error) {
	branch := &domain.Branch{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Phone:   req.Phone,
	}
	if err := r.branches.Create(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

func (r *Registry) UpdateBranch(ctx context.Context, id int64, req UpdateBranchRequest) (*domain.Branch, error) {
	branch, err := r.branches.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		branch.Name = req.Name
	}
	if req.Address != "" {
		branch.Address = req.Address
	}
	if req.City != "" {
		branch.City = req.City
	}
	if req.Phone != "" {
		branch.Phone = req.Phone
	}

	if err := r.branches.Update(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

func (r *Registry) GetBranch(ctx context.Context, id int64) (*domain.Branch, error) {
	return r.branches.GetByID(ctx, id)
}

func (r *Registry) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	return r.branches.List(ctx)
}

func (r *Registry) buildSeat(req CreateSeatRequest) (*domain.Seat, error) {
	if req.SeatNumber <= 0 {
		return nil, fmt.Errorf("seat number %d must be positive", req.SeatNumber)
	}

	seatType := req.SeatType
	if seatType == "" {
		seatType = domain.SeatRegular
	}
	if !domain.ValidSeatType(seatType) {
		return nil, fmt.Errorf("%q: %w", req.SeatType, ErrInvalidSeatType)
	}

	return &domain.Seat{
		BranchID:   req.BranchID,
		SeatNumber: req.SeatNumber,
		SeatType:   seatType,
		Status:     domain.SeatAvailable,
		HourlyRate: req.HourlyRate,
		Position:   req.Position,
	}, nil
}

func (r *Registry) broadcast(seat *domain.Seat) {
	if r.events != nil {
		r.events.SeatStatusChanged(seat.BranchID, seat)
	}
}
