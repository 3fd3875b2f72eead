package repository

import (
	"context"
	"time"

	"salonpos/internal/domain"

	"gorm.io/gorm"
)

type SeatRepository struct {
	db *gorm.DB
}

func NewSeatRepository(db *gorm.DB) *SeatRepository {
	return &SeatRepository{db: db}
}

func (r *SeatRepository) Create(ctx context.Context, s *domain.Seat) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SeatRepository) GetByID(ctx context.Context, id int64) (*domain.Seat, error) {
	var s domain.Seat
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SeatRepository) ListByBranch(ctx context.Context, branchID int64) ([]domain.Seat, error) {
	var seats []domain.Seat
	err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("seat_number").
		Find(&seats).Error
	if err != nil {
		return nil, err
	}
	return seats, nil
}

func (r *SeatRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Seat{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SeatRepository) NumberExists(ctx context.Context, branchID int64, seatNumber int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Seat{}).
		Where("branch_id = ? AND seat_number = ?", branchID, seatNumber).
		Count(&count).Error
	return count > 0, err
}

// SetStatus writes a seat status unconditionally (admin edits). Entering
// booked stamps last_booked.
func (r *SeatRepository) SetStatus(ctx context.Context, id int64, status domain.SeatStatus) error {
	updates := map[string]any{"status": status}
	if status == domain.SeatBooked {
		updates["last_booked"] = time.Now()
	}
	tx := r.db.WithContext(ctx).
		Model(&domain.Seat{}).
		Where("id = ?", id).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Transition moves a seat from one status to another as a single
// conditional write, so two concurrent bookings of the same seat cannot
// both succeed. Returns false when the seat was not in the expected status.
func (r *SeatRepository) Transition(ctx context.Context, id int64, from, to domain.SeatStatus) (bool, error) {
	updates := map[string]any{"status": to}
	if to == domain.SeatBooked {
		updates["last_booked"] = time.Now()
	}
	tx := r.db.WithContext(ctx).
		Model(&domain.Seat{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

// CountByBranch derives the branch aggregate by counting current seat rows.
// Counts are never incrementally maintained, so they cannot drift.
func (r *SeatRepository) CountByBranch(ctx context.Context, branchID int64) (total, available int, err error) {
	var totalCount, availableCount int64
	err = r.db.WithContext(ctx).
		Model(&domain.Seat{}).
		Where("branch_id = ?", branchID).
		Count(&totalCount).Error
	if err != nil {
		return 0, 0, err
	}
	err = r.db.WithContext(ctx).
		Model(&domain.Seat{}).
		Where("branch_id = ? AND status = ?", branchID, domain.SeatAvailable).
		Count(&availableCount).Error
	if err != nil {
		return 0, 0, err
	}
	return int(totalCount), int(availableCount), nil
}
