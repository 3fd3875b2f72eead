package repository

import (
	"context"

	"salonpos/internal/domain"

	"gorm.io/gorm"
)

type BranchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) *BranchRepository {
	return &BranchRepository{db: db}
}

func (r *BranchRepository) Create(ctx context.Context, b *domain.Branch) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BranchRepository) Update(ctx context.Context, b *domain.Branch) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BranchRepository) GetByID(ctx context.Context, id int64) (*domain.Branch, error) {
	var b domain.Branch
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BranchRepository) List(ctx context.Context) ([]domain.Branch, error) {
	var branches []domain.Branch
	if err := r.db.WithContext(ctx).Order("name").Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

func (r *BranchRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Branch{}, id).Error
}

// SetSeatCounts stores the recomputed aggregate. The values are advisory;
// the source of truth stays in the seats table.
func (r *BranchRepository) SetSeatCounts(ctx context.Context, id int64, total, available int) error {
	return r.db.WithContext(ctx).
		Model(&domain.Branch{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"total_seats":     total,
			"available_seats": available,
		}).Error
}
