package repository

import (
	"context"

	"salonpos/internal/domain"

	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) List(ctx context.Context, activeOnly bool) ([]domain.Product, error) {
	var products []domain.Product
	q := r.db.WithContext(ctx).Order("name")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Product{}, id).Error
}

// Book increments in_use_stock by qty only while the stock invariant holds.
// The guard lives in the UPDATE itself so two concurrent bookings can never
// both pass capacity on a stale read. Returns false with the current row
// when the guard rejects the write.
func (r *ProductRepository) Book(ctx context.Context, id int64, qty int) (bool, *domain.Product, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ? AND in_use_stock + ? <= total_stock", id, qty).
		Update("in_use_stock", gorm.Expr("in_use_stock + ?", qty))
	if tx.Error != nil {
		return false, nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		p, err := r.GetByID(ctx, id)
		if err != nil {
			return false, nil, err
		}
		return false, p, nil
	}
	return true, nil, nil
}

// Release decrements in_use_stock by qty, floored at 0 in a single
// statement (CASE works on both backends; GREATEST does not exist in
// sqlite).
func (r *ProductRepository) Release(ctx context.Context, id int64, qty int) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		Update("in_use_stock",
			gorm.Expr("CASE WHEN in_use_stock > ? THEN in_use_stock - ? ELSE 0 END", qty, qty))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetInUse writes an absolute in_use_stock value, rejected in-statement when
// it would exceed total_stock.
func (r *ProductRepository) SetInUse(ctx context.Context, id int64, inUse int) (bool, *domain.Product, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ? AND total_stock >= ?", id, inUse).
		Update("in_use_stock", inUse)
	if tx.Error != nil {
		return false, nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		p, err := r.GetByID(ctx, id)
		if err != nil {
			return false, nil, err
		}
		return false, p, nil
	}
	return true, nil, nil
}

// SetTotal writes an absolute total_stock value, rejected in-statement when
// the current in_use_stock would no longer fit under it.
func (r *ProductRepository) SetTotal(ctx context.Context, id int64, total int) (bool, *domain.Product, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ? AND in_use_stock <= ?", id, total).
		Update("total_stock", total)
	if tx.Error != nil {
		return false, nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		p, err := r.GetByID(ctx, id)
		if err != nil {
			return false, nil, err
		}
		return false, p, nil
	}
	return true, nil, nil
}
