package repository

import (
	"context"

	"salonpos/internal/domain"

	"gorm.io/gorm"
)

type WalkinRepository struct {
	db *gorm.DB
}

func NewWalkinRepository(db *gorm.DB) *WalkinRepository {
	return &WalkinRepository{db: db}
}

func (r *WalkinRepository) Create(ctx context.Context, o *domain.WalkinOrder) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *WalkinRepository) GetByID(ctx context.Context, id int64) (*domain.WalkinOrder, error) {
	var o domain.WalkinOrder
	err := r.db.WithContext(ctx).
		Preload("ServiceLines").
		Preload("ProductLines").
		Preload("SeatLines").
		First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *WalkinRepository) ListByBranch(ctx context.Context, branchID int64, limit, offset int) ([]domain.WalkinOrder, int64, error) {
	var orders []domain.WalkinOrder
	var total int64

	err := r.db.WithContext(ctx).
		Model(&domain.WalkinOrder{}).
		Where("branch_id = ?", branchID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	err = r.db.WithContext(ctx).
		Preload("ServiceLines").
		Preload("ProductLines").
		Preload("SeatLines").
		Where("branch_id = ?", branchID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *WalkinRepository) UpdateStatus(ctx context.Context, id int64, status domain.WalkinStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.WalkinOrder{}).
		Where("id = ?", id).
		Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdatePayment writes the reconciliation fields, the only mutation allowed
// on a completed or cancelled order.
func (r *WalkinRepository) UpdatePayment(ctx context.Context, id int64, discount, amountPaid float64, method string) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.WalkinOrder{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"discount":       discount,
			"amount_paid":    amountPaid,
			"payment_method": method,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

/* ---------- lines ---------- */

func (r *WalkinRepository) AddServiceLine(ctx context.Context, l *domain.WalkinServiceLine) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *WalkinRepository) AddProductLine(ctx context.Context, l *domain.WalkinProductLine) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *WalkinRepository) AddSeatLine(ctx context.Context, l *domain.WalkinSeatLine) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *WalkinRepository) GetServiceLine(ctx context.Context, orderID, lineID int64) (*domain.WalkinServiceLine, error) {
	var l domain.WalkinServiceLine
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&l, lineID).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *WalkinRepository) GetProductLine(ctx context.Context, orderID, lineID int64) (*domain.WalkinProductLine, error) {
	var l domain.WalkinProductLine
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&l, lineID).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// FindProductLine locates an existing line for the product so a repeated add
// merges into it instead of creating a duplicate.
func (r *WalkinRepository) FindProductLine(ctx context.Context, orderID, productID int64) (*domain.WalkinProductLine, error) {
	var l domain.WalkinProductLine
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND product_id = ?", orderID, productID).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *WalkinRepository) GetSeatLine(ctx context.Context, orderID, lineID int64) (*domain.WalkinSeatLine, error) {
	var l domain.WalkinSeatLine
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&l, lineID).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *WalkinRepository) UpdateProductLine(ctx context.Context, l *domain.WalkinProductLine) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *WalkinRepository) UpdateServiceLine(ctx context.Context, l *domain.WalkinServiceLine) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *WalkinRepository) UpdateSeatLine(ctx context.Context, l *domain.WalkinSeatLine) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *WalkinRepository) DeleteServiceLine(ctx context.Context, orderID, lineID int64) error {
	return r.deleteLine(ctx, &domain.WalkinServiceLine{}, orderID, lineID)
}

func (r *WalkinRepository) DeleteProductLine(ctx context.Context, orderID, lineID int64) error {
	return r.deleteLine(ctx, &domain.WalkinProductLine{}, orderID, lineID)
}

func (r *WalkinRepository) DeleteSeatLine(ctx context.Context, orderID, lineID int64) error {
	return r.deleteLine(ctx, &domain.WalkinSeatLine{}, orderID, lineID)
}

func (r *WalkinRepository) deleteLine(ctx context.Context, model any, orderID, lineID int64) error {
	tx := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(model, lineID)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
