package repository

import (
	"context"

	"salonpos/internal/domain"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.ServiceCategory) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CategoryRepository) Update(ctx context.Context, c *domain.ServiceCategory) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceCategory, error) {
	var c domain.ServiceCategory
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.ServiceCategory, error) {
	var categories []domain.ServiceCategory
	if err := r.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.ServiceCategory{}, id).Error
}

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ServiceRepository) Update(ctx context.Context, s *domain.Service) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// GetByID loads a service with its category and its own pricing tiers, so
// tier lookups can be answered from the service's tier list alone.
func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	var s domain.Service
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Tiers").
		First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceRepository) List(ctx context.Context, activeOnly bool) ([]domain.Service, error) {
	var services []domain.Service
	q := r.db.WithContext(ctx).Preload("Category").Preload("Tiers").Order("name")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	if err := q.Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Service{}, id).Error
}

func (r *ServiceRepository) CreateTier(ctx context.Context, t *domain.PricingTier) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *ServiceRepository) DeleteTier(ctx context.Context, serviceID, tierID int64) error {
	tx := r.db.WithContext(ctx).
		Where("service_id = ?", serviceID).
		Delete(&domain.PricingTier{}, tierID)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
