package catalog

import (
	"context"
	"errors"
	"fmt"

	"salonpos/internal/domain"
	"salonpos/internal/repository"

	"gorm.io/gorm"
)

// Service is the sellable-items catalog: CRUD for categories, services,
// pricing tiers and products, plus the read-only resolution API used to
// price walk-in order lines. Resolution performs no mutation.
type Service struct {
	categories *repository.CategoryRepository
	services   *repository.ServiceRepository
	products   *repository.ProductRepository
	seats      *repository.SeatRepository
}

func NewService(
	categories *repository.CategoryRepository,
	services *repository.ServiceRepository,
	products *repository.ProductRepository,
	seats *repository.SeatRepository,
) *Service {
	return &Service{categories, services, products, seats}
}

/* ---------- RESOLUTION ---------- */

// ResolveServiceTier prices a service + tier pair. The tier is matched
// against the service's own tier list, not looked up globally, so a tier id
// belonging to a different service never resolves.
func (s *Service) ResolveServiceTier(ctx context.Context, serviceID, tierID int64) (*ResolvedTier, error) {
	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, notFound("service", serviceID, err)
	}

	var tier *domain.PricingTier
	for i := range svc.Tiers {
		if svc.Tiers[i].ID == tierID {
			tier = &svc.Tiers[i]
			break
		}
	}
	if tier == nil {
		return nil, fmt.Errorf("tier %d does not belong to service %d: %w", tierID, serviceID, ErrNotFound)
	}

	resolved := &ResolvedTier{
		ServiceID:       svc.ID,
		TierID:          tier.ID,
		CategoryID:      svc.CategoryID,
		ServiceName:     svc.Name,
		TierLabel:       tier.Label,
		DurationMinutes: tier.DurationMinutes,
		Price:           tier.Price,
	}
	if svc.Category != nil {
		resolved.RequiredRole = svc.Category.RequiredRole
	}
	return resolved, nil
}

// ResolveProduct returns a product's price and derived available stock.
func (s *Service) ResolveProduct(ctx context.Context, productID int64) (*ResolvedProduct, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, notFound("product", productID, err)
	}

	return &ResolvedProduct{
		ProductID:      p.ID,
		Name:           p.Name,
		Price:          p.Price,
		AvailableStock: p.AvailableStock(),
	}, nil
}

// ResolveSeat returns a seat's type, branch and billing rate.
func (s *Service) ResolveSeat(ctx context.Context, seatID int64) (*ResolvedSeat, error) {
	seat, err := s.seats.GetByID(ctx, seatID)
	if err != nil {
		return nil, notFound("seat", seatID, err)
	}

	return &ResolvedSeat{
		SeatID:     seat.ID,
		BranchID:   seat.BranchID,
		SeatNumber: seat.SeatNumber,
		SeatType:   seat.SeatType,
		Status:     seat.Status,
		HourlyRate: seat.HourlyRate,
	}, nil
}

/* ---------- CATEGORIES ---------- */

func (s *Service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*domain.ServiceCategory, error) {
	c := &domain.ServiceCategory{Name: req.Name, RequiredRole: req.RequiredRole}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.ServiceCategory, error) {
	return s.categories.List(ctx)
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	return s.categories.Delete(ctx, id)
}

/* ---------- SERVICES & TIERS ---------- */

func (s *Service) CreateService(ctx context.Context, req CreateServiceRequest) (*domain.Service, error) {
	if _, err := s.categories.GetByID(ctx, req.CategoryID); err != nil {
		return nil, notFound("category", req.CategoryID, err)
	}

	svc := &domain.Service{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) UpdateService(ctx context.Context, id int64, req UpdateServiceRequest) (*domain.Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("service", id, err)
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := s.services.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("service", id, err)
	}
	return svc, nil
}

func (s *Service) ListServices(ctx context.Context, activeOnly bool) ([]domain.Service, error) {
	return s.services.List(ctx, activeOnly)
}

func (s *Service) DeleteService(ctx context.Context, id int64) error {
	return s.services.Delete(ctx, id)
}

// AddTier appends a pricing tier to a service. Tiers are append-only:
// committed order lines snapshot their price, and the absence of a tier
// update endpoint keeps referenced tiers immutable.
func (s *Service) AddTier(ctx context.Context, serviceID int64, req CreateTierRequest) (*domain.PricingTier, error) {
	if _, err := s.services.GetByID(ctx, serviceID); err != nil {
		return nil, notFound("service", serviceID, err)
	}

	tier := &domain.PricingTier{
		ServiceID:       serviceID,
		Label:           req.Label,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
	}
	if err := s.services.CreateTier(ctx, tier); err != nil {
		return nil, err
	}
	return tier, nil
}

func (s *Service) RemoveTier(ctx context.Context, serviceID, tierID int64) error {
	err := s.services.DeleteTier(ctx, serviceID, tierID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("tier %d does not belong to service %d: %w", tierID, serviceID, ErrNotFound)
	}
	return err
}

/* ---------- PRODUCTS ---------- */

func (s *Service) CreateProduct(ctx context.Context, req CreateProductRequest) (*domain.Product, error) {
	p := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		TotalStock:  req.TotalStock,
		Active:      true,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, req UpdateProductRequest) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("product", id, err)
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Active != nil {
		p.Active = *req.Active
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("product", id, err)
	}
	return p, nil
}

func (s *Service) ListProducts(ctx context.Context, activeOnly bool) ([]domain.Product, error) {
	return s.products.List(ctx, activeOnly)
}

func notFound(kind string, id int64, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
	}
	return err
}
