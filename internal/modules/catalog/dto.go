package catalog

import "salonpos/internal/domain"

type CreateCategoryRequest struct {
	Name         string `json:"name" validate:"required"`
	RequiredRole string `json:"required_role"`
}

type CreateServiceRequest struct {
	CategoryID  int64  `json:"category_id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type UpdateServiceRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

type CreateTierRequest struct {
	Label           string  `json:"label" validate:"required"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,gt=0"`
	Price           float64 `json:"price" validate:"gte=0"`
}

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	TotalStock  int     `json:"total_stock" validate:"gte=0"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Active      *bool    `json:"active"`
}

/* ---------- resolution results ---------- */

// ResolvedTier is the priced view of a service + tier pair used to build a
// walk-in service line.
type ResolvedTier struct {
	ServiceID       int64
	TierID          int64
	CategoryID      int64
	ServiceName     string
	TierLabel       string
	DurationMinutes int
	Price           float64
	RequiredRole    string
}

type ResolvedProduct struct {
	ProductID      int64
	Name           string
	Price          float64
	AvailableStock int
}

type ResolvedSeat struct {
	SeatID     int64
	BranchID   int64
	SeatNumber int
	SeatType   domain.SeatType
	Status     domain.SeatStatus
	HourlyRate float64
}
