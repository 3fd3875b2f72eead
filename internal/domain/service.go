package domain

import "time"

// ServiceCategory groups services. RequiredRole, when set, constrains which
// employee role may be assigned to perform services of this category.
type ServiceCategory struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name" validate:"required"`
	RequiredRole string    `json:"required_role,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Service struct {
	ID          int64     `json:"id"`
	CategoryID  int64     `json:"category_id" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Category *ServiceCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Tiers    []PricingTier    `json:"tiers,omitempty" gorm:"foreignKey:ServiceID"`
}

// PricingTier is one duration/price option of a service. A tier referenced
// by a committed order line is never mutated; order lines keep their own
// price snapshot regardless.
type PricingTier struct {
	ID              int64     `json:"id"`
	ServiceID       int64     `json:"service_id"`
	Label           string    `json:"label"`
	DurationMinutes int       `json:"duration_minutes" validate:"gt=0"`
	Price           float64   `json:"price" validate:"gte=0"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
