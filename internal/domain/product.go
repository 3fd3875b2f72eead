package domain

import "time"

// Product is a retail item with tracked stock. InUseStock counts units
// committed to open walk-in orders or internal (non-sale) use. The invariant
// 0 <= InUseStock <= TotalStock is enforced on every write path.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Price       float64   `json:"price" validate:"gte=0"`
	TotalStock  int       `json:"total_stock"`
	InUseStock  int       `json:"in_use_stock"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AvailableStock is the sellable quantity. Always derived, never stored.
func (p *Product) AvailableStock() int {
	return p.TotalStock - p.InUseStock
}
