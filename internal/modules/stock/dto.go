package stock

import "salonpos/internal/domain"

type QuantityRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

type SetInUseRequest struct {
	InUseStock int `json:"in_use_stock" validate:"gte=0"`
}

type SetTotalRequest struct {
	TotalStock int `json:"total_stock" validate:"gte=0"`
}

// StockView serializes a ledger row with the derived available quantity.
type StockView struct {
	ProductID      int64  `json:"product_id"`
	Name           string `json:"name"`
	TotalStock     int    `json:"total_stock"`
	InUseStock     int    `json:"in_use_stock"`
	AvailableStock int    `json:"available_stock"`
}

func toStockView(p *domain.Product) StockView {
	return StockView{
		ProductID:      p.ID,
		Name:           p.Name,
		TotalStock:     p.TotalStock,
		InUseStock:     p.InUseStock,
		AvailableStock: p.AvailableStock(),
	}
}
