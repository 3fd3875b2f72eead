package walkin

import (
	"time"

	"salonpos/internal/domain"
)

type CreateOrderRequest struct {
	BranchID      int64  `json:"branch_id" validate:"required"`
	CustomerName  string `json:"customer_name" validate:"required"`
	CustomerPhone string `json:"customer_phone"`
	PaymentMethod string `json:"payment_method"`
}

type AddServiceLineRequest struct {
	ServiceID int64  `json:"service_id" validate:"required"`
	TierID    int64  `json:"tier_id" validate:"required"`
	StaffID   *int64 `json:"staff_id"`
}

type AddProductLineRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

type AddSeatLineRequest struct {
	SeatID        int64 `json:"seat_id" validate:"required"`
	DurationHours int   `json:"duration_hours" validate:"required,gt=0"`
}

type AssignStaffRequest struct {
	StaffID int64 `json:"staff_id" validate:"required"`
}

type UpdateStatusRequest struct {
	Status domain.WalkinStatus `json:"status" validate:"required"`
}

type UpdatePaymentRequest struct {
	Discount      *float64 `json:"discount"`
	AmountPaid    *float64 `json:"amount_paid"`
	PaymentMethod *string  `json:"payment_method"`
}

// OrderView is the fully resolved snapshot exposed to callers: every line
// total and the derived payment summary, with no further catalog lookups
// needed to render a receipt.
type OrderView struct {
	Order  *domain.WalkinOrder `json:"order"`
	Totals Totals              `json:"totals"`
}

// ReceiptView is the printable snapshot: the resolved order plus branch
// header details. Rendering is up to the caller.
type ReceiptView struct {
	Order         *domain.WalkinOrder `json:"order"`
	Totals        Totals              `json:"totals"`
	BranchName    string              `json:"branch_name"`
	BranchAddress string              `json:"branch_address,omitempty"`
	IssuedAt      time.Time           `json:"issued_at"`
}
