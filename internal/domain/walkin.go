package domain

import "time"

type WalkinStatus string

const (
	WalkinDraft      WalkinStatus = "draft"
	WalkinConfirmed  WalkinStatus = "confirmed"
	WalkinInProgress WalkinStatus = "in_progress"
	WalkinCompleted  WalkinStatus = "completed"
	WalkinCancelled  WalkinStatus = "cancelled"
)

// PaymentState is derived from amount paid vs total on every read. It is
// never persisted so it cannot desync from its inputs.
type PaymentState string

const (
	PaymentPending   PaymentState = "pending"
	PaymentPartially PaymentState = "partially paid"
	PaymentFull      PaymentState = "fully paid"
)

// WalkinOrder is an in-person transaction mixing services, retail products
// and seat time. Lines hold price snapshots taken at add time; later catalog
// edits never alter an existing order. Once completed or cancelled only the
// payment reconciliation fields may change.
type WalkinOrder struct {
	ID            int64        `json:"id"`
	BranchID      int64        `json:"branch_id" validate:"required"`
	CustomerName  string       `json:"customer_name"`
	CustomerPhone string       `json:"customer_phone,omitempty"`
	Status        WalkinStatus `json:"status"`
	Discount      float64      `json:"discount"`
	PaymentMethod string       `json:"payment_method,omitempty"`
	AmountPaid    float64      `json:"amount_paid"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`

	ServiceLines []WalkinServiceLine `json:"service_lines" gorm:"foreignKey:OrderID"`
	ProductLines []WalkinProductLine `json:"product_lines" gorm:"foreignKey:OrderID"`
	SeatLines    []WalkinSeatLine    `json:"seat_lines" gorm:"foreignKey:OrderID"`
}

// WalkinServiceLine snapshots a service pricing tier. RequiredRole is copied
// from the category at add time so staff reassignment can be re-validated
// without a catalog lookup.
type WalkinServiceLine struct {
	ID              int64   `json:"id"`
	OrderID         int64   `json:"order_id" gorm:"index"`
	ServiceID       int64   `json:"service_id"`
	TierID          int64   `json:"tier_id"`
	StaffID         *int64  `json:"staff_id,omitempty"`
	ServiceName     string  `json:"service_name"`
	TierLabel       string  `json:"tier_label"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
	RequiredRole    string  `json:"required_role,omitempty"`
}

// WalkinProductLine holds a booked stock quantity. Released records that
// the booking was already given back (the order was cancelled), so
// compensation for this line must not replay.
type WalkinProductLine struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"order_id" gorm:"index"`
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
	Released  bool    `json:"released"`
}

// WalkinSeatLine bills seat time: LineTotal = HourlyRate * DurationHours.
// Released marks a seat already freed by cancellation; a released line must
// never free the seat again, since another order may hold it by now.
type WalkinSeatLine struct {
	ID            int64    `json:"id"`
	OrderID       int64    `json:"order_id" gorm:"index"`
	SeatID        int64    `json:"seat_id"`
	SeatNumber    int      `json:"seat_number"`
	SeatType      SeatType `json:"seat_type"`
	DurationHours int      `json:"duration_hours"`
	HourlyRate    float64  `json:"hourly_rate"`
	LineTotal     float64  `json:"line_total"`
	Released      bool     `json:"released"`
}
