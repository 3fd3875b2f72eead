package walkin

import (
	"context"

	"salonpos/internal/domain"
	"salonpos/internal/modules/catalog"
)

// CatalogResolver is the read-only lookup used to price lines. Satisfied by
// catalog.Service.
type CatalogResolver interface {
	ResolveServiceTier(ctx context.Context, serviceID, tierID int64) (*catalog.ResolvedTier, error)
	ResolveProduct(ctx context.Context, productID int64) (*catalog.ResolvedProduct, error)
	ResolveSeat(ctx context.Context, seatID int64) (*catalog.ResolvedSeat, error)
}

// StockLedger commits and releases product quantities. Satisfied by
// stock.Ledger.
type StockLedger interface {
	BookProduct(ctx context.Context, productID int64, qty int) (*domain.Product, error)
	ReleaseBooked(ctx context.Context, productID int64, qty int) error
}

// SeatRegistry books and frees seats. Satisfied by seats.Registry.
type SeatRegistry interface {
	BookSeat(ctx context.Context, seatID int64) (*domain.Seat, error)
	FreeSeat(ctx context.Context, seatID int64) error
}

// StaffDirectory resolves assigned staff for the role check.
type StaffDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type BranchDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.Branch, error)
}

type OrderRepository interface {
	Create(ctx context.Context, o *domain.WalkinOrder) error
	GetByID(ctx context.Context, id int64) (*domain.WalkinOrder, error)
	ListByBranch(ctx context.Context, branchID int64, limit, offset int) ([]domain.WalkinOrder, int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.WalkinStatus) error
	UpdatePayment(ctx context.Context, id int64, discount, amountPaid float64, method string) error

	AddServiceLine(ctx context.Context, l *domain.WalkinServiceLine) error
	AddProductLine(ctx context.Context, l *domain.WalkinProductLine) error
	AddSeatLine(ctx context.Context, l *domain.WalkinSeatLine) error
	GetServiceLine(ctx context.Context, orderID, lineID int64) (*domain.WalkinServiceLine, error)
	GetProductLine(ctx context.Context, orderID, lineID int64) (*domain.WalkinProductLine, error)
	GetSeatLine(ctx context.Context, orderID, lineID int64) (*domain.WalkinSeatLine, error)
	FindProductLine(ctx context.Context, orderID, productID int64) (*domain.WalkinProductLine, error)
	UpdateProductLine(ctx context.Context, l *domain.WalkinProductLine) error
	UpdateServiceLine(ctx context.Context, l *domain.WalkinServiceLine) error
	UpdateSeatLine(ctx context.Context, l *domain.WalkinSeatLine) error
	DeleteServiceLine(ctx context.Context, orderID, lineID int64) error
	DeleteProductLine(ctx context.Context, orderID, lineID int64) error
	DeleteSeatLine(ctx context.Context, orderID, lineID int64) error
}

// NotificationSender receives finalized order snapshots. Optional; nil
// disables notifications.
type NotificationSender interface {
	NotifyOrderStatus(ctx context.Context, order *domain.WalkinOrder, totals Totals) error
}
