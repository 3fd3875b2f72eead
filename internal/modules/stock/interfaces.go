package stock

import (
	"context"

	"salonpos/internal/domain"
)

// ProductRepository defines the ledger's storage operations. The
// conditional mutations carry their invariant guard inside the statement;
// a false return means the guard rejected the write and the returned row
// holds the current quantities for the error message.
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Book(ctx context.Context, id int64, qty int) (bool, *domain.Product, error)
	Release(ctx context.Context, id int64, qty int) error
	SetInUse(ctx context.Context, id int64, inUse int) (bool, *domain.Product, error)
	SetTotal(ctx context.Context, id int64, total int) (bool, *domain.Product, error)
}

// NotificationSender receives low-stock alerts. Optional; a nil sender
// disables alerts.
type NotificationSender interface {
	NotifyLowStock(ctx context.Context, product *domain.Product) error
}
