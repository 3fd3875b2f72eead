package stock

import (
	"context"
	"fmt"

	"salonpos/internal/domain"
)

// lowStockThreshold triggers an advisory notification when the available
// quantity drops to or below it after a booking.
const lowStockThreshold = 5

// Ledger owns the stock invariant for products:
// 0 <= inUseStock <= totalStock, availableStock = totalStock - inUseStock.
// Every mutation is a per-product atomic conditional update, so concurrent
// bookings cannot both pass capacity on a stale read.
type Ledger struct {
	products ProductRepository
	notifs   NotificationSender
}

func NewLedger(products ProductRepository, notifs NotificationSender) *Ledger {
	return &Ledger{products: products, notifs: notifs}
}

// BookProduct commits qty units of a product to an order or internal use.
func (l *Ledger) BookProduct(ctx context.Context, productID int64, qty int) (*domain.Product, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("product %d: %w (got %d)", productID, ErrInvalidQuantity, qty)
	}

	ok, current, err := l.products.Book(ctx, productID, qty)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("product %d: only %d units available (requested %d): %w",
			productID, current.AvailableStock(), qty, ErrInsufficientStock)
	}

	p, err := l.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if l.notifs != nil && p.AvailableStock() <= lowStockThreshold {
		_ = l.notifs.NotifyLowStock(ctx, p)
	}

	return p, nil
}

// ReleaseBooked returns qty previously committed units. The stored value is
// floored at zero; a non-positive qty is rejected and changes nothing.
func (l *Ledger) ReleaseBooked(ctx context.Context, productID int64, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("product %d: %w (got %d)", productID, ErrInvalidQuantity, qty)
	}
	return l.products.Release(ctx, productID, qty)
}

// MarkAsInUse commits a single unit for internal consumption.
func (l *Ledger) MarkAsInUse(ctx context.Context, productID int64) (*domain.Product, error) {
	return l.BookProduct(ctx, productID, 1)
}

// ReturnFromUse releases a single internally consumed unit.
func (l *Ledger) ReturnFromUse(ctx context.Context, productID int64) error {
	return l.ReleaseBooked(ctx, productID, 1)
}

// SetInUseStock writes an absolute in-use value (admin edits). Equality with
// total stock is allowed; anything above it is rejected.
func (l *Ledger) SetInUseStock(ctx context.Context, productID int64, inUse int) (*domain.Product, error) {
	if inUse < 0 {
		return nil, fmt.Errorf("product %d: %w (got %d)", productID, ErrInvalidQuantity, inUse)
	}

	ok, current, err := l.products.SetInUse(ctx, productID, inUse)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("product %d: in-use %d exceeds total stock %d: %w",
			productID, inUse, current.TotalStock, ErrExceedsTotalStock)
	}

	return l.products.GetByID(ctx, productID)
}

// SetTotalStock writes an absolute total. A total below the committed
// in-use stock is rejected outright; the caller has to release stock
// first. Clamping in-use down instead would fabricate a release that
// never happened.
func (l *Ledger) SetTotalStock(ctx context.Context, productID int64, total int) (*domain.Product, error) {
	if total < 0 {
		return nil, fmt.Errorf("product %d: %w (got %d)", productID, ErrInvalidQuantity, total)
	}

	ok, current, err := l.products.SetTotal(ctx, productID, total)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("product %d: new total %d is below committed in-use stock %d, release stock first: %w",
			productID, total, current.InUseStock, ErrExceedsTotalStock)
	}

	return l.products.GetByID(ctx, productID)
}

// GetProduct returns the current ledger row for a product.
func (l *Ledger) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	return l.products.GetByID(ctx, productID)
}
