package walkin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"salonpos/internal/domain"
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Service composes walk-in orders out of service, product and seat lines
// and runs their lifecycle. Each line add is atomic against its own ledger
// (stock or seat) but there is no transaction spanning all three; removing
// a line — or cancelling the order — replays the reverse of each committed
// side effect.
type Service struct {
	orders   OrderRepository
	catalog  CatalogResolver
	stock    StockLedger
	seats    SeatRegistry
	staff    StaffDirectory
	branches BranchDirectory
	notifs   NotificationSender
}

func NewService(
	orders OrderRepository,
	catalog CatalogResolver,
	stock StockLedger,
	seats SeatRegistry,
	staff StaffDirectory,
	branches BranchDirectory,
	notifs NotificationSender,
) *Service {
	return &Service{
		orders:   orders,
		catalog:  catalog,
		stock:    stock,
		seats:    seats,
		staff:    staff,
		branches: branches,
		notifs:   notifs,
	}
}

func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.WalkinOrder, error) {
	if _, err := s.branches.GetByID(ctx, req.BranchID); err != nil {
		return nil, err
	}

	order := &domain.WalkinOrder{
		BranchID:      req.BranchID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		PaymentMethod: req.PaymentMethod,
		Status:        domain.WalkinDraft,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder returns the fully resolved snapshot: lines with their stored
// price snapshots plus the recomputed totals.
func (s *Service) GetOrder(ctx context.Context, orderID int64) (*OrderView, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &OrderView{Order: order, Totals: ComputeTotals(order)}, nil
}

// Receipt returns the printable snapshot for an order in any state; a
// draft receipt is simply the running tab.
func (s *Service) Receipt(ctx context.Context, orderID int64) (*ReceiptView, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	branch, err := s.branches.GetByID(ctx, order.BranchID)
	if err != nil {
		return nil, err
	}
	return &ReceiptView{
		Order:         order,
		Totals:        ComputeTotals(order),
		BranchName:    branch.Name,
		BranchAddress: branch.Address,
		IssuedAt:      time.Now(),
	}, nil
}

func (s *Service) ListByBranch(ctx context.Context, branchID int64, limit, offset int) ([]OrderView, int64, error) {
	orders, total, err := s.orders.ListByBranch(ctx, branchID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, OrderView{Order: &orders[i], Totals: ComputeTotals(&orders[i])})
	}
	return views, total, nil
}

/* ---------- LINE COMPOSITION ---------- */

// AddServiceLine resolves and snapshots a service pricing tier. Staff
// assignment is optional at add time; when present, the staff member must
// hold the category's required role.
func (s *Service) AddServiceLine(ctx context.Context, orderID int64, req AddServiceLineRequest) (*domain.WalkinServiceLine, error) {
	order, err := s.editableOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	resolved, err := s.catalog.ResolveServiceTier(ctx, req.ServiceID, req.TierID)
	if err != nil {
		return nil, err
	}

	if req.StaffID != nil {
		if err := s.checkStaffRole(ctx, *req.StaffID, resolved.RequiredRole); err != nil {
			return nil, err
		}
	}

	line := &domain.WalkinServiceLine{
		OrderID:         order.ID,
		ServiceID:       resolved.ServiceID,
		TierID:          resolved.TierID,
		StaffID:         req.StaffID,
		ServiceName:     resolved.ServiceName,
		TierLabel:       resolved.TierLabel,
		DurationMinutes: resolved.DurationMinutes,
		Price:           resolved.Price,
		RequiredRole:    resolved.RequiredRole,
	}
	if err := s.orders.AddServiceLine(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

// AssignStaff sets or replaces the staff member on a service line,
// re-validated against the role snapshot taken at add time.
func (s *Service) AssignStaff(ctx context.Context, orderID, lineID, staffID int64) (*domain.WalkinServiceLine, error) {
	if _, err := s.editableOrder(ctx, orderID); err != nil {
		return nil, err
	}

	line, err := s.orders.GetServiceLine(ctx, orderID, lineID)
	if err != nil {
		return nil, err
	}

	if err := s.checkStaffRole(ctx, staffID, line.RequiredRole); err != nil {
		return nil, err
	}

	line.StaffID = &staffID
	if err := s.orders.UpdateServiceLine(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

// AddProductLine books stock and snapshots the unit price. Adding a product
// already on the order merges into the existing line: only the additional
// quantity is booked and the original price snapshot is kept.
func (s *Service) AddProductLine(ctx context.Context, orderID int64, req AddProductLineRequest) (*domain.WalkinProductLine, error) {
	order, err := s.editableOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	resolved, err := s.catalog.ResolveProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	existing, err := s.orders.FindProductLine(ctx, order.ID, resolved.ProductID)
	if err == nil {
		// a line released by cancellation holds nothing; rebook it in full
		bookQty := req.Quantity
		if existing.Released {
			bookQty += existing.Quantity
		}
		if _, err := s.stock.BookProduct(ctx, resolved.ProductID, bookQty); err != nil {
			return nil, err
		}
		existing.Quantity += req.Quantity
		existing.LineTotal = round2(existing.UnitPrice * float64(existing.Quantity))
		existing.Released = false
		if err := s.orders.UpdateProductLine(ctx, existing); err != nil {
			_ = s.stock.ReleaseBooked(ctx, resolved.ProductID, bookQty)
			return nil, err
		}
		return existing, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	if _, err := s.stock.BookProduct(ctx, resolved.ProductID, req.Quantity); err != nil {
		return nil, err
	}

	line := &domain.WalkinProductLine{
		OrderID:   order.ID,
		ProductID: resolved.ProductID,
		Name:      resolved.Name,
		Quantity:  req.Quantity,
		UnitPrice: resolved.Price,
		LineTotal: round2(resolved.Price * float64(req.Quantity)),
	}
	if err := s.orders.AddProductLine(ctx, line); err != nil {
		// compensate the booking so the draft stays removable
		_ = s.stock.ReleaseBooked(ctx, resolved.ProductID, req.Quantity)
		return nil, err
	}
	return line, nil
}

// AddSeatLine books an available seat and snapshots its hourly rate. The
// seat must belong to the order's branch.
func (s *Service) AddSeatLine(ctx context.Context, orderID int64, req AddSeatLineRequest) (*domain.WalkinSeatLine, error) {
	order, err := s.editableOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if req.DurationHours <= 0 {
		return nil, fmt.Errorf("seat %d: %w (got %d)", req.SeatID, ErrInvalidDuration, req.DurationHours)
	}

	resolved, err := s.catalog.ResolveSeat(ctx, req.SeatID)
	if err != nil {
		return nil, err
	}
	if resolved.BranchID != order.BranchID {
		return nil, fmt.Errorf("seat %d is in branch %d, order is in branch %d: %w",
			req.SeatID, resolved.BranchID, order.BranchID, ErrSeatWrongBranch)
	}

	if _, err := s.seats.BookSeat(ctx, req.SeatID); err != nil {
		return nil, err
	}

	line := &domain.WalkinSeatLine{
		OrderID:       order.ID,
		SeatID:        resolved.SeatID,
		SeatNumber:    resolved.SeatNumber,
		SeatType:      resolved.SeatType,
		DurationHours: req.DurationHours,
		HourlyRate:    resolved.HourlyRate,
		LineTotal:     round2(resolved.HourlyRate * float64(req.DurationHours)),
	}
	if err := s.orders.AddSeatLine(ctx, line); err != nil {
		_ = s.seats.FreeSeat(ctx, req.SeatID)
		return nil, err
	}
	return line, nil
}

/* ---------- LINE REMOVAL (compensating) ---------- */

func (s *Service) RemoveServiceLine(ctx context.Context, orderID, lineID int64) error {
	if _, err := s.editableOrder(ctx, orderID); err != nil {
		return err
	}
	return s.orders.DeleteServiceLine(ctx, orderID, lineID)
}

// RemoveProductLine releases the line's booked quantity before deleting it.
func (s *Service) RemoveProductLine(ctx context.Context, orderID, lineID int64) error {
	if _, err := s.editableOrder(ctx, orderID); err != nil {
		return err
	}

	line, err := s.orders.GetProductLine(ctx, orderID, lineID)
	if err != nil {
		return err
	}

	// a line released by an earlier cancellation holds no stock to return
	if !line.Released {
		if err := s.stock.ReleaseBooked(ctx, line.ProductID, line.Quantity); err != nil {
			return err
		}
	}
	return s.orders.DeleteProductLine(ctx, orderID, lineID)
}

// RemoveSeatLine frees the seat back to available before deleting the line.
func (s *Service) RemoveSeatLine(ctx context.Context, orderID, lineID int64) error {
	if _, err := s.editableOrder(ctx, orderID); err != nil {
		return err
	}

	line, err := s.orders.GetSeatLine(ctx, orderID, lineID)
	if err != nil {
		return err
	}

	// a released line's seat may long since belong to another order
	if !line.Released {
		if err := s.seats.FreeSeat(ctx, line.SeatID); err != nil {
			return err
		}
	}
	return s.orders.DeleteSeatLine(ctx, orderID, lineID)
}

/* ---------- LIFECYCLE ---------- */

// UpdateStatus applies a lifecycle transition. Moving to cancelled releases
// every committed product and seat line first; the reversal is part of the
// transition, not optional cleanup.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, to domain.WalkinStatus) (*OrderView, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(order.Status, to) {
		return nil, fmt.Errorf("order %d: %s -> %s: %w", orderID, order.Status, to, ErrIllegalTransition)
	}

	if to == domain.WalkinCancelled {
		if err := s.releaseCommitted(ctx, order); err != nil {
			return nil, err
		}
	}

	if err := s.orders.UpdateStatus(ctx, orderID, to); err != nil {
		return nil, err
	}

	updated, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	view := &OrderView{Order: updated, Totals: ComputeTotals(updated)}
	if s.notifs != nil {
		_ = s.notifs.NotifyOrderStatus(ctx, updated, view.Totals)
	}
	return view, nil
}

// UpdatePayment writes the reconciliation fields. Allowed in every state,
// including completed and cancelled.
func (s *Service) UpdatePayment(ctx context.Context, orderID int64, req UpdatePaymentRequest) (*OrderView, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	discount := order.Discount
	if req.Discount != nil {
		discount = *req.Discount
	}
	amountPaid := order.AmountPaid
	if req.AmountPaid != nil {
		amountPaid = *req.AmountPaid
	}
	method := order.PaymentMethod
	if req.PaymentMethod != nil {
		method = *req.PaymentMethod
	}

	if discount < 0 || amountPaid < 0 {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrInvalidPayment)
	}

	if err := s.orders.UpdatePayment(ctx, orderID, discount, amountPaid, method); err != nil {
		return nil, err
	}

	return s.GetOrder(ctx, orderID)
}

// releaseCommitted replays the reverse of every committed side effect on
// the order: booked stock is released, booked seats are freed. Each line is
// marked released as soon as its reversal lands, so cancelling an order
// that was reopened after an earlier cancellation never replays a release
// and never drains stock or seats held by other orders.
func (s *Service) releaseCommitted(ctx context.Context, order *domain.WalkinOrder) error {
	for i := range order.ProductLines {
		l := &order.ProductLines[i]
		if l.Released {
			continue
		}
		if err := s.stock.ReleaseBooked(ctx, l.ProductID, l.Quantity); err != nil {
			return fmt.Errorf("releasing product line %d: %w", l.ID, err)
		}
		l.Released = true
		if err := s.orders.UpdateProductLine(ctx, l); err != nil {
			return fmt.Errorf("marking product line %d released: %w", l.ID, err)
		}
	}
	for i := range order.SeatLines {
		l := &order.SeatLines[i]
		if l.Released {
			continue
		}
		if err := s.seats.FreeSeat(ctx, l.SeatID); err != nil {
			return fmt.Errorf("freeing seat line %d: %w", l.ID, err)
		}
		l.Released = true
		if err := s.orders.UpdateSeatLine(ctx, l); err != nil {
			return fmt.Errorf("marking seat line %d released: %w", l.ID, err)
		}
	}
	return nil
}

func (s *Service) editableOrder(ctx context.Context, orderID int64) (*domain.WalkinOrder, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !Editable(order.Status) {
		return nil, fmt.Errorf("order %d is %s: %w", orderID, order.Status, ErrOrderLocked)
	}
	return order, nil
}

func (s *Service) checkStaffRole(ctx context.Context, staffID int64, requiredRole string) error {
	staff, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		return err
	}
	if requiredRole != "" && staff.EmployeeRole != requiredRole {
		return fmt.Errorf("staff %d has role %q, category requires %q: %w",
			staffID, staff.EmployeeRole, requiredRole, ErrStaffRoleMismatch)
	}
	return nil
}
