package notification

import (
	"context"
	"fmt"

	"salonpos/internal/domain"
	"salonpos/internal/modules/walkin"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, userID, id int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}

type StaffDirectory interface {
	List(ctx context.Context) ([]domain.User, error)
}

// Service persists notifications for the inbox and pushes live events to
// connected dashboards. It is plugged into the stock ledger, the seat
// registry and the walk-in composer as their optional sink.
type Service struct {
	repo  NotificationRepository
	staff StaffDirectory
	hub   *Hub
}

func NewService(repo NotificationRepository, staff StaffDirectory, hub *Hub) *Service {
	return &Service{repo: repo, staff: staff, hub: hub}
}

// NotifyLowStock stores an alert for every manager and admin and pushes a
// live event. Stock is shared across branches so the push is not scoped.
func (s *Service) NotifyLowStock(ctx context.Context, product *domain.Product) error {
	message := fmt.Sprintf("%s is down to %d units", product.Name, product.AvailableStock())

	recipients, err := s.staff.List(ctx)
	if err != nil {
		return err
	}
	for _, u := range recipients {
		if u.Role != domain.RoleAdmin && u.Role != domain.RoleManager {
			continue
		}
		n := &domain.Notification{
			UserID:  u.ID,
			Type:    domain.NotifLowStock,
			Title:   "Low stock",
			Message: message,
			Data:    map[string]any{"product_id": product.ID, "available": product.AvailableStock()},
		}
		if err := s.repo.Create(ctx, n); err != nil {
			return err
		}
		s.hub.SendToUser(u.ID, event("low_stock", n))
	}
	return nil
}

// SeatStatusChanged is a live-only event for branch dashboards, nothing is
// persisted.
func (s *Service) SeatStatusChanged(branchID int64, seat *domain.Seat) {
	s.hub.BroadcastBranch(branchID, event("seat_status", seat))
}

func (s *Service) NotifyOrderStatus(ctx context.Context, order *domain.WalkinOrder, totals walkin.Totals) error {
	var notifType domain.NotificationType
	switch order.Status {
	case domain.WalkinConfirmed:
		notifType = domain.NotifOrderConfirmed
	case domain.WalkinCompleted:
		notifType = domain.NotifOrderCompleted
	case domain.WalkinCancelled:
		notifType = domain.NotifOrderCancelled
	default:
		// draft and in_progress steps are dashboard noise, push only
		s.hub.BroadcastBranch(order.BranchID, event("order_status", orderEvent(order, totals)))
		return nil
	}

	// persist for the staff assigned on the order's service lines
	seen := map[int64]bool{}
	for _, l := range order.ServiceLines {
		if l.StaffID == nil || seen[*l.StaffID] {
			continue
		}
		seen[*l.StaffID] = true
		n := &domain.Notification{
			UserID:  *l.StaffID,
			Type:    notifType,
			Title:   fmt.Sprintf("Order #%d %s", order.ID, order.Status),
			Message: fmt.Sprintf("%s for %s", l.ServiceName, order.CustomerName),
			Data:    map[string]any{"order_id": order.ID},
		}
		if err := s.repo.Create(ctx, n); err != nil {
			return err
		}
	}

	s.hub.BroadcastBranch(order.BranchID, event("order_status", orderEvent(order, totals)))
	return nil
}

func (s *Service) GetUserNotifications(ctx context.Context, userID int64, limit int) ([]domain.Notification, int64, error) {
	list, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return list, unread, nil
}

func (s *Service) MarkAsRead(ctx context.Context, userID, id int64) error {
	return s.repo.MarkRead(ctx, userID, id)
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func event(kind string, payload any) map[string]any {
	return map[string]any{"type": kind, "payload": payload}
}

func orderEvent(order *domain.WalkinOrder, totals walkin.Totals) map[string]any {
	return map[string]any{
		"order_id":       order.ID,
		"branch_id":      order.BranchID,
		"status":         order.Status,
		"total":          totals.Total,
		"due_amount":     totals.DueAmount,
		"payment_status": totals.PaymentState,
	}
}
