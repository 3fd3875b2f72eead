package domain

import "time"

type NotificationType string

const (
	NotifOrderConfirmed NotificationType = "order_confirmed"
	NotifOrderCompleted NotificationType = "order_completed"
	NotifOrderCancelled NotificationType = "order_cancelled"
	NotifLowStock       NotificationType = "low_stock"
)

type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message,omitempty"`
	IsRead    bool             `json:"is_read"`
	Data      any              `json:"data,omitempty" gorm:"serializer:json"`
	CreatedAt time.Time        `json:"created_at"`
}
