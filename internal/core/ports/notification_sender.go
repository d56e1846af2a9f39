package ports

import (
	"context"
	"time"
)

// Notification is the bit-exact contract a push/email sender integrates
// against. One notification addresses one recipient; the relay fans a state
// change out into one Notification per interested party.
type Notification struct {
	Type        string         `json:"type"`
	OrderID     string         `json:"orderId"`
	OrderNumber string         `json:"orderNumber"`
	RecipientID string         `json:"recipientId"`
	Role        string         `json:"role"`
	Data        map[string]any `json:"data"`
	Timestamp   time.Time      `json:"timestamp"`
}

// NotificationSender is an external fire-and-forget delivery channel (push,
// email). Send failures are captured per recipient and never abort delivery
// to the remaining recipients.
type NotificationSender interface {
	Send(ctx context.Context, notification Notification) error
}
