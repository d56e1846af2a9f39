package notifications

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/ports"
)

// LogSender writes notifications to the structured log instead of an external
// channel. It stands in for a push or email integration until one is wired.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a sender logging through the given logger.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger.With("component", "notification_sender")}
}

// Send logs the notification and always succeeds.
func (s *LogSender) Send(ctx context.Context, notification ports.Notification) error {
	s.logger.InfoContext(ctx, "notification sent",
		"type", notification.Type,
		"orderId", notification.OrderID,
		"recipientId", notification.RecipientID,
		"role", notification.Role,
	)
	return nil
}
