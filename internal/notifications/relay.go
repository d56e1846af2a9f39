// Package notifications turns order lifecycle changes into bus events and
// external notifications. Everything here is best-effort by contract: the
// state change has already been persisted when the relay runs, so failures
// are logged and swallowed, never propagated back to the write path.
package notifications

import (
	"context"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// Event and notification type names shared with clients.
const (
	TypeOrderPlaced        = "order.placed"
	TypeOrderStatusChanged = "order.status_changed"
	TypeOrderPickedUp      = "order.picked_up"
	TypeDispatchFailed     = "dispatch.failed"
	TypeCourierLocation    = "courier.location_updated"
)

// operatorRole is the broadcast audience for back-office notifications.
const operatorRole = "operator"

// Relay fans one state change out to every interested party: the bus topics
// for connected clients and the external sender for push/email. One failed
// recipient never blocks the others.
type Relay struct {
	bus    ports.EventPublisher
	sender ports.NotificationSender
	logger *slog.Logger
}

// NewRelay creates a Relay publishing to the given bus and external sender.
func NewRelay(bus ports.EventPublisher, sender ports.NotificationSender, logger *slog.Logger) *Relay {
	return &Relay{
		bus:    bus,
		sender: sender,
		logger: logger.With("component", "notification_relay"),
	}
}

// OrderPlaced announces a new order to the customer, the operator broadcast
// and the order's tracking channel.
func (r *Relay) OrderPlaced(ctx context.Context, o *order.Order) {
	payload := map[string]any{
		"orderId":     o.ID().String(),
		"orderNumber": o.Number(),
		"status":      o.Status().String(),
		"finalAmount": o.Pricing().FinalAmount().String(),
	}
	r.publish(ctx, TypeOrderPlaced, payload,
		ports.UserTopic(o.CustomerID().String()),
		ports.RoleTopic(operatorRole),
		ports.OrderTopic(o.ID().String()),
	)

	r.send(ctx, buildNotification(TypeOrderPlaced, o, o.CustomerID().String(), "customer", payload))
	r.send(ctx, buildNotification(TypeOrderPlaced, o, "", operatorRole, payload))
}

// OrderStatusChanged announces a transition to the customer, the assigned
// courier when there is one, and the order's tracking channel.
func (r *Relay) OrderStatusChanged(ctx context.Context, o *order.Order, actor order.Actor) {
	payload := map[string]any{
		"orderId":     o.ID().String(),
		"orderNumber": o.Number(),
		"status":      o.Status().String(),
		"actor":       actor.String(),
	}

	topics := []string{
		ports.UserTopic(o.CustomerID().String()),
		ports.OrderTopic(o.ID().String()),
	}
	if assignment := o.Assignment(); assignment != nil {
		topics = append(topics, ports.UserTopic(assignment.CourierID().String()))
	}
	r.publish(ctx, TypeOrderStatusChanged, payload, topics...)

	r.send(ctx, buildNotification(TypeOrderStatusChanged, o, o.CustomerID().String(), "customer", payload))
	if assignment := o.Assignment(); assignment != nil {
		r.send(ctx, buildNotification(TypeOrderStatusChanged, o, assignment.CourierID().String(), "courier", payload))
	}
}

// OrderPickedUp announces the pickup on the tracking and customer channels.
func (r *Relay) OrderPickedUp(ctx context.Context, o *order.Order) {
	payload := map[string]any{
		"orderId":     o.ID().String(),
		"orderNumber": o.Number(),
	}
	if assignment := o.Assignment(); assignment != nil && assignment.PickedUpAt() != nil {
		payload["pickedUpAt"] = assignment.PickedUpAt().Format(time.RFC3339)
	}

	r.publish(ctx, TypeOrderPickedUp, payload,
		ports.UserTopic(o.CustomerID().String()),
		ports.OrderTopic(o.ID().String()),
	)
	r.send(ctx, buildNotification(TypeOrderPickedUp, o, o.CustomerID().String(), "customer", payload))
}

// DispatchFailed tells the operators a ready order found no courier.
func (r *Relay) DispatchFailed(ctx context.Context, o *order.Order) {
	payload := map[string]any{
		"orderId":     o.ID().String(),
		"orderNumber": o.Number(),
	}
	r.publish(ctx, TypeDispatchFailed, payload, ports.RoleTopic(operatorRole))
	r.send(ctx, buildNotification(TypeDispatchFailed, o, "", operatorRole, payload))
}

// CourierLocationUpdated republishes a position report on the courier's own
// channel. No external notification; nobody wants a push per GPS ping.
func (r *Relay) CourierLocationUpdated(ctx context.Context, c *courier.Courier) {
	r.publish(ctx, TypeCourierLocation, map[string]any{
		"courierId": c.ID().String(),
		"latitude":  c.Location().Latitude(),
		"longitude": c.Location().Longitude(),
		"available": c.IsAvailable(),
	}, ports.UserTopic(c.ID().String()))
}

// publish sends one event per topic, logging and continuing on failure.
func (r *Relay) publish(ctx context.Context, eventType string, payload map[string]any, topics ...string) {
	now := time.Now().UTC()
	for _, topic := range topics {
		event := ports.Event{
			Topic:     topic,
			Type:      eventType,
			Payload:   payload,
			Timestamp: now,
		}
		if err := r.bus.Publish(ctx, event); err != nil {
			r.logger.WarnContext(ctx, "event publish failed",
				"topic", topic, "type", eventType, "error", err)
		}
	}
}

// send hands one notification to the external sender. Failures are captured
// per recipient.
func (r *Relay) send(ctx context.Context, n ports.Notification) {
	if err := r.sender.Send(ctx, n); err != nil {
		r.logger.WarnContext(ctx, "notification send failed",
			"type", n.Type, "recipient_id", n.RecipientID, "role", n.Role, "error", err)
	}
}

func buildNotification(notificationType string, o *order.Order, recipientID, role string, data map[string]any) ports.Notification {
	return ports.Notification{
		Type:        notificationType,
		OrderID:     o.ID().String(),
		OrderNumber: o.Number(),
		RecipientID: recipientID,
		Role:        role,
		Data:        data,
		Timestamp:   time.Now().UTC(),
	}
}
