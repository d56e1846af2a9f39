// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, conditional persistence
// and best-effort notification.
package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/order"
)

// Notifier is the fan-out side effect of a successful state change. Delivery
// is best-effort: the state change has already been persisted by the time a
// notifier method runs, so notification failures are captured and logged by
// the implementation, never surfaced to the command's caller.
type Notifier interface {
	// OrderPlaced announces a freshly placed order to the customer and the
	// operator broadcast channel.
	OrderPlaced(ctx context.Context, o *order.Order)

	// OrderStatusChanged announces a status transition to the customer, the
	// assigned courier when there is one, and the order's tracking channel.
	OrderStatusChanged(ctx context.Context, o *order.Order, actor order.Actor)

	// OrderPickedUp announces the pickup timestamp on the order's tracking
	// channel. The status does not change.
	OrderPickedUp(ctx context.Context, o *order.Order)

	// DispatchFailed tells the operator channel that no courier could be
	// found for a ready order.
	DispatchFailed(ctx context.Context, o *order.Order)

	// CourierLocationUpdated republishes a courier's position report on the
	// courier's own channel.
	CourierLocationUpdated(ctx context.Context, c *courier.Courier)
}
