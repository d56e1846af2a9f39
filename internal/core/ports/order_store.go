// Package ports defines the contracts between the application core and
// infrastructure: the durable stores, the geo index, the event bus and the
// external notification senders. The stores offer per-document conditional
// updates only; nothing here spans two records transactionally.
package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderStore is the durable keyed storage for order aggregates.
type OrderStore interface {
	// Add persists a new order. The order number must be unique.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order by its human-readable number.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)

	// UpdateIf persists the aggregate's current state conditioned on the
	// stored version still matching the version the aggregate was read at.
	// Returns an error wrapping errs.ErrConflict when a concurrent writer
	// got there first; the caller re-reads and retries at most once.
	UpdateIf(ctx context.Context, aggregate *order.Order) error

	// FindByStatus retrieves up to limit orders in the given status, oldest
	// first. The dispatch sweep uses this to find READY orders to re-attempt.
	FindByStatus(ctx context.Context, status order.Status, limit int) ([]*order.Order, error)

	// CountByStatus returns the number of orders in the given status.
	CountByStatus(ctx context.Context, status order.Status) (int64, error)
}
