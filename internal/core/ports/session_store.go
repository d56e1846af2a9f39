package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/session"
)

// SessionStore is the durable storage for delivery sessions. The store
// enforces the one-open-session-per-courier invariant with a unique
// constraint, not application logic.
type SessionStore interface {
	// Add persists a new session. Fails when the courier already has an
	// open session.
	Add(ctx context.Context, aggregate *session.DeliverySession) error

	// Get retrieves a session by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*session.DeliverySession, error)

	// GetOpenByCourier retrieves the courier's open session. Returns an
	// error wrapping errs.ErrObjectNotFound when the courier has none.
	GetOpenByCourier(ctx context.Context, courierID kernel.UUID) (*session.DeliverySession, error)

	// UpdateIf persists the aggregate's current state conditioned on the
	// stored version still matching the version the aggregate was read at.
	// Returns an error wrapping errs.ErrConflict when a concurrent writer
	// got there first.
	UpdateIf(ctx context.Context, aggregate *session.DeliverySession) error
}
