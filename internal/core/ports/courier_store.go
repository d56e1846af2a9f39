package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
)

// CourierStore is the durable storage for couriers plus the geo index over
// their last reported positions.
type CourierStore interface {
	// Add persists a new courier.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// UpdateLocation persists the courier's position and asserted
	// availability. This write is unconditional: the courier's own report is
	// always the freshest truth about where they are.
	UpdateLocation(ctx context.Context, aggregate *courier.Courier) error

	// NearestAvailable returns available couriers within radiusMeters of the
	// point, nearest first, at most limit of them. Ties at equal distance are
	// not ordered here; the CourierSelector applies the deterministic
	// tie-break.
	NearestAvailable(ctx context.Context, point kernel.GeoPoint, radiusMeters float64, limit int) ([]courier.Candidate, error)

	// Claim atomically flips the courier's availability from true to false.
	// Returns false without error when the flag was already false: the
	// courier was claimed by a concurrent dispatch and the caller moves on
	// to the next candidate.
	Claim(ctx context.Context, id kernel.UUID) (bool, error)

	// Release restores availability after a failed dispatch so the courier
	// is not stranded unavailable without work. A Release failure is
	// escalated by the caller, never swallowed.
	Release(ctx context.Context, id kernel.UUID) error
}
