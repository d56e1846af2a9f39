package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// ErrNoCourierAvailable is the normal retryable dispatch outcome: every
// candidate in range was claimed by a concurrent dispatch, none were in
// range, or the geo query timed out. The order stays READY and the sweep
// re-attempts it.
var ErrNoCourierAvailable = errors.New("no courier available")

// dispatchActorID identifies the coordinator in status history entries.
const dispatchActorID = "system"

// DispatchConfig bounds the candidate search.
type DispatchConfig struct {
	// RadiusMeters caps how far a candidate courier may be from the
	// delivery point.
	RadiusMeters float64

	// CandidateLimit caps how many candidates one dispatch attempt walks.
	CandidateLimit int

	// GeoTimeout bounds the geo query. A timeout is treated as "no courier",
	// not an internal error.
	GeoTimeout time.Duration
}

// DefaultDispatchConfig returns the production search bounds.
func DefaultDispatchConfig() DispatchConfig {
	return DispatchConfig{
		RadiusMeters:   5000,
		CandidateLimit: 10,
		GeoTimeout:     3 * time.Second,
	}
}

// DispatchOrderCommandHandler finds the nearest available courier for a READY
// order and assigns it. The claim (availability true -> false) and the order
// transition are two separate single-document writes; when the transition
// fails after a successful claim, the claim is compensated with a release so
// the courier is not stranded unavailable. A failed release is escalated, not
// swallowed.
type DispatchOrderCommandHandler struct {
	orders   ports.OrderStore
	couriers ports.CourierStore
	selector services.CourierSelector
	notifier Notifier
	config   DispatchConfig
	logger   *slog.Logger
}

// NewDispatchOrderCommandHandler creates a handler for dispatch operations.
func NewDispatchOrderCommandHandler(
	orders ports.OrderStore,
	couriers ports.CourierStore,
	selector services.CourierSelector,
	notifier Notifier,
	config DispatchConfig,
	logger *slog.Logger,
) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		orders:   orders,
		couriers: couriers,
		selector: selector,
		notifier: notifier,
		config:   config,
		logger:   logger.With("component", "dispatch"),
	}
}

// Handle processes the dispatch command.
// Candidates are walked nearest-first; the first courier whose claim succeeds
// gets the order. Losing every claim race, finding nobody in range and the
// geo query timing out all resolve to ErrNoCourierAvailable.
func (h DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	candidates, err := h.findCandidates(ctx, o)
	if err != nil {
		return err
	}

	actor, err := order.NewActor(order.RoleDispatcher, dispatchActorID)
	if err != nil {
		return err
	}

	for _, candidate := range h.selector.Rank(candidates) {
		claimed, err := h.couriers.Claim(ctx, candidate.CourierID)
		if err != nil {
			return err
		}
		if !claimed {
			// Lost the race to a concurrent dispatch; next candidate.
			continue
		}

		if err := h.assign(ctx, o, candidate, actor); err != nil {
			return h.rollbackClaim(ctx, candidate.CourierID, err)
		}

		h.logger.InfoContext(ctx, "courier assigned",
			"order_id", o.ID().String(),
			"courier_id", candidate.CourierID.String(),
			"distance_meters", candidate.DistanceMeters)
		h.notifier.OrderStatusChanged(ctx, o, actor)
		return nil
	}

	h.notifier.DispatchFailed(ctx, o)
	return ErrNoCourierAvailable
}

// findCandidates runs the radius-bounded geo query under the configured
// timeout. A deadline hit means the index could not answer in time and the
// order simply waits for the next attempt.
func (h DispatchOrderCommandHandler) findCandidates(ctx context.Context, o *order.Order) ([]courier.Candidate, error) {
	geoCtx, cancel := context.WithTimeout(ctx, h.config.GeoTimeout)
	defer cancel()

	candidates, err := h.couriers.NearestAvailable(
		geoCtx, o.Address().Point(), h.config.RadiusMeters, h.config.CandidateLimit)
	if errors.Is(err, context.DeadlineExceeded) {
		h.logger.WarnContext(ctx, "geo query timed out",
			"order_id", o.ID().String(), "timeout", h.config.GeoTimeout)
		h.notifier.DispatchFailed(ctx, o)
		return nil, ErrNoCourierAvailable
	}
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

// assign snapshots the candidate onto the order and persists the
// READY -> OUT_FOR_DELIVERY transition conditionally.
func (h DispatchOrderCommandHandler) assign(ctx context.Context, o *order.Order, candidate courier.Candidate, actor order.Actor) error {
	assignment, err := order.NewCourierAssignment(
		candidate.CourierID, candidate.Name, candidate.Phone, candidate.Vehicle,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err := o.AssignCourier(assignment, actor, "courier assigned", time.Now().UTC()); err != nil {
		return err
	}

	return h.orders.UpdateIf(ctx, o)
}

// rollbackClaim releases a claimed courier after a failed assignment. When
// the release itself fails the courier is stuck unavailable with no order;
// that is an operational incident and both errors are escalated together.
func (h DispatchOrderCommandHandler) rollbackClaim(ctx context.Context, courierID kernel.UUID, cause error) error {
	if releaseErr := h.couriers.Release(ctx, courierID); releaseErr != nil {
		h.logger.ErrorContext(ctx, "failed to release courier after failed assignment",
			"courier_id", courierID.String(),
			"assignment_error", cause,
			"release_error", releaseErr)
		return errors.Join(cause, fmt.Errorf("release courier %s: %w", courierID, releaseErr))
	}
	return cause
}
