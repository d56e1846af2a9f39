package commands

import (
	"context"

	"fooddelivery/internal/core/ports"
)

// UpdateCourierLocationCommandHandler persists courier position reports.
// The write is unconditional: the courier's own report is always the
// freshest truth about where they are and whether they want work.
type UpdateCourierLocationCommandHandler struct {
	couriers ports.CourierStore
	notifier Notifier
}

// NewUpdateCourierLocationCommandHandler creates a handler for position reports.
func NewUpdateCourierLocationCommandHandler(couriers ports.CourierStore, notifier Notifier) UpdateCourierLocationCommandHandler {
	return UpdateCourierLocationCommandHandler{
		couriers: couriers,
		notifier: notifier,
	}
}

// Handle processes the position report.
func (h UpdateCourierLocationCommandHandler) Handle(ctx context.Context, cmd UpdateCourierLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	c, err := h.couriers.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err := c.UpdateLocation(cmd.Location(), cmd.Available()); err != nil {
		return err
	}

	if err := h.couriers.UpdateLocation(ctx, c); err != nil {
		return err
	}

	h.notifier.CourierLocationUpdated(ctx, c)
	return nil
}
