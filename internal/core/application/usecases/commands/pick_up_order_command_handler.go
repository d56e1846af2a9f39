package commands

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// PickUpOrderCommandHandler stamps the pickup time on an out-for-delivery
// order's assignment.
type PickUpOrderCommandHandler struct {
	orders   ports.OrderStore
	notifier Notifier
}

// NewPickUpOrderCommandHandler creates a handler for pickup reports.
func NewPickUpOrderCommandHandler(orders ports.OrderStore, notifier Notifier) PickUpOrderCommandHandler {
	return PickUpOrderCommandHandler{
		orders:   orders,
		notifier: notifier,
	}
}

// Handle processes the pickup command.
func (h PickUpOrderCommandHandler) Handle(ctx context.Context, cmd PickUpOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	actor, err := order.NewActor(order.RoleCourier, cmd.CourierID().String())
	if err != nil {
		return err
	}

	updated, err := h.apply(ctx, cmd, actor)
	if errors.Is(err, errs.ErrConflict) {
		updated, err = h.apply(ctx, cmd, actor)
	}
	if err != nil {
		return err
	}

	h.notifier.OrderPickedUp(ctx, updated)
	return nil
}

func (h PickUpOrderCommandHandler) apply(ctx context.Context, cmd PickUpOrderCommand, actor order.Actor) (*order.Order, error) {
	o, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err := o.MarkPickedUp(actor, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := h.orders.UpdateIf(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}
