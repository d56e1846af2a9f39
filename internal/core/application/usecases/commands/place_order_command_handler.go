package commands

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// PlaceOrderCommandHandler handles the business logic for order placement.
// Generates the human-readable order number, computes the pricing block from
// the line items and persists the order in PENDING status.
type PlaceOrderCommandHandler struct {
	orders   ports.OrderStore
	numbers  *order.NumberGenerator
	notifier Notifier
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
func NewPlaceOrderCommandHandler(
	orders ports.OrderStore,
	numbers *order.NumberGenerator,
	notifier Notifier,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		orders:   orders,
		numbers:  numbers,
		notifier: notifier,
	}
}

// Handle processes the order placement command and returns the new order.
// The number generator is only unique within this process; when the store's
// unique index rejects the number, one retry with a fresh number covers the
// cross-process collision.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	placedBy, err := order.NewActor(order.RoleCustomer, cmd.CustomerID().String())
	if err != nil {
		return nil, err
	}

	newOrder, err := h.place(ctx, cmd, placedBy)
	if errors.Is(err, errs.ErrConflict) {
		newOrder, err = h.place(ctx, cmd, placedBy)
	}
	if err != nil {
		return nil, err
	}

	h.notifier.OrderPlaced(ctx, newOrder)
	return newOrder, nil
}

func (h PlaceOrderCommandHandler) place(ctx context.Context, cmd PlaceOrderCommand, placedBy order.Actor) (*order.Order, error) {
	newOrder, err := order.NewOrder(
		kernel.NewUUID(),
		h.numbers.Next(),
		cmd.CustomerID(),
		cmd.Items(),
		cmd.Address(),
		cmd.Payment(),
		cmd.DeliveryFee(),
		cmd.Tax(),
		cmd.Discount(),
		placedBy,
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	if err := h.orders.Add(ctx, newOrder); err != nil {
		return nil, err
	}
	return newOrder, nil
}
