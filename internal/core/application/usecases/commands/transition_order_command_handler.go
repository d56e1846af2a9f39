package commands

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// TransitionOrderCommandHandler applies READY and CANCELLED transitions.
// The write is conditioned on the version the order was read at; a lost race
// is re-read and retried exactly once, so a concurrent transition that makes
// this one illegal surfaces as ErrInvalidTransition rather than a conflict.
type TransitionOrderCommandHandler struct {
	orders   ports.OrderStore
	notifier Notifier
}

// NewTransitionOrderCommandHandler creates a handler for direct transitions.
func NewTransitionOrderCommandHandler(orders ports.OrderStore, notifier Notifier) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		orders:   orders,
		notifier: notifier,
	}
}

// Handle processes the transition command.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	updated, err := h.apply(ctx, cmd)
	if errors.Is(err, errs.ErrConflict) {
		updated, err = h.apply(ctx, cmd)
	}
	if err != nil {
		return err
	}

	h.notifier.OrderStatusChanged(ctx, updated, cmd.Actor())
	return nil
}

func (h TransitionOrderCommandHandler) apply(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
	o, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	switch cmd.Target() {
	case order.Ready:
		err = o.MarkReady(cmd.Actor(), cmd.Note(), now)
	case order.Cancelled:
		err = o.Cancel(cmd.Actor(), cmd.Note(), now)
	default:
		return nil, errs.NewValueIsInvalidError("targetStatus")
	}
	if err != nil {
		return nil, err
	}

	if err := h.orders.UpdateIf(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}
