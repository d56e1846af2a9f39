package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/session"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// ErrNoActiveSession is returned when a courier acts on cash bookkeeping
// without an open delivery session.
var ErrNoActiveSession = errors.New("courier has no active delivery session")

// DeliverOrderCommandHandler completes a delivery. For cash-on-delivery
// orders it verifies the courier has an open session before the transition
// and appends the collection to that session afterwards. The order write and
// the session write are separate single-document updates; when the session
// append fails the order stays delivered and the error is surfaced for the
// caller to retry the bookkeeping.
type DeliverOrderCommandHandler struct {
	orders   ports.OrderStore
	sessions ports.SessionStore
	notifier Notifier
	logger   *slog.Logger
}

// NewDeliverOrderCommandHandler creates a handler for delivery confirmation.
func NewDeliverOrderCommandHandler(
	orders ports.OrderStore,
	sessions ports.SessionStore,
	notifier Notifier,
	logger *slog.Logger,
) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		orders:   orders,
		sessions: sessions,
		notifier: notifier,
		logger:   logger.With("component", "deliver_order"),
	}
}

// Handle processes the delivery confirmation command.
func (h DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	actor, err := order.NewActor(order.RoleCourier, cmd.CourierID().String())
	if err != nil {
		return err
	}

	o, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	// COD requires an open session before anything changes, so the collection
	// recorded after the transition has a ledger to land in.
	var activeSession *session.DeliverySession
	if o.Payment() == order.CashOnDelivery {
		activeSession, err = h.openSession(ctx, cmd)
		if err != nil {
			return err
		}
	}

	o, err = h.deliver(ctx, o, cmd, actor)
	if errors.Is(err, errs.ErrConflict) {
		o, err = h.redeliver(ctx, cmd, actor)
	}
	if err != nil {
		return err
	}

	if activeSession != nil {
		if err := h.recordCollection(ctx, activeSession, o); err != nil {
			h.logger.ErrorContext(ctx, "delivery recorded but collection append failed",
				"order_id", o.ID().String(),
				"session_id", activeSession.ID().String(),
				"error", err)
			return err
		}
	}

	h.notifier.OrderStatusChanged(ctx, o, actor)
	return nil
}

func (h DeliverOrderCommandHandler) openSession(ctx context.Context, cmd DeliverOrderCommand) (*session.DeliverySession, error) {
	s, err := h.sessions.GetOpenByCourier(ctx, cmd.CourierID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrNoActiveSession
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (h DeliverOrderCommandHandler) deliver(ctx context.Context, o *order.Order, cmd DeliverOrderCommand, actor order.Actor) (*order.Order, error) {
	if err := o.MarkDelivered(actor, cmd.Collected(), cmd.Note(), time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := h.orders.UpdateIf(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (h DeliverOrderCommandHandler) redeliver(ctx context.Context, cmd DeliverOrderCommand, actor order.Actor) (*order.Order, error) {
	o, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	return h.deliver(ctx, o, cmd, actor)
}

// recordCollection appends the collected amount to the open session. A lost
// version race is retried once against a re-read of the session.
func (h DeliverOrderCommandHandler) recordCollection(ctx context.Context, s *session.DeliverySession, o *order.Order) error {
	collectedAt := time.Now().UTC()
	if err := h.appendCollection(ctx, s, o, collectedAt); !errors.Is(err, errs.ErrConflict) {
		return err
	}

	fresh, err := h.sessions.GetOpenByCourier(ctx, s.CourierID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoActiveSession
	}
	if err != nil {
		return err
	}
	return h.appendCollection(ctx, fresh, o, collectedAt)
}

func (h DeliverOrderCommandHandler) appendCollection(ctx context.Context, s *session.DeliverySession, o *order.Order, collectedAt time.Time) error {
	if err := s.AddCollection(o.ID(), o.Number(), o.CollectedAmount(), collectedAt); err != nil {
		return err
	}
	return h.sessions.UpdateIf(ctx, s)
}
