package commands

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/session"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// StartSessionCommandHandler opens delivery sessions. The one-open-session
// invariant is ultimately enforced by the store's unique constraint; the
// up-front lookup only produces a friendlier error on the common path.
type StartSessionCommandHandler struct {
	sessions ports.SessionStore
	couriers ports.CourierStore
}

// NewStartSessionCommandHandler creates a handler for opening sessions.
func NewStartSessionCommandHandler(sessions ports.SessionStore, couriers ports.CourierStore) StartSessionCommandHandler {
	return StartSessionCommandHandler{
		sessions: sessions,
		couriers: couriers,
	}
}

// Handle processes the start-session command and returns the opened session.
func (h StartSessionCommandHandler) Handle(ctx context.Context, cmd StartSessionCommand) (*session.DeliverySession, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.couriers.Get(ctx, cmd.CourierID()); err != nil {
		return nil, err
	}

	if _, err := h.sessions.GetOpenByCourier(ctx, cmd.CourierID()); err == nil {
		return nil, ErrSessionAlreadyOpen
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	newSession, err := session.NewDeliverySession(
		kernel.NewUUID(), cmd.CourierID(), cmd.OpeningFloat(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := h.sessions.Add(ctx, newSession); err != nil {
		// Raced with another opener between the lookup and the insert.
		if errors.Is(err, errs.ErrConflict) {
			return nil, ErrSessionAlreadyOpen
		}
		return nil, err
	}

	return newSession, nil
}
