package commands

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/session"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// EndSessionCommandHandler closes a courier's open session and returns it so
// the caller can show the courier the amount to deposit.
type EndSessionCommandHandler struct {
	sessions ports.SessionStore
}

// NewEndSessionCommandHandler creates a handler for closing sessions.
func NewEndSessionCommandHandler(sessions ports.SessionStore) EndSessionCommandHandler {
	return EndSessionCommandHandler{
		sessions: sessions,
	}
}

// Handle processes the end-session command.
// A version conflict means a collection landed concurrently; the close is
// retried once against the fresh read.
func (h EndSessionCommandHandler) Handle(ctx context.Context, cmd EndSessionCommand) (*session.DeliverySession, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	closed, err := h.close(ctx, cmd)
	if errors.Is(err, errs.ErrConflict) {
		closed, err = h.close(ctx, cmd)
	}
	if err != nil {
		return nil, err
	}

	return closed, nil
}

func (h EndSessionCommandHandler) close(ctx context.Context, cmd EndSessionCommand) (*session.DeliverySession, error) {
	s, err := h.sessions.GetOpenByCourier(ctx, cmd.CourierID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrNoActiveSession
	}
	if err != nil {
		return nil, err
	}

	if err := s.Close(time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := h.sessions.UpdateIf(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}
