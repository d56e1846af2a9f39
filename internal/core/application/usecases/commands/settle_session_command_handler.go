package commands

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// SettleSessionCommandHandler settles closed sessions and reports the
// discrepancy between the expected deposit and the confirmed one.
// Discrepancies are recorded, never auto-corrected.
type SettleSessionCommandHandler struct {
	sessions ports.SessionStore
}

// NewSettleSessionCommandHandler creates a handler for settlement.
func NewSettleSessionCommandHandler(sessions ports.SessionStore) SettleSessionCommandHandler {
	return SettleSessionCommandHandler{
		sessions: sessions,
	}
}

// Handle processes the settlement command and returns the discrepancy
// (totalToDeposit minus depositedAmount). A second settlement attempt fails
// with session.ErrAlreadySettled, also when the first settlement raced this
// one and won.
func (h SettleSessionCommandHandler) Handle(ctx context.Context, cmd SettleSessionCommand) (decimal.Decimal, error) {
	if err := cmd.Validate(); err != nil {
		return decimal.Zero, err
	}

	discrepancy, err := h.settle(ctx, cmd)
	if errors.Is(err, errs.ErrConflict) {
		discrepancy, err = h.settle(ctx, cmd)
	}
	if err != nil {
		return decimal.Zero, err
	}

	return discrepancy, nil
}

func (h SettleSessionCommandHandler) settle(ctx context.Context, cmd SettleSessionCommand) (decimal.Decimal, error) {
	s, err := h.sessions.Get(ctx, cmd.SessionID())
	if err != nil {
		return decimal.Zero, err
	}

	discrepancy, err := s.Settle(cmd.DepositedAmount(), time.Now().UTC())
	if err != nil {
		return decimal.Zero, err
	}

	if err := h.sessions.UpdateIf(ctx, s); err != nil {
		return decimal.Zero, err
	}
	return discrepancy, nil
}
