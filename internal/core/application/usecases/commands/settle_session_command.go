package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrSettleSessionCommandIsNotConstructed = errors.New(
	"SettleSessionCommand must be created via NewSettleSessionCommand constructor",
)

// SettleSessionCommand records an operator-confirmed cash deposit against a
// closed delivery session.
type SettleSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID       kernel.UUID
	depositedAmount decimal.Decimal

	guard guard.ConstructorGuard
}

// NewSettleSessionCommand creates a command to settle a closed session.
func NewSettleSessionCommand(sessionID kernel.UUID, depositedAmount decimal.Decimal) (SettleSessionCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return SettleSessionCommand{}, err
	}
	if depositedAmount.IsNegative() {
		return SettleSessionCommand{}, errs.NewValueIsInvalidError("depositedAmount")
	}

	return SettleSessionCommand{
		sessionID:       sessionID,
		depositedAmount: depositedAmount,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SettleSessionCommand) Validate() error {
	return c.guard.Validate(ErrSettleSessionCommandIsNotConstructed)
}

// SessionID returns the session being settled.
func (c SettleSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// DepositedAmount returns the operator-confirmed deposit.
func (c SettleSessionCommand) DepositedAmount() decimal.Decimal {
	return c.depositedAmount
}
