package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrStartSessionCommandIsNotConstructed = errors.New(
		"StartSessionCommand must be created via NewStartSessionCommand constructor",
	)

	// ErrSessionAlreadyOpen is returned when a courier tries to open a second
	// concurrent delivery session.
	ErrSessionAlreadyOpen = errors.New("courier already has an open delivery session")
)

// StartSessionCommand opens a delivery session for a courier with the cash
// float the courier starts the shift with.
type StartSessionCommand struct { //nolint:recvcheck //using for validation
	courierID    kernel.UUID
	openingFloat decimal.Decimal

	guard guard.ConstructorGuard
}

// NewStartSessionCommand creates a command to open a delivery session.
func NewStartSessionCommand(courierID kernel.UUID, openingFloat decimal.Decimal) (StartSessionCommand, error) {
	if err := courierID.Validate(); err != nil {
		return StartSessionCommand{}, err
	}
	if openingFloat.IsNegative() {
		return StartSessionCommand{}, errs.NewValueIsInvalidError("openingFloat")
	}

	return StartSessionCommand{
		courierID:    courierID,
		openingFloat: openingFloat,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c StartSessionCommand) Validate() error {
	return c.guard.Validate(ErrStartSessionCommandIsNotConstructed)
}

// CourierID returns the courier opening the session.
func (c StartSessionCommand) CourierID() kernel.UUID {
	return c.courierID
}

// OpeningFloat returns the starting cash float.
func (c StartSessionCommand) OpeningFloat() decimal.Decimal {
	return c.openingFloat
}
