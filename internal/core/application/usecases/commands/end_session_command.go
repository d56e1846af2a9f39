package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrEndSessionCommandIsNotConstructed = errors.New(
	"EndSessionCommand must be created via NewEndSessionCommand constructor",
)

// EndSessionCommand closes a courier's open delivery session at the end of
// the shift. Closing freezes the collection log and makes the session
// eligible for settlement.
type EndSessionCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewEndSessionCommand creates a command to close the courier's open session.
func NewEndSessionCommand(courierID kernel.UUID) (EndSessionCommand, error) {
	if err := courierID.Validate(); err != nil {
		return EndSessionCommand{}, err
	}

	return EndSessionCommand{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c EndSessionCommand) Validate() error {
	return c.guard.Validate(ErrEndSessionCommandIsNotConstructed)
}

// CourierID returns the courier whose session is closing.
func (c EndSessionCommand) CourierID() kernel.UUID {
	return c.courierID
}
