package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrPickUpOrderCommandIsNotConstructed = errors.New(
	"PickUpOrderCommand must be created via NewPickUpOrderCommand constructor",
)

// PickUpOrderCommand records that the assigned courier picked the order up
// at the restaurant. A timestamp-only operation; the status stays
// OUT_FOR_DELIVERY.
type PickUpOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPickUpOrderCommand creates a command to record a pickup.
func NewPickUpOrderCommand(orderID, courierID kernel.UUID) (PickUpOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return PickUpOrderCommand{}, err
	}

	return PickUpOrderCommand{
		orderID:   orderID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PickUpOrderCommand) Validate() error {
	return c.guard.Validate(ErrPickUpOrderCommandIsNotConstructed)
}

// OrderID returns the order being picked up.
func (c PickUpOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the courier reporting the pickup.
func (c PickUpOrderCommand) CourierID() kernel.UUID {
	return c.courierID
}
