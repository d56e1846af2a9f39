package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrDeliverOrderCommandIsNotConstructed = errors.New(
	"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
)

// DeliverOrderCommand confirms delivery of an order by its assigned courier.
// For cash-on-delivery orders the courier may report the collected amount;
// when omitted the order's final amount is assumed collected in full.
type DeliverOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID
	collected *decimal.Decimal
	note      string

	guard guard.ConstructorGuard
}

// NewDeliverOrderCommand creates a command to confirm a delivery.
// A reported collected amount must not be negative; nil means "full amount".
func NewDeliverOrderCommand(
	orderID kernel.UUID,
	courierID kernel.UUID,
	collected *decimal.Decimal,
	note string,
) (DeliverOrderCommand, error) {
	cmd := DeliverOrderCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
		cmd.setCollected(collected),
	); err != nil {
		return DeliverOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

// OrderID returns the order being delivered.
func (c DeliverOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the courier confirming the delivery.
func (c DeliverOrderCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Collected returns the reported cash amount, nil for "full amount".
func (c DeliverOrderCommand) Collected() *decimal.Decimal {
	return c.collected
}

// Note returns the free-form audit note.
func (c DeliverOrderCommand) Note() string {
	return c.note
}

func (c *DeliverOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *DeliverOrderCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *DeliverOrderCommand) setCollected(collected *decimal.Decimal) error {
	if collected != nil && collected.IsNegative() {
		return errs.NewValueIsInvalidError("collectedAmount")
	}

	c.collected = collected
	return nil
}
