package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand represents a customer's request to place a food order.
// Carries validated line items with price snapshots, the delivery address and
// the payment method; pricing is recomputed by the handler from these inputs.
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	customerID  kernel.UUID
	items       []order.LineItem
	address     order.DeliveryAddress
	payment     order.PaymentMethod
	deliveryFee decimal.Decimal
	tax         decimal.Decimal
	discount    decimal.Decimal

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new order.
// Requires at least one line item; the fee, tax and discount components must
// not be negative.
func NewPlaceOrderCommand(
	customerID kernel.UUID,
	items []order.LineItem,
	address order.DeliveryAddress,
	payment order.PaymentMethod,
	deliveryFee, tax, discount decimal.Decimal,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setItems(items),
		cmd.setAddress(address),
		cmd.setPayment(payment),
		cmd.setMoney(deliveryFee, tax, discount),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// CustomerID returns the placing customer's identifier.
func (c PlaceOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Items returns the ordered line items.
func (c PlaceOrderCommand) Items() []order.LineItem {
	return append([]order.LineItem(nil), c.items...)
}

// Address returns the delivery destination.
func (c PlaceOrderCommand) Address() order.DeliveryAddress {
	return c.address
}

// Payment returns the chosen payment method.
func (c PlaceOrderCommand) Payment() order.PaymentMethod {
	return c.payment
}

// DeliveryFee returns the delivery fee component.
func (c PlaceOrderCommand) DeliveryFee() decimal.Decimal {
	return c.deliveryFee
}

// Tax returns the tax component.
func (c PlaceOrderCommand) Tax() decimal.Decimal {
	return c.tax
}

// Discount returns the discount component.
func (c PlaceOrderCommand) Discount() decimal.Decimal {
	return c.discount
}

func (c *PlaceOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *PlaceOrderCommand) setItems(items []order.LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = append([]order.LineItem(nil), items...)
	return nil
}

func (c *PlaceOrderCommand) setAddress(address order.DeliveryAddress) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.address = address
	return nil
}

func (c *PlaceOrderCommand) setPayment(payment order.PaymentMethod) error {
	if err := payment.Validate(); err != nil {
		return err
	}

	c.payment = payment
	return nil
}

func (c *PlaceOrderCommand) setMoney(deliveryFee, tax, discount decimal.Decimal) error {
	if deliveryFee.IsNegative() {
		return errs.NewValueIsInvalidError("deliveryFee")
	}
	if tax.IsNegative() {
		return errs.NewValueIsInvalidError("tax")
	}
	if discount.IsNegative() {
		return errs.NewValueIsInvalidError("discount")
	}

	c.deliveryFee = deliveryFee
	c.tax = tax
	c.discount = discount
	return nil
}
