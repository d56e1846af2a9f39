package commands

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand moves an order to READY or CANCELLED on behalf of
// an operator or the owning customer. Dispatch, pickup and delivery have
// dedicated commands because they carry extra state.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	actor   order.Actor
	note    string

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to transition an order.
// Only READY and CANCELLED are accepted as targets.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	target order.Status,
	actor order.Actor,
	note string,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setActor(actor),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested target status.
func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}

// Actor returns who requests the transition.
func (c TransitionOrderCommand) Actor() order.Actor {
	return c.actor
}

// Note returns the free-form audit note.
func (c TransitionOrderCommand) Note() string {
	return c.note
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setTarget(target order.Status) error {
	if target != order.Ready && target != order.Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("targetStatus",
			fmt.Errorf("%s is not a direct transition target", target))
	}

	c.target = target
	return nil
}

func (c *TransitionOrderCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
