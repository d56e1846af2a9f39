package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrUpdateCourierLocationCommandIsNotConstructed = errors.New(
	"UpdateCourierLocationCommand must be created via NewUpdateCourierLocationCommand constructor",
)

// UpdateCourierLocationCommand carries a courier's position report together
// with the availability the courier asserts: available true means "dispatch
// me", false means off duty or paused.
type UpdateCourierLocationCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	location  kernel.GeoPoint
	available bool

	guard guard.ConstructorGuard
}

// NewUpdateCourierLocationCommand creates a command for a position report.
func NewUpdateCourierLocationCommand(
	courierID kernel.UUID,
	location kernel.GeoPoint,
	available bool,
) (UpdateCourierLocationCommand, error) {
	if err := errors.Join(courierID.Validate(), location.Validate()); err != nil {
		return UpdateCourierLocationCommand{}, err
	}

	return UpdateCourierLocationCommand{
		courierID: courierID,
		location:  location,
		available: available,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCourierLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierLocationCommandIsNotConstructed)
}

// CourierID returns the reporting courier.
func (c UpdateCourierLocationCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Location returns the reported position.
func (c UpdateCourierLocationCommand) Location() kernel.GeoPoint {
	return c.location
}

// Available returns the availability the courier asserts.
func (c UpdateCourierLocationCommand) Available() bool {
	return c.available
}
