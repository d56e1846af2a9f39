package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrCreateCourierCommandIsNotConstructed = errors.New(
	"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
)

// CreateCourierCommand registers a new courier in the dispatch pool.
// The courier starts unavailable and joins dispatch only after the first
// position report asserting availability.
type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	name     string
	phone    string
	vehicle  string
	location kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewCreateCourierCommand creates a command to register a courier.
func NewCreateCourierCommand(name, phone, vehicle string, location kernel.GeoPoint) (CreateCourierCommand, error) {
	cmd := CreateCourierCommand{
		phone:   phone,
		vehicle: vehicle,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setName(name),
		cmd.setLocation(location),
	); err != nil {
		return CreateCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

// Name returns the courier's name.
func (c CreateCourierCommand) Name() string {
	return c.name
}

// Phone returns the courier's phone number.
func (c CreateCourierCommand) Phone() string {
	return c.phone
}

// Vehicle returns the courier's vehicle description.
func (c CreateCourierCommand) Vehicle() string {
	return c.vehicle
}

// Location returns the courier's starting position.
func (c CreateCourierCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c *CreateCourierCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}

func (c *CreateCourierCommand) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
