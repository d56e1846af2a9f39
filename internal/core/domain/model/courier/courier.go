// Package courier contains the Courier aggregate: identity, contact and
// vehicle details, the availability flag and the current position.
//
// Availability has exactly two writers: the courier's own location updates
// and the dispatch coordinator's claim/release pair. Dispatch clears the flag
// on assignment and, by policy, never restores it after delivery; the courier
// must re-assert availability explicitly.
package courier

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when creating a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier represents a delivery courier. Couriers join a flat pool in a
// single service area; the geo index answers "nearest available" queries
// against their last reported position.
type Courier struct {
	id        kernel.UUID
	name      string
	phone     string
	vehicle   string
	available bool
	location  kernel.GeoPoint
	guard     guard.ConstructorGuard
}

// NewCourier creates a courier at the given position. New couriers start
// unavailable; they become dispatchable only after asserting availability
// through a location update.
func NewCourier(id kernel.UUID, name, phone, vehicle string, location kernel.GeoPoint) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setLocation(location),
	); err != nil {
		return nil, err
	}

	c.phone = phone
	c.vehicle = vehicle
	return c, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistence.
func RestoreCourier(
	id kernel.UUID,
	name, phone, vehicle string,
	available bool,
	location kernel.GeoPoint,
) (*Courier, error) {
	c, err := NewCourier(id, name, phone, vehicle, location)
	if err != nil {
		return nil, err
	}

	c.available = available
	return c, nil
}

// Validate ensures the Courier was created through a factory method.
func (c *Courier) Validate() error {
	if c == nil || c.guard.Validate(ErrCourierIsNotConstructed) != nil {
		return ErrCourierIsNotConstructed
	}
	return nil
}

// IsEqual compares two couriers by identifier.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's name.
func (c *Courier) Name() string {
	return c.name
}

// Phone returns the courier's phone number.
func (c *Courier) Phone() string {
	return c.phone
}

// Vehicle returns the courier's vehicle description.
func (c *Courier) Vehicle() string {
	return c.vehicle
}

// IsAvailable reports whether the courier can be claimed for dispatch.
func (c *Courier) IsAvailable() bool {
	return c.available
}

// Location returns the courier's last reported position.
func (c *Courier) Location() kernel.GeoPoint {
	return c.location
}

// UpdateLocation records a position report from the courier and the
// availability the courier asserts with it.
func (c *Courier) UpdateLocation(location kernel.GeoPoint, available bool) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	c.available = available
	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}
