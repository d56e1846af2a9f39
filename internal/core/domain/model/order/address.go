package order

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when using an improperly initialized DeliveryAddress.
var ErrAddressIsNotConstructed = errors.New("DeliveryAddress must be created via NewDeliveryAddress constructor")

// DeliveryAddress is the street-level destination of an order plus its geo
// point. The geo point is what the dispatch coordinator matches couriers
// against.
type DeliveryAddress struct {
	street   string
	building string
	city     string
	note     string
	point    kernel.GeoPoint
	guard    guard.ConstructorGuard
}

// NewDeliveryAddress creates a DeliveryAddress. Street, city and a valid geo
// point are required; building and note are optional.
func NewDeliveryAddress(street, building, city, note string, point kernel.GeoPoint) (DeliveryAddress, error) {
	if street == "" {
		return DeliveryAddress{}, errs.NewValueIsRequiredError("street")
	}
	if city == "" {
		return DeliveryAddress{}, errs.NewValueIsRequiredError("city")
	}
	if err := point.Validate(); err != nil {
		return DeliveryAddress{}, err
	}

	return DeliveryAddress{
		street:   street,
		building: building,
		city:     city,
		note:     note,
		point:    point,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate checks the DeliveryAddress was created through its constructor.
func (a DeliveryAddress) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Street returns the street line.
func (a DeliveryAddress) Street() string {
	return a.street
}

// Building returns the building/apartment line.
func (a DeliveryAddress) Building() string {
	return a.building
}

// City returns the city.
func (a DeliveryAddress) City() string {
	return a.city
}

// Note returns the free-form delivery note.
func (a DeliveryAddress) Note() string {
	return a.note
}

// Point returns the geographic destination.
func (a DeliveryAddress) Point() kernel.GeoPoint {
	return a.point
}
