package kernel

import (
	"errors"
	"fmt"
	"math"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const (
	// GeoMinLatitude is the minimum valid latitude in degrees.
	GeoMinLatitude = -90.0
	// GeoMaxLatitude is the maximum valid latitude in degrees.
	GeoMaxLatitude = 90.0
	// GeoMinLongitude is the minimum valid longitude in degrees.
	GeoMinLongitude = -180.0
	// GeoMaxLongitude is the maximum valid longitude in degrees.
	GeoMaxLongitude = 180.0

	// earthRadiusMeters is the mean Earth radius used for haversine distances.
	earthRadiusMeters = 6371000.0
)

// ErrGeoPointIsNotConstructed is returned when using an improperly initialized GeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is an immutable WGS84 coordinate pair. It identifies delivery
// destinations and courier positions. The zero value is invalid and fails
// validation; use NewGeoPoint.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(41.0082, 28.9784)
//	if err != nil {
//	    // handle out-of-range coordinates
//	}
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with the given coordinates in degrees.
// Latitude must be within [-90, 90], longitude within [-180, 180].
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLatitude(latitude), p.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks the GeoPoint was created through its constructor.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// String implements fmt.Stringer as "GeoPoint(lat,lon)".
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%g,%g)", p.latitude, p.longitude)
}

// IsEqual compares two points for exact coordinate equality.
// Both points must be properly constructed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.latitude == other.latitude && p.longitude == other.longitude, nil
}

// DistanceMeters returns the great-circle (haversine) distance to another
// point in meters. Both points must be properly constructed.
func (p GeoPoint) DistanceMeters(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := p.latitude * math.Pi / 180
	lat2 := other.latitude * math.Pi / 180
	dLat := (other.latitude - p.latitude) * math.Pi / 180
	dLon := (other.longitude - p.longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c, nil
}

// setLatitude sets the latitude with range validation.
// Pointer receiver by design: private setters self-encapsulate construction rules.
func (p *GeoPoint) setLatitude(latitude float64) error {
	if latitude < GeoMinLatitude || latitude > GeoMaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, GeoMinLatitude, GeoMaxLatitude)
	}

	p.latitude = latitude
	return nil
}

// setLongitude sets the longitude with range validation.
func (p *GeoPoint) setLongitude(longitude float64) error {
	if longitude < GeoMinLongitude || longitude > GeoMaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, GeoMinLongitude, GeoMaxLongitude)
	}

	p.longitude = longitude
	return nil
}
