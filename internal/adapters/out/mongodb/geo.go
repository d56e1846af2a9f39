package mongodb

import (
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// GeoJSON is the MongoDB GeoJSON Point shape. Coordinates are ordered
// [longitude, latitude], the opposite of the domain's constructor.
type GeoJSON struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}

// NewGeoJSON converts a domain geo point into its GeoJSON document.
func NewGeoJSON(point kernel.GeoPoint) GeoJSON {
	return GeoJSON{
		Type:        "Point",
		Coordinates: []float64{point.Longitude(), point.Latitude()},
	}
}

// Point converts the document back into a domain geo point.
func (g GeoJSON) Point() (kernel.GeoPoint, error) {
	if g.Type != "Point" || len(g.Coordinates) != 2 {
		return kernel.GeoPoint{}, errs.NewValueIsInvalidError("geo point document")
	}
	return kernel.NewGeoPoint(g.Coordinates[1], g.Coordinates[0])
}
