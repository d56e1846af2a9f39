package courier

import (
	"fooddelivery/internal/core/domain/model/kernel"
)

// Candidate is a dispatch candidate returned by the geo index: a courier
// snapshot plus its distance from the delivery point at query time. The
// snapshot carries what an assignment needs (name, phone, vehicle) so
// dispatch does not re-read the courier record between claim and transition.
type Candidate struct {
	CourierID      kernel.UUID
	Name           string
	Phone          string
	Vehicle        string
	DistanceMeters float64
}
