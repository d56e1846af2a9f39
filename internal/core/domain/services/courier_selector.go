// Package services contains stateless domain services that coordinate
// behavior across aggregates.
package services

import (
	"sort"

	"fooddelivery/internal/core/domain/model/courier"
)

// CourierSelector orders dispatch candidates deterministically:
// strictly nearest first, equal distances broken by courier id ascending.
// The dispatch coordinator walks the ranked list and claims the first
// courier whose availability flip succeeds.
type CourierSelector struct{}

// NewCourierSelector creates a CourierSelector.
func NewCourierSelector() CourierSelector {
	return CourierSelector{}
}

// Rank returns a new slice of candidates sorted nearest-first with the
// courier-id tie-break. The input slice is not modified.
func (CourierSelector) Rank(candidates []courier.Candidate) []courier.Candidate {
	ranked := append([]courier.Candidate(nil), candidates...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].DistanceMeters != ranked[j].DistanceMeters {
			return ranked[i].DistanceMeters < ranked[j].DistanceMeters
		}
		return ranked[i].CourierID.String() < ranked[j].CourierID.String()
	})
	return ranked
}
