package services_test

import (
	"testing"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(distance float64) courier.Candidate {
	return courier.Candidate{
		CourierID:      kernel.NewUUID(),
		Name:           "Jane Smith",
		Vehicle:        "bike",
		DistanceMeters: distance,
	}
}

func TestCourierSelector_Rank(t *testing.T) {
	selector := services.NewCourierSelector()

	t.Run("nearest first", func(t *testing.T) {
		far := candidate(2500)
		near := candidate(120)
		mid := candidate(800)

		ranked := selector.Rank([]courier.Candidate{far, near, mid})

		require.Len(t, ranked, 3)
		assert.Equal(t, near.CourierID, ranked[0].CourierID)
		assert.Equal(t, mid.CourierID, ranked[1].CourierID)
		assert.Equal(t, far.CourierID, ranked[2].CourierID)
	})

	t.Run("equal distances break ties by courier id", func(t *testing.T) {
		a := candidate(500)
		b := candidate(500)
		first, second := a, b
		if b.CourierID.String() < a.CourierID.String() {
			first, second = b, a
		}

		for _, input := range [][]courier.Candidate{{a, b}, {b, a}} {
			ranked := selector.Rank(input)
			require.Len(t, ranked, 2)
			assert.Equal(t, first.CourierID, ranked[0].CourierID)
			assert.Equal(t, second.CourierID, ranked[1].CourierID)
		}
	})

	t.Run("input slice is not modified", func(t *testing.T) {
		input := []courier.Candidate{candidate(900), candidate(100)}
		original := append([]courier.Candidate(nil), input...)

		ranked := selector.Rank(input)

		assert.Equal(t, original, input)
		assert.Equal(t, original[1].CourierID, ranked[0].CourierID)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, selector.Rank(nil))
	})
}
