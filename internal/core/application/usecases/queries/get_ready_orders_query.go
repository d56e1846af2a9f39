package queries

import (
	"errors"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetReadyOrdersQueryIsNotConstructed = errors.New(
	"GetReadyOrdersQuery must be created via NewGetReadyOrdersQuery constructor",
)

// defaultReadyOrdersLimit bounds the operator view when no limit is given.
const defaultReadyOrdersLimit = 50

// GetReadyOrdersQuery lists orders waiting for a courier, oldest first.
// Feeds the operator dashboard and the dispatch sweep.
type GetReadyOrdersQuery struct {
	limit int

	guard guard.ConstructorGuard
}

// NewGetReadyOrdersQuery creates a query for READY orders. A non-positive
// limit falls back to the default page size.
func NewGetReadyOrdersQuery(limit int) (GetReadyOrdersQuery, error) {
	if limit < 0 {
		return GetReadyOrdersQuery{}, errs.NewValueIsInvalidError("limit")
	}
	if limit == 0 {
		limit = defaultReadyOrdersLimit
	}

	return GetReadyOrdersQuery{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetReadyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetReadyOrdersQueryIsNotConstructed)
}

// Limit returns the page size.
func (q GetReadyOrdersQuery) Limit() int {
	return q.limit
}

// ReadyOrderResponse is one row of the dispatch backlog.
type ReadyOrderResponse struct {
	ID        string  `json:"id"`
	Number    string  `json:"number"`
	Street    string  `json:"street"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
