package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOpenSessionQueryIsNotConstructed = errors.New(
	"GetOpenSessionQuery must be created via NewGetOpenSessionQuery constructor",
)

// GetOpenSessionQuery retrieves a courier's open delivery session, typically
// to show the running cash position during the shift.
type GetOpenSessionQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOpenSessionQuery creates a query for the courier's open session.
func NewGetOpenSessionQuery(courierID kernel.UUID) (GetOpenSessionQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetOpenSessionQuery{}, err
	}

	return GetOpenSessionQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOpenSessionQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenSessionQueryIsNotConstructed)
}

// CourierID returns the courier whose session is requested.
func (q GetOpenSessionQuery) CourierID() kernel.UUID {
	return q.courierID
}

// CollectionResponse is one COD collection line of a session.
type CollectionResponse struct {
	OrderID     string          `json:"orderId"`
	OrderNumber string          `json:"orderNumber"`
	Amount      decimal.Decimal `json:"amount"`
	CollectedAt time.Time       `json:"collectedAt"`
}

// SessionResponse is the cash position projection of a delivery session.
type SessionResponse struct {
	ID             string               `json:"id"`
	CourierID      string               `json:"courierId"`
	OpeningFloat   decimal.Decimal      `json:"openingFloat"`
	StartTime      time.Time            `json:"startTime"`
	EndTime        *time.Time           `json:"endTime,omitempty"`
	Collections    []CollectionResponse `json:"collections"`
	TotalCollected decimal.Decimal      `json:"totalCollected"`
	TotalToDeposit decimal.Decimal      `json:"totalToDeposit"`
	Settled        bool                 `json:"settled"`
}
