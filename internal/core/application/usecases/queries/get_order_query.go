// Package queries contains the read side of the application: request/response
// pairs that project aggregates into transport-friendly shapes without
// mutating anything.
package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order by id. This is the customer's tracking
// source of truth; the live event stream only supplements it.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order id.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// HistoryEntryResponse is one audit log line of an order.
type HistoryEntryResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Note      string    `json:"note,omitempty"`
}

// AssignmentResponse is the courier snapshot attached to a dispatched order.
type AssignmentResponse struct {
	CourierID   string     `json:"courierId"`
	CourierName string     `json:"courierName"`
	Phone       string     `json:"phone,omitempty"`
	Vehicle     string     `json:"vehicle,omitempty"`
	AssignedAt  time.Time  `json:"assignedAt"`
	PickedUpAt  *time.Time `json:"pickedUpAt,omitempty"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
}

// CashResponse is the COD record populated on delivery.
type CashResponse struct {
	Expected  decimal.Decimal `json:"expected"`
	Collected decimal.Decimal `json:"collected"`
	Settled   bool            `json:"settled"`
}

// GetOrderQueryResponse is the full order projection.
type GetOrderQueryResponse struct {
	ID          string                 `json:"id"`
	Number      string                 `json:"number"`
	CustomerID  string                 `json:"customerId"`
	Status      string                 `json:"status"`
	Payment     string                 `json:"payment"`
	FinalAmount decimal.Decimal        `json:"finalAmount"`
	Street      string                 `json:"street"`
	City        string                 `json:"city"`
	Latitude    float64                `json:"latitude"`
	Longitude   float64                `json:"longitude"`
	History     []HistoryEntryResponse `json:"history"`
	Assignment  *AssignmentResponse    `json:"assignment,omitempty"`
	Cash        *CashResponse          `json:"cash,omitempty"`
}
