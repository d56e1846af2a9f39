package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// GetOrderQueryHandler projects one order aggregate into its response shape.
type GetOrderQueryHandler struct {
	orders ports.OrderStore
}

// NewGetOrderQueryHandler creates a handler for single-order lookups.
func NewGetOrderQueryHandler(orders ports.OrderStore) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders}
}

// Handle executes the query.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return ProjectOrder(o), nil
}

// ProjectOrder maps an order aggregate to its response projection. Shared
// with the HTTP adapter so create/transition endpoints return the same shape
// as the query.
func ProjectOrder(o *order.Order) GetOrderQueryResponse {
	resp := GetOrderQueryResponse{
		ID:          o.ID().String(),
		Number:      o.Number(),
		CustomerID:  o.CustomerID().String(),
		Status:      o.Status().String(),
		Payment:     o.Payment().String(),
		FinalAmount: o.Pricing().FinalAmount(),
		Street:      o.Address().Street(),
		City:        o.Address().City(),
		Latitude:    o.Address().Point().Latitude(),
		Longitude:   o.Address().Point().Longitude(),
	}

	for _, entry := range o.History() {
		resp.History = append(resp.History, HistoryEntryResponse{
			Status:    entry.Status().String(),
			Timestamp: entry.Timestamp(),
			Actor:     entry.Actor().String(),
			Note:      entry.Note(),
		})
	}

	if assignment := o.Assignment(); assignment != nil {
		resp.Assignment = &AssignmentResponse{
			CourierID:   assignment.CourierID().String(),
			CourierName: assignment.CourierName(),
			Phone:       assignment.Phone(),
			Vehicle:     assignment.Vehicle(),
			AssignedAt:  assignment.AssignedAt(),
			PickedUpAt:  assignment.PickedUpAt(),
			DeliveredAt: assignment.DeliveredAt(),
		}
	}

	if cash := o.Cash(); cash != nil {
		resp.Cash = &CashResponse{
			Expected:  cash.Expected(),
			Collected: cash.Collected(),
			Settled:   cash.IsSettled(),
		}
	}

	return resp
}
