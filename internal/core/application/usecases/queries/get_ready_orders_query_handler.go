package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// GetReadyOrdersQueryHandler lists the dispatch backlog.
type GetReadyOrdersQueryHandler struct {
	orders ports.OrderStore
}

// NewGetReadyOrdersQueryHandler creates a handler for backlog queries.
func NewGetReadyOrdersQueryHandler(orders ports.OrderStore) GetReadyOrdersQueryHandler {
	return GetReadyOrdersQueryHandler{orders: orders}
}

// Handle executes the query, oldest orders first.
func (h GetReadyOrdersQueryHandler) Handle(ctx context.Context, query GetReadyOrdersQuery) ([]ReadyOrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ready, err := h.orders.FindByStatus(ctx, order.Ready, query.Limit())
	if err != nil {
		return nil, err
	}

	responses := make([]ReadyOrderResponse, 0, len(ready))
	for _, o := range ready {
		responses = append(responses, ReadyOrderResponse{
			ID:        o.ID().String(),
			Number:    o.Number(),
			Street:    o.Address().Street(),
			City:      o.Address().City(),
			Latitude:  o.Address().Point().Latitude(),
			Longitude: o.Address().Point().Longitude(),
		})
	}

	return responses, nil
}
