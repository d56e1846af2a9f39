package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/session"
	"fooddelivery/internal/core/ports"
)

// GetOpenSessionQueryHandler projects a courier's open session.
type GetOpenSessionQueryHandler struct {
	sessions ports.SessionStore
}

// NewGetOpenSessionQueryHandler creates a handler for open-session lookups.
func NewGetOpenSessionQueryHandler(sessions ports.SessionStore) GetOpenSessionQueryHandler {
	return GetOpenSessionQueryHandler{sessions: sessions}
}

// Handle executes the query. Returns an error wrapping errs.ErrObjectNotFound
// when the courier has no open session.
func (h GetOpenSessionQueryHandler) Handle(ctx context.Context, query GetOpenSessionQuery) (SessionResponse, error) {
	if err := query.Validate(); err != nil {
		return SessionResponse{}, err
	}

	s, err := h.sessions.GetOpenByCourier(ctx, query.CourierID())
	if err != nil {
		return SessionResponse{}, err
	}

	return ProjectSession(s), nil
}

// ProjectSession maps a session aggregate to its response projection. Shared
// with the HTTP adapter's session endpoints.
func ProjectSession(s *session.DeliverySession) SessionResponse {
	resp := SessionResponse{
		ID:             s.ID().String(),
		CourierID:      s.CourierID().String(),
		OpeningFloat:   s.OpeningFloat(),
		StartTime:      s.StartTime(),
		EndTime:        s.EndTime(),
		Collections:    make([]CollectionResponse, 0, len(s.Collections())),
		TotalCollected: s.TotalCollected(),
		TotalToDeposit: s.TotalToDeposit(),
		Settled:        s.Settlement().IsSettled(),
	}

	for _, c := range s.Collections() {
		resp.Collections = append(resp.Collections, CollectionResponse{
			OrderID:     c.OrderID.String(),
			OrderNumber: c.OrderNumber,
			Amount:      c.Amount,
			CollectedAt: c.CollectedAt,
		})
	}

	return resp
}
