package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// StreamOrderEvents handles GET /api/v1/orders/:orderId/events as an SSE
// stream bridging the order's bus topic. Delivery is best-effort: a client
// that connects late or reads slowly misses events, and the GET order
// endpoint remains the source of truth.
func (s *Server) StreamOrderEvents(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	// Reject streams for orders that do not exist.
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}
	if _, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query); err != nil {
		return s.writeError(ctx, err)
	}

	events, cancel := s.bus.Subscribe(ports.OrderTopic(orderID.String()))
	defer cancel()

	resp := ctx.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set(echo.HeaderCacheControl, "no-cache")
	resp.Header().Set(echo.HeaderConnection, "keep-alive")
	resp.WriteHeader(http.StatusOK)
	resp.Flush()

	encoder := json.NewEncoder(resp)
	for {
		select {
		case <-ctx.Request().Context().Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := writeSSE(resp, encoder, event); err != nil {
				return nil
			}
			resp.Flush()
		}
	}
}

// writeSSE emits one SSE frame: the event type line, a single JSON data
// line, and the blank separator line (Encode already appends one newline).
func writeSSE(w io.Writer, encoder *json.Encoder, event ports.Event) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: ", event.Type); err != nil {
		return err
	}
	if err := encoder.Encode(event.Payload); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
