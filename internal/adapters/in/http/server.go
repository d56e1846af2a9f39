// Package http exposes the engine over a JSON API. Handlers translate
// requests into commands and queries and never touch the stores directly;
// the error mapping in errors.go is the single place domain errors become
// HTTP statuses.
package http

import (
	"log/slog"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// Handlers bundles the use case handlers the server dispatches to.
type Handlers struct {
	PlaceOrder            commands.PlaceOrderCommandHandler
	TransitionOrder       commands.TransitionOrderCommandHandler
	DispatchOrder         commands.DispatchOrderCommandHandler
	PickUpOrder           commands.PickUpOrderCommandHandler
	DeliverOrder          commands.DeliverOrderCommandHandler
	CreateCourier         commands.CreateCourierCommandHandler
	UpdateCourierLocation commands.UpdateCourierLocationCommandHandler
	StartSession          commands.StartSessionCommandHandler
	EndSession            commands.EndSessionCommandHandler
	SettleSession         commands.SettleSessionCommandHandler

	GetOrder       queries.GetOrderQueryHandler
	GetReadyOrders queries.GetReadyOrdersQueryHandler
	GetOpenSession queries.GetOpenSessionQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	bus      ports.EventBus
	metrics  *Metrics
	logger   *slog.Logger
}

// NewServer creates an HTTP server over the given use case handlers. The bus
// feeds the order tracking stream.
func NewServer(handlers Handlers, bus ports.EventBus, metrics *Metrics, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		bus:      bus,
		metrics:  metrics,
		logger:   logger.With("component", "http"),
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders/ready", s.GetReadyOrders)
	api.GET("/orders/:orderId", s.GetOrder)
	api.GET("/orders/:orderId/events", s.StreamOrderEvents)
	api.POST("/orders/:orderId/status", s.TransitionOrder)
	api.POST("/orders/:orderId/dispatch", s.DispatchOrder)
	api.POST("/orders/:orderId/pickup", s.PickUpOrder)
	api.POST("/orders/:orderId/delivery", s.DeliverOrder)

	api.POST("/couriers", s.CreateCourier)
	api.POST("/couriers/:courierId/location", s.UpdateCourierLocation)
	api.POST("/couriers/:courierId/sessions", s.StartSession)
	api.POST("/couriers/:courierId/sessions/close", s.EndSession)
	api.GET("/couriers/:courierId/sessions/open", s.GetOpenSession)

	api.POST("/sessions/:sessionId/settle", s.SettleSession)
}
