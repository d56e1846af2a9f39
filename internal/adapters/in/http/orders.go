package http

import (
	"net/http"
	"strconv"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type lineItemRequest struct {
	CatalogItemID  string          `json:"catalogItemId"`
	Name           string          `json:"name"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	Quantity       int             `json:"quantity"`
	Customizations []string        `json:"customizations"`
}

type addressRequest struct {
	Street    string  `json:"street"`
	Building  string  `json:"building"`
	City      string  `json:"city"`
	Note      string  `json:"note"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type placeOrderRequest struct {
	CustomerID    string            `json:"customerId"`
	Items         []lineItemRequest `json:"items"`
	Address       addressRequest    `json:"address"`
	PaymentMethod string            `json:"paymentMethod"`
	DeliveryFee   decimal.Decimal   `json:"deliveryFee"`
	Tax           decimal.Decimal   `json:"tax"`
	Discount      decimal.Decimal   `json:"discount"`
}

type transitionOrderRequest struct {
	TargetStatus string `json:"targetStatus"`
	ActorRole    string `json:"actorRole"`
	ActorID      string `json:"actorId"`
	Note         string `json:"note"`
}

type pickUpOrderRequest struct {
	CourierID string `json:"courierId"`
}

type deliverOrderRequest struct {
	CourierID       string           `json:"courierId"`
	CollectedAmount *decimal.Decimal `json:"collectedAmount"`
	Note            string           `json:"note"`
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req placeOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "invalid customer id")
	}

	items := make([]order.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		catalogItemID, err := kernel.UUIDFromString(item.CatalogItemID)
		if err != nil {
			return badRequest(ctx, "invalid catalog item id")
		}
		lineItem, err := order.NewLineItem(catalogItemID, item.Name, item.UnitPrice, item.Quantity, item.Customizations)
		if err != nil {
			return s.writeError(ctx, err)
		}
		items = append(items, lineItem)
	}

	point, err := kernel.NewGeoPoint(req.Address.Latitude, req.Address.Longitude)
	if err != nil {
		return s.writeError(ctx, err)
	}
	address, err := order.NewDeliveryAddress(req.Address.Street, req.Address.Building, req.Address.City, req.Address.Note, point)
	if err != nil {
		return s.writeError(ctx, err)
	}
	payment, err := order.PaymentMethodFromString(req.PaymentMethod)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewPlaceOrderCommand(customerID, items, address, payment,
		req.DeliveryFee, req.Tax, req.Discount)
	if err != nil {
		return s.writeError(ctx, err)
	}

	placed, err := s.handlers.PlaceOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, queries.ProjectOrder(placed))
}

// GetOrder handles GET /api/v1/orders/:orderId.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetReadyOrders handles GET /api/v1/orders/ready?limit=N.
func (s *Server) GetReadyOrders(ctx echo.Context) error {
	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "invalid limit")
		}
		limit = parsed
	}

	query, err := queries.NewGetReadyOrdersQuery(limit)
	if err != nil {
		return s.writeError(ctx, err)
	}

	orders, err := s.handlers.GetReadyOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orders)
}

// TransitionOrder handles POST /api/v1/orders/:orderId/status - the direct
// READY / CANCELLED moves. Dispatch, pickup and delivery have dedicated
// endpoints.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req transitionOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	target, err := order.StatusFromString(req.TargetStatus)
	if err != nil {
		return s.writeError(ctx, err)
	}
	role, err := order.RoleFromString(req.ActorRole)
	if err != nil {
		return s.writeError(ctx, err)
	}
	actor, err := order.NewActor(role, req.ActorID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, target, actor, req.Note)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err := s.handlers.TransitionOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}
	s.metrics.ObserveTransition(target.String())
	return ctx.NoContent(http.StatusNoContent)
}

// DispatchOrder handles POST /api/v1/orders/:orderId/dispatch.
func (s *Server) DispatchOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewDispatchOrderCommand(orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err := s.handlers.DispatchOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		s.metrics.ObserveDispatch("failed")
		return s.writeError(ctx, err)
	}
	s.metrics.ObserveDispatch("assigned")
	return ctx.NoContent(http.StatusNoContent)
}

// PickUpOrder handles POST /api/v1/orders/:orderId/pickup.
func (s *Server) PickUpOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req pickUpOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	cmd, err := commands.NewPickUpOrderCommand(orderID, courierID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err := s.handlers.PickUpOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeliverOrder handles POST /api/v1/orders/:orderId/delivery.
func (s *Server) DeliverOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req deliverOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	cmd, err := commands.NewDeliverOrderCommand(orderID, courierID, req.CollectedAmount, req.Note)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err := s.handlers.DeliverOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}
	s.metrics.ObserveTransition(order.Delivered.String())
	return ctx.NoContent(http.StatusNoContent)
}
