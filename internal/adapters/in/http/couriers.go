package http

import (
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type createCourierRequest struct {
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Vehicle   string  `json:"vehicle"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type updateLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Available bool    `json:"available"`
}

type courierResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone,omitempty"`
	Vehicle   string  `json:"vehicle,omitempty"`
	Available bool    `json:"available"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CreateCourier handles POST /api/v1/couriers.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var req createCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	location, err := kernel.NewGeoPoint(req.Latitude, req.Longitude)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewCreateCourierCommand(req.Name, req.Phone, req.Vehicle, location)
	if err != nil {
		return s.writeError(ctx, err)
	}

	created, err := s.handlers.CreateCourier.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, courierResponse{
		ID:        created.ID().String(),
		Name:      created.Name(),
		Phone:     created.Phone(),
		Vehicle:   created.Vehicle(),
		Available: created.IsAvailable(),
		Latitude:  created.Location().Latitude(),
		Longitude: created.Location().Longitude(),
	})
}

// UpdateCourierLocation handles POST /api/v1/couriers/:courierId/location.
func (s *Server) UpdateCourierLocation(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("courierId"))
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	var req updateLocationRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	location, err := kernel.NewGeoPoint(req.Latitude, req.Longitude)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateCourierLocationCommand(courierID, location, req.Available)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err := s.handlers.UpdateCourierLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}
