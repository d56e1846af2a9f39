package http

import (
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type startSessionRequest struct {
	OpeningFloat decimal.Decimal `json:"openingFloat"`
}

type settleSessionRequest struct {
	DepositedAmount decimal.Decimal `json:"depositedAmount"`
}

type settleSessionResponse struct {
	Discrepancy decimal.Decimal `json:"discrepancy"`
}

// StartSession handles POST /api/v1/couriers/:courierId/sessions.
func (s *Server) StartSession(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("courierId"))
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	var req startSessionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewStartSessionCommand(courierID, req.OpeningFloat)
	if err != nil {
		return s.writeError(ctx, err)
	}

	opened, err := s.handlers.StartSession.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, queries.ProjectSession(opened))
}

// EndSession handles POST /api/v1/couriers/:courierId/sessions/close.
func (s *Server) EndSession(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("courierId"))
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	cmd, err := commands.NewEndSessionCommand(courierID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	closed, err := s.handlers.EndSession.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, queries.ProjectSession(closed))
}

// GetOpenSession handles GET /api/v1/couriers/:courierId/sessions/open.
func (s *Server) GetOpenSession(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("courierId"))
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	query, err := queries.NewGetOpenSessionQuery(courierID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response, err := s.handlers.GetOpenSession.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, response)
}

// SettleSession handles POST /api/v1/sessions/:sessionId/settle.
func (s *Server) SettleSession(ctx echo.Context) error {
	sessionID, err := kernel.UUIDFromString(ctx.Param("sessionId"))
	if err != nil {
		return badRequest(ctx, "invalid session id")
	}

	var req settleSessionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewSettleSessionCommand(sessionID, req.DepositedAmount)
	if err != nil {
		return s.writeError(ctx, err)
	}

	discrepancy, err := s.handlers.SettleSession.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, settleSessionResponse{Discrepancy: discrepancy})
}
