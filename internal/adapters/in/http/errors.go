package http

import (
	"errors"
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/session"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// errorResponse is the uniform error body.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps a use case error onto an HTTP status. Internal errors are
// logged and never leak their message to the client.
func (s *Server) writeError(ctx echo.Context, err error) error {
	status := statusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err)
		message = "internal error"
	}
	return ctx.JSON(status, errorResponse{Code: status, Message: message})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrNotAssignedCourier):
		return http.StatusForbidden
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, errs.ErrConflict),
		errors.Is(err, commands.ErrNoCourierAvailable),
		errors.Is(err, commands.ErrNoActiveSession),
		errors.Is(err, commands.ErrSessionAlreadyOpen),
		errors.Is(err, session.ErrAlreadySettled),
		errors.Is(err, session.ErrSessionNotClosed),
		errors.Is(err, session.ErrSessionClosed):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
