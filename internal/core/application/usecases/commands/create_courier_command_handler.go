package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
)

// CreateCourierCommandHandler registers new couriers.
type CreateCourierCommandHandler struct {
	couriers ports.CourierStore
}

// NewCreateCourierCommandHandler creates a handler for courier registration.
func NewCreateCourierCommandHandler(couriers ports.CourierStore) CreateCourierCommandHandler {
	return CreateCourierCommandHandler{
		couriers: couriers,
	}
}

// Handle processes the registration command and returns the new courier.
func (h CreateCourierCommandHandler) Handle(ctx context.Context, cmd CreateCourierCommand) (*courier.Courier, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	newCourier, err := courier.NewCourier(
		kernel.NewUUID(), cmd.Name(), cmd.Phone(), cmd.Vehicle(), cmd.Location())
	if err != nil {
		return nil, err
	}

	if err := h.couriers.Add(ctx, newCourier); err != nil {
		return nil, err
	}

	return newCourier, nil
}
