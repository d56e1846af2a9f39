package order

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// ErrAssignmentIsNotConstructed is returned when using an improperly initialized CourierAssignment.
var ErrAssignmentIsNotConstructed = errors.New("CourierAssignment must be created via NewCourierAssignment constructor")

// CourierAssignment records which courier carries the order, with the
// courier's contact details snapshotted at assignment time so the order
// remains self-contained even if the courier record changes later.
type CourierAssignment struct {
	courierID   kernel.UUID
	courierName string
	phone       string
	vehicle     string
	assignedAt  time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time
	guard       guard.ConstructorGuard
}

// NewCourierAssignment creates an assignment snapshot at the given time.
func NewCourierAssignment(
	courierID kernel.UUID,
	courierName, phone, vehicle string,
	assignedAt time.Time,
) (CourierAssignment, error) {
	if err := courierID.Validate(); err != nil {
		return CourierAssignment{}, err
	}
	if courierName == "" {
		return CourierAssignment{}, errs.NewValueIsRequiredError("courier name")
	}
	if assignedAt.IsZero() {
		return CourierAssignment{}, errs.NewValueIsRequiredError("assignedAt")
	}

	return CourierAssignment{
		courierID:   courierID,
		courierName: courierName,
		phone:       phone,
		vehicle:     vehicle,
		assignedAt:  assignedAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreCourierAssignment reconstructs an assignment from persistence.
func RestoreCourierAssignment(
	courierID kernel.UUID,
	courierName, phone, vehicle string,
	assignedAt time.Time,
	pickedUpAt, deliveredAt *time.Time,
) CourierAssignment {
	return CourierAssignment{
		courierID:   courierID,
		courierName: courierName,
		phone:       phone,
		vehicle:     vehicle,
		assignedAt:  assignedAt,
		pickedUpAt:  pickedUpAt,
		deliveredAt: deliveredAt,
		guard:       guard.NewConstructorGuard(),
	}
}

// Validate checks the assignment was created through a constructor.
func (c CourierAssignment) Validate() error {
	return c.guard.Validate(ErrAssignmentIsNotConstructed)
}

// CourierID returns the assigned courier's identifier.
func (c CourierAssignment) CourierID() kernel.UUID {
	return c.courierID
}

// CourierName returns the courier's name snapshot.
func (c CourierAssignment) CourierName() string {
	return c.courierName
}

// Phone returns the courier's phone snapshot.
func (c CourierAssignment) Phone() string {
	return c.phone
}

// Vehicle returns the courier's vehicle snapshot.
func (c CourierAssignment) Vehicle() string {
	return c.vehicle
}

// AssignedAt returns when the courier was assigned.
func (c CourierAssignment) AssignedAt() time.Time {
	return c.assignedAt
}

// PickedUpAt returns when the courier picked the order up, nil if not yet.
func (c CourierAssignment) PickedUpAt() *time.Time {
	return c.pickedUpAt
}

// DeliveredAt returns when the order was handed over, nil if not yet.
func (c CourierAssignment) DeliveredAt() *time.Time {
	return c.deliveredAt
}
