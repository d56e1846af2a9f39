package order

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrCourierNotAssigned is returned when an operation requires a courier
	// assignment that the order does not have.
	ErrCourierNotAssigned = errs.NewValueIsRequiredError("courierAssignment")

	// ErrNotAssignedCourier is returned when a courier other than the assigned
	// one attempts to act on an order.
	ErrNotAssignedCourier = errors.New("only the assigned courier may perform this operation")
)

// Order is the aggregate root for a food order. It owns the status state
// machine and is the single writer of status and statusHistory.
//
// Invariants:
//   - statusHistory is append-only and its last entry's status equals status
//   - pricing.finalAmount is computed once at placement and never mutated
//   - OutForDelivery requires a courier assignment
//   - cashCollection exists only for cash-on-delivery orders, populated on delivery
//   - terminal orders (Delivered, Cancelled) accept no further transitions
type Order struct {
	id         kernel.UUID
	number     string
	customerID kernel.UUID
	items      []LineItem
	pricing    Pricing
	address    DeliveryAddress
	payment    PaymentMethod
	status     Status
	history    []HistoryEntry
	assignment *CourierAssignment
	cash       *CashCollection
	version    int64
	guard      guard.ConstructorGuard
}

// NewOrder places a new order in Pending status with a single opening history
// entry recorded for the placing actor. The pricing block is computed from
// the line items plus the given fee, tax and discount.
func NewOrder(
	id kernel.UUID,
	number string,
	customerID kernel.UUID,
	items []LineItem,
	address DeliveryAddress,
	payment PaymentMethod,
	deliveryFee, tax, discount decimal.Decimal,
	placedBy Actor,
	placedAt time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		address.Validate(),
		payment.Validate(),
		placedBy.Validate(),
	); err != nil {
		return nil, err
	}
	if number == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}
	if _, err := ParseNumber(number); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	pricing, err := NewPricing(items, deliveryFee, tax, discount)
	if err != nil {
		return nil, err
	}

	opening, err := NewHistoryEntry(Pending, placedAt, placedBy, "order placed")
	if err != nil {
		return nil, err
	}

	return &Order{
		id:         id,
		number:     number,
		customerID: customerID,
		items:      append([]LineItem(nil), items...),
		pricing:    pricing,
		address:    address,
		payment:    payment,
		status:     Pending,
		history:    []HistoryEntry{opening},
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreOrder reconstructs an Order aggregate from persistence.
// The stored history must be non-empty and its last entry must match the
// stored status; a mismatch means the document was corrupted outside the
// aggregate and is rejected.
func RestoreOrder(
	id kernel.UUID,
	number string,
	customerID kernel.UUID,
	items []LineItem,
	pricing Pricing,
	address DeliveryAddress,
	payment PaymentMethod,
	status Status,
	history []HistoryEntry,
	assignment *CourierAssignment,
	cash *CashCollection,
	version int64,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		pricing.Validate(),
		address.Validate(),
		payment.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, errs.NewValueIsRequiredError("statusHistory")
	}
	if last := history[len(history)-1].Status(); last != status {
		return nil, errs.NewValueIsInvalidErrorWithCause("statusHistory",
			fmt.Errorf("last history status %s does not match order status %s", last, status))
	}
	if status == OutForDelivery || status == Delivered {
		if assignment == nil {
			return nil, ErrCourierNotAssigned
		}
	}

	return &Order{
		id:         id,
		number:     number,
		customerID: customerID,
		items:      append([]LineItem(nil), items...),
		pricing:    pricing,
		address:    address,
		payment:    payment,
		status:     status,
		history:    append([]HistoryEntry(nil), history...),
		assignment: assignment,
		cash:       cash,
		version:    version,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Order was created through a factory method.
func (o *Order) Validate() error {
	if o == nil || o.guard.Validate(ErrOrderIsNotConstructed) != nil {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() string {
	return o.number
}

// CustomerID returns the placing customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []LineItem {
	return append([]LineItem(nil), o.items...)
}

// Pricing returns the order's money block.
func (o *Order) Pricing() Pricing {
	return o.pricing
}

// Address returns the delivery destination.
func (o *Order) Address() DeliveryAddress {
	return o.address
}

// Payment returns the payment method.
func (o *Order) Payment() PaymentMethod {
	return o.payment
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// History returns a copy of the append-only status log.
func (o *Order) History() []HistoryEntry {
	return append([]HistoryEntry(nil), o.history...)
}

// Assignment returns the courier assignment, nil while unassigned.
func (o *Order) Assignment() *CourierAssignment {
	return o.assignment
}

// Cash returns the cash collection record, nil for prepaid or undelivered orders.
func (o *Order) Cash() *CashCollection {
	return o.cash
}

// Version returns the optimistic-concurrency version read from the store.
// Conditional writes use it as the expected value; the aggregate itself never
// bumps it.
func (o *Order) Version() int64 {
	return o.version
}

// MarkReady transitions Pending -> Ready. Operators only.
func (o *Order) MarkReady(actor Actor, note string, at time.Time) error {
	return o.applyTransition(Ready, actor, note, at)
}

// Cancel transitions Pending or Ready -> Cancelled. Customers may cancel
// their own pending orders; operators may cancel pending or ready orders.
// An order already out for delivery cannot be cancelled.
func (o *Order) Cancel(actor Actor, note string, at time.Time) error {
	if actor.Role() == RoleCustomer && actor.ID() != o.customerID.String() {
		return fmt.Errorf("%w: customer %s does not own order %s",
			ErrInvalidTransition, actor.ID(), o.number)
	}
	return o.applyTransition(Cancelled, actor, note, at)
}

// AssignCourier attaches a courier snapshot and transitions
// Ready -> OutForDelivery in one step. The dispatch coordinator is the only
// caller; assignment and transition are never observable separately.
func (o *Order) AssignCourier(assignment CourierAssignment, actor Actor, note string, at time.Time) error {
	if err := assignment.Validate(); err != nil {
		return err
	}

	o.assignment = &assignment
	if err := o.applyTransition(OutForDelivery, actor, note, at); err != nil {
		o.assignment = nil
		return err
	}
	return nil
}

// MarkPickedUp records the pickup timestamp on the assignment. Assigned
// courier only; the status does not change.
func (o *Order) MarkPickedUp(actor Actor, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.status != OutForDelivery {
		return fmt.Errorf("%w: cannot pick up order in status %s", ErrInvalidTransition, o.status)
	}
	if err := o.requireAssignedCourier(actor); err != nil {
		return err
	}

	pickedUp := at
	o.assignment.pickedUpAt = &pickedUp
	return nil
}

// MarkDelivered transitions OutForDelivery -> Delivered. Only the assigned
// courier may confirm delivery. For cash-on-delivery orders the cash
// collection record is populated atomically with the transition: expected is
// the order's final amount and collected defaults to expected when the
// courier does not report an amount.
//
// The caller (command handler) is responsible for verifying the courier has
// an open delivery session before invoking this method.
func (o *Order) MarkDelivered(actor Actor, collected *decimal.Decimal, note string, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if _, err := o.status.TransitionTo(Delivered); err != nil {
		return err
	}
	if err := o.requireAssignedCourier(actor); err != nil {
		return err
	}

	var cash *CashCollection
	if o.payment == CashOnDelivery {
		amount := o.pricing.FinalAmount()
		if collected != nil {
			amount = *collected
		}
		c, err := NewCashCollection(o.pricing.FinalAmount(), amount)
		if err != nil {
			return err
		}
		cash = &c
	}

	if err := o.applyTransition(Delivered, actor, note, at); err != nil {
		return err
	}

	o.cash = cash
	deliveredAt := at
	o.assignment.deliveredAt = &deliveredAt
	return nil
}

// CollectedAmount returns the cash amount collected on delivery, zero for
// prepaid orders.
func (o *Order) CollectedAmount() decimal.Decimal {
	if o.cash == nil {
		return decimal.Zero
	}
	return o.cash.Collected()
}

// applyTransition is the single write path for status and history. It checks
// the transition table, the actor's capability for the move, and the
// assignment requirement for OutForDelivery, then appends exactly one history
// entry.
func (o *Order) applyTransition(target Status, actor Actor, note string, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}
	if !actor.Role().MayPerform(o.status, target) {
		return fmt.Errorf("%w: role %s may not perform %s -> %s",
			ErrInvalidTransition, actor.Role(), o.status, target)
	}
	if target == OutForDelivery && o.assignment == nil {
		return ErrCourierNotAssigned
	}

	entry, err := NewHistoryEntry(newStatus, at, actor, note)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.history = append(o.history, entry)
	return nil
}

// requireAssignedCourier checks the actor is the courier on the assignment.
func (o *Order) requireAssignedCourier(actor Actor) error {
	if o.assignment == nil {
		return ErrCourierNotAssigned
	}
	if actor.Role() != RoleCourier || actor.ID() != o.assignment.CourierID().String() {
		return fmt.Errorf("%w: actor %s", ErrNotAssignedCourier, actor)
	}
	return nil
}
