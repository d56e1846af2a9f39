package order

import (
	"errors"
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// ErrInvalidTransition is returned for any attempted status change that is not
// in the transition table. Illegal transitions are rejected, never clamped to
// the nearest legal state.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of an order.
// It implements a state machine with a fixed transition table:
//
//	PENDING ──> READY ──> OUT_FOR_DELIVERY ──> DELIVERED
//	   │          │
//	   └──────────┴──> CANCELLED
//
// DELIVERED and CANCELLED are terminal. Cancelling an order that is already
// out for delivery is rejected: the courier is en route, and that is a
// business policy, not an oversight.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is placed.
	Pending

	// Ready indicates the order is prepared and waiting for a courier.
	Ready

	// OutForDelivery indicates a courier has been assigned and is en route.
	OutForDelivery

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled before pickup. Terminal.
	Cancelled
)

// getStatusStrings returns the wire names of all statuses, Unknown included.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Pending:        "PENDING",
		Ready:          "READY",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Delivered:      "DELIVERED",
		Cancelled:      "CANCELLED",
	}
}

// getValidStatusStrings returns only valid statuses, to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "PENDING",
		Ready:          "READY",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Delivered:      "DELIVERED",
		Cancelled:      "CANCELLED",
	}
}

// transitionTable lists the allowed target statuses per source status.
// Terminal states have no entries.
func transitionTable() map[Status][]Status {
	return map[Status][]Status{
		Pending: {Ready, Cancelled},
		Ready:   {OutForDelivery, Cancelled},
		// Cancellation from OutForDelivery is deliberately absent.
		OutForDelivery: {Delivered},
	}
}

// Validate checks the Status is one of the defined values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, e.g. "OUT_FOR_DELIVERY".
// Implements fmt.Stringer; safe on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// StatusFromString parses a wire name back into a Status.
// Used when reconstructing orders from persistence or parsing API requests.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether the transition table allows moving to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitionTable()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo validates the move against the transition table and returns
// the new status. Returns an error wrapping ErrInvalidTransition otherwise.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
	}
	return target, nil
}
