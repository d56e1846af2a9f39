package order

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Role is the closed set of parties that may drive an order through its
// lifecycle. Behavior differences between roles are expressed through the
// capability table below, not through string comparison scattered around
// the codebase.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer placed the order; may only cancel it while still pending.
	RoleCustomer

	// RoleOperator runs the kitchen/back office; readies and cancels orders.
	RoleOperator

	// RoleCourier delivers the order; only the assigned courier may complete it.
	RoleCourier

	// RoleDispatcher is the dispatch coordinator acting on behalf of the system.
	RoleDispatcher
)

// getRoleStrings returns the wire names of all roles, RoleUnknown included.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "unknown",
		RoleCustomer:   "customer",
		RoleOperator:   "operator",
		RoleCourier:    "courier",
		RoleDispatcher: "dispatcher",
	}
}

// transitionCapabilities maps each allowed transition to the roles permitted
// to perform it. A transition missing from this table is allowed for no one,
// whatever the transition table says.
type transition struct {
	from Status
	to   Status
}

func transitionCapabilities() map[transition][]Role {
	return map[transition][]Role{
		{Pending, Ready}:            {RoleOperator},
		{Pending, Cancelled}:        {RoleOperator, RoleCustomer},
		{Ready, OutForDelivery}:     {RoleDispatcher, RoleOperator},
		{Ready, Cancelled}:          {RoleOperator},
		{OutForDelivery, Delivered}: {RoleCourier},
	}
}

// Validate checks the Role is one of the defined values.
func (r Role) Validate() error {
	if r == RoleUnknown {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire name of the role, e.g. "courier".
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// RoleFromString parses a wire name back into a Role.
func RoleFromString(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != RoleUnknown && name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// MayPerform reports whether the role is allowed to execute the given transition.
func (r Role) MayPerform(from, to Status) bool {
	for _, allowed := range transitionCapabilities()[transition{from, to}] {
		if allowed == r {
			return true
		}
	}
	return false
}

// Actor identifies who performed a transition: a role plus the party's
// identifier ("system" for the dispatch coordinator). Recorded in every
// status history entry for audit.
type Actor struct {
	role Role
	id   string
}

// NewActor creates an Actor with the given role and identifier.
func NewActor(role Role, id string) (Actor, error) {
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	if id == "" {
		return Actor{}, errs.NewValueIsRequiredError("actor id")
	}
	return Actor{role: role, id: id}, nil
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// ID returns the actor's identifier.
func (a Actor) ID() string {
	return a.id
}

// String implements fmt.Stringer as "role:id" for audit logs.
func (a Actor) String() string {
	return a.role.String() + ":" + a.id
}

// Validate checks the actor has a valid role and a non-empty identifier.
func (a Actor) Validate() error {
	if err := a.role.Validate(); err != nil {
		return err
	}
	if a.id == "" {
		return errs.NewValueIsRequiredError("actor id")
	}
	return nil
}
