package order

import (
	"errors"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrCashCollectionIsNotConstructed is returned when using an improperly initialized CashCollection.
var ErrCashCollectionIsNotConstructed = errors.New("CashCollection must be created via NewCashCollection constructor")

// CashCollection records the cash handed to the courier on a
// cash-on-delivery order. Expected is the order's final amount; collected is
// what the courier reported. The settled flag flips once the amount has been
// reconciled into a closed delivery session's settlement.
type CashCollection struct {
	expected  decimal.Decimal
	collected decimal.Decimal
	settled   bool
	guard     guard.ConstructorGuard
}

// NewCashCollection creates a collection record. Collected must not be
// negative; expected comes from the order's final amount.
func NewCashCollection(expected, collected decimal.Decimal) (CashCollection, error) {
	if expected.IsNegative() {
		return CashCollection{}, errs.NewValueIsInvalidError("expected amount")
	}
	if collected.IsNegative() {
		return CashCollection{}, errs.NewValueIsInvalidError("collected amount")
	}

	return CashCollection{
		expected:  expected,
		collected: collected,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreCashCollection reconstructs a collection record from persistence.
func RestoreCashCollection(expected, collected decimal.Decimal, settled bool) CashCollection {
	return CashCollection{
		expected:  expected,
		collected: collected,
		settled:   settled,
		guard:     guard.NewConstructorGuard(),
	}
}

// Validate checks the CashCollection was created through a constructor.
func (c CashCollection) Validate() error {
	return c.guard.Validate(ErrCashCollectionIsNotConstructed)
}

// Expected returns the amount the courier was supposed to collect.
func (c CashCollection) Expected() decimal.Decimal {
	return c.expected
}

// Collected returns the amount the courier reported collecting.
func (c CashCollection) Collected() decimal.Decimal {
	return c.collected
}

// IsSettled reports whether the collection has been reconciled.
func (c CashCollection) IsSettled() bool {
	return c.settled
}
