package order

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// PaymentMethod distinguishes orders paid up front from orders paid in cash
// on delivery. Only cash-on-delivery orders participate in settlement
// bookkeeping.
type PaymentMethod int

const (
	// PaymentUnknown represents an invalid or undefined payment method.
	PaymentUnknown PaymentMethod = iota

	// Prepaid orders were paid before placement; no cash changes hands.
	Prepaid

	// CashOnDelivery orders are paid in cash to the courier at the door.
	CashOnDelivery
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentUnknown: "UNKNOWN",
		Prepaid:        "PREPAID",
		CashOnDelivery: "CASH_ON_DELIVERY",
	}
}

// Validate checks the PaymentMethod is one of the defined values.
func (m PaymentMethod) Validate() error {
	if m != Prepaid && m != CashOnDelivery {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod",
			fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// String returns the wire name, e.g. "CASH_ON_DELIVERY".
func (m PaymentMethod) String() string {
	if s, ok := getPaymentMethodStrings()[m]; ok {
		return s
	}
	return "UNKNOWN"
}

// PaymentMethodFromString parses a wire name back into a PaymentMethod.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for m, name := range getPaymentMethodStrings() {
		if m != PaymentUnknown && name == s {
			return m, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("paymentMethod",
		fmt.Errorf("%q is not a valid payment method", s))
}
