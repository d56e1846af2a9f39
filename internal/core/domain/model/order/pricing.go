package order

import (
	"errors"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrPricingIsNotConstructed is returned when using an improperly initialized Pricing.
var ErrPricingIsNotConstructed = errors.New("Pricing must be created via NewPricing constructor")

// Pricing is the immutable money block of an order. The final amount is
// always itemsTotal + deliveryFee + tax − discount, recomputed at
// construction and never mutated ad hoc afterwards.
type Pricing struct {
	itemsTotal  decimal.Decimal
	deliveryFee decimal.Decimal
	tax         decimal.Decimal
	discount    decimal.Decimal
	finalAmount decimal.Decimal
	guard       guard.ConstructorGuard
}

// NewPricing computes the pricing block from the order's line items and the
// given fee, tax and discount. All inputs must be non-negative and the
// resulting final amount must not be negative.
func NewPricing(items []LineItem, deliveryFee, tax, discount decimal.Decimal) (Pricing, error) {
	if len(items) == 0 {
		return Pricing{}, errs.NewValueIsRequiredError("items")
	}
	for _, component := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"deliveryFee", deliveryFee},
		{"tax", tax},
		{"discount", discount},
	} {
		if component.value.IsNegative() {
			return Pricing{}, errs.NewValueIsInvalidError(component.name)
		}
	}

	itemsTotal := decimal.Zero
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return Pricing{}, err
		}
		itemsTotal = itemsTotal.Add(item.Subtotal())
	}

	finalAmount := itemsTotal.Add(deliveryFee).Add(tax).Sub(discount)
	if finalAmount.IsNegative() {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause("discount",
			errors.New("discount exceeds order total"))
	}

	return Pricing{
		itemsTotal:  itemsTotal,
		deliveryFee: deliveryFee,
		tax:         tax,
		discount:    discount,
		finalAmount: finalAmount,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestorePricing reconstructs a pricing block from persistence without
// recomputation. The stored final amount is trusted; placement is the only
// writer of pricing.
func RestorePricing(itemsTotal, deliveryFee, tax, discount, finalAmount decimal.Decimal) Pricing {
	return Pricing{
		itemsTotal:  itemsTotal,
		deliveryFee: deliveryFee,
		tax:         tax,
		discount:    discount,
		finalAmount: finalAmount,
		guard:       guard.NewConstructorGuard(),
	}
}

// Validate checks the Pricing was created through a constructor.
func (p Pricing) Validate() error {
	return p.guard.Validate(ErrPricingIsNotConstructed)
}

// ItemsTotal returns the sum of all line item subtotals.
func (p Pricing) ItemsTotal() decimal.Decimal {
	return p.itemsTotal
}

// DeliveryFee returns the delivery fee.
func (p Pricing) DeliveryFee() decimal.Decimal {
	return p.deliveryFee
}

// Tax returns the tax amount.
func (p Pricing) Tax() decimal.Decimal {
	return p.tax
}

// Discount returns the discount amount.
func (p Pricing) Discount() decimal.Decimal {
	return p.discount
}

// FinalAmount returns itemsTotal + deliveryFee + tax − discount.
func (p Pricing) FinalAmount() decimal.Decimal {
	return p.finalAmount
}
