package order

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrLineItemIsNotConstructed is returned when using an improperly initialized LineItem.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is one ordered product with its name and price captured at order
// time. Catalog changes after placement never affect an existing order; the
// snapshot is the contract with the customer.
type LineItem struct {
	catalogItemID  kernel.UUID
	name           string
	unitPrice      decimal.Decimal
	quantity       int
	customizations []string
	guard          guard.ConstructorGuard
}

// NewLineItem creates a LineItem snapshot. Quantity must be at least 1 and
// the unit price must not be negative.
func NewLineItem(
	catalogItemID kernel.UUID,
	name string,
	unitPrice decimal.Decimal,
	quantity int,
	customizations []string,
) (LineItem, error) {
	if err := catalogItemID.Validate(); err != nil {
		return LineItem{}, err
	}
	if name == "" {
		return LineItem{}, errs.NewValueIsRequiredError("item name")
	}
	if unitPrice.IsNegative() {
		return LineItem{}, errs.NewValueIsInvalidError("item unit price")
	}
	if quantity < 1 {
		return LineItem{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, int(^uint(0)>>1))
	}

	return LineItem{
		catalogItemID:  catalogItemID,
		name:           name,
		unitPrice:      unitPrice,
		quantity:       quantity,
		customizations: append([]string(nil), customizations...),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate checks the LineItem was created through its constructor.
func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

// CatalogItemID returns the referenced catalog item.
func (i LineItem) CatalogItemID() kernel.UUID {
	return i.catalogItemID
}

// Name returns the item name captured at order time.
func (i LineItem) Name() string {
	return i.name
}

// UnitPrice returns the per-unit price captured at order time.
func (i LineItem) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// Quantity returns the ordered quantity.
func (i LineItem) Quantity() int {
	return i.quantity
}

// Customizations returns a copy of the per-item customization list.
func (i LineItem) Customizations() []string {
	return append([]string(nil), i.customizations...)
}

// Subtotal returns unitPrice multiplied by quantity.
func (i LineItem) Subtotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}
