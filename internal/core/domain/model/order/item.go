package order

import (
	"fmt"
	"strings"

	"orderdesk/internal/core/domain/model/kernel"

	"orderdesk/internal/pkg/errs"
)

// Item is a single line of an order: a product reference with the quantity
// purchased and the unit price at purchase time. Item is an immutable value
// object; amounts on the order never change after creation.
type Item struct {
	productRef string
	name       string
	imageRef   string
	quantity   int
	unitPrice  kernel.Money
}

// NewItem creates a validated order line.
// Quantity must be at least 1; unit price may be zero (free items) but not
// negative, which Money enforces at construction.
func NewItem(productRef, name, imageRef string, quantity int, unitPrice kernel.Money) (Item, error) {
	if strings.TrimSpace(productRef) == "" {
		return Item{}, errs.NewValueIsRequiredError("item product reference")
	}
	if strings.TrimSpace(name) == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}
	if quantity < 1 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"item quantity",
			fmt.Errorf("%d is less than 1", quantity),
		)
	}
	return Item{
		productRef: productRef,
		name:       name,
		imageRef:   imageRef,
		quantity:   quantity,
		unitPrice:  unitPrice,
	}, nil
}

// ProductRef returns the opaque product reference.
func (i Item) ProductRef() string { return i.productRef }

// Name returns the product name as sold.
func (i Item) Name() string { return i.name }

// ImageRef returns the product image reference, empty when not provided.
func (i Item) ImageRef() string { return i.imageRef }

// Quantity returns the number of units purchased.
func (i Item) Quantity() int { return i.quantity }

// UnitPrice returns the per-unit price at purchase time.
func (i Item) UnitPrice() kernel.Money { return i.unitPrice }
