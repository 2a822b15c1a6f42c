package cart

import (
	"marketplace/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Item is one cart line with the product snapshot captured at add time.
// The snapshot is what checkout freezes into the order.
type Item struct {
	id          kernel.UUID
	productID   kernel.UUID
	name        string
	quantity    int
	unitPrice   decimal.Decimal
	deliveryFee decimal.Decimal
}

// RestoreItem rebuilds an item from storage.
func RestoreItem(
	id, productID kernel.UUID,
	name string,
	quantity int,
	unitPrice, deliveryFee decimal.Decimal,
) *Item {
	return &Item{
		id:          id,
		productID:   productID,
		name:        name,
		quantity:    quantity,
		unitPrice:   unitPrice,
		deliveryFee: deliveryFee,
	}
}

// ID returns the line identifier used by the item routes.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// ProductID returns the catalog product of the line.
func (i *Item) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the product name at add time.
func (i *Item) Name() string {
	return i.name
}

// Quantity returns the number of units.
func (i *Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price snapshot.
func (i *Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// DeliveryFee returns the per-line fee snapshot.
// It is charged once per line regardless of quantity.
func (i *Item) DeliveryFee() decimal.Decimal {
	return i.deliveryFee
}
