// Package pricing computes the money breakdown shared by cart display and checkout.
package pricing

import (
	"marketplace/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Line is one priced cart or order line.
type Line struct {
	Quantity    int
	UnitPrice   decimal.Decimal
	DeliveryFee decimal.Decimal
}

// Breakdown holds every money field an order freezes at checkout.
//
// Total is always Subtotal + DeliveryFee + ServiceFee + Tax - Discount.
type Breakdown struct {
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	ServiceFee  decimal.Decimal
	Tax         decimal.Decimal
	Discount    decimal.Decimal
	Total       decimal.Decimal
}

// Compute prices lines for the given fulfillment type.
//
// The delivery fee is summed once per line, not per unit, and only for delivery.
// Service fee, tax and discount are always zero.
//
// Parameters:
//   - fulfillment: pickup drops every line's delivery fee
//   - lines: priced lines; an empty slice yields an all-zero breakdown
//
// Example:
//
//	b := pricing.Compute(kernel.FulfillmentDelivery, []pricing.Line{
//	    {Quantity: 2, UnitPrice: decimal.RequireFromString("10.00"), DeliveryFee: decimal.RequireFromString("3.50")},
//	})
//	// b.Subtotal = 20.00, b.DeliveryFee = 3.50, b.Total = 23.50
func Compute(fulfillment kernel.FulfillmentType, lines []Line) Breakdown {
	subtotal := decimal.Zero
	delivery := decimal.Zero

	for _, l := range lines {
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
		if fulfillment.IsDelivery() {
			delivery = delivery.Add(l.DeliveryFee)
		}
	}

	b := Breakdown{
		Subtotal:    subtotal,
		DeliveryFee: delivery,
		ServiceFee:  decimal.Zero,
		Tax:         decimal.Zero,
		Discount:    decimal.Zero,
	}
	b.Total = b.Subtotal.Add(b.DeliveryFee).Add(b.ServiceFee).Add(b.Tax).Sub(b.Discount)
	return b
}

// ItemDeliveryFee resolves a product's per-line delivery fee: the product override,
// then the vendor's base fee, then zero.
func ItemDeliveryFee(productOverride, vendorBase *decimal.Decimal) decimal.Decimal {
	switch {
	case productOverride != nil:
		return *productOverride
	case vendorBase != nil:
		return *vendorBase
	default:
		return decimal.Zero
	}
}
