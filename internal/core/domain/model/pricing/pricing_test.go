package pricing_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCompute(t *testing.T) {
	lines := []pricing.Line{{Quantity: 2, UnitPrice: dec("10.00"), DeliveryFee: dec("3.50")}}

	t.Run("delivery adds per-line fee", func(t *testing.T) {
		b := pricing.Compute(kernel.FulfillmentDelivery, lines)

		assert.True(t, b.Subtotal.Equal(dec("20.00")), b.Subtotal.String())
		assert.True(t, b.DeliveryFee.Equal(dec("3.50")), b.DeliveryFee.String())
		assert.True(t, b.Total.Equal(dec("23.50")), b.Total.String())
		assert.True(t, b.ServiceFee.IsZero())
		assert.True(t, b.Tax.IsZero())
		assert.True(t, b.Discount.IsZero())
	})

	t.Run("pickup drops the delivery fee", func(t *testing.T) {
		b := pricing.Compute(kernel.FulfillmentPickup, lines)

		assert.True(t, b.DeliveryFee.IsZero())
		assert.True(t, b.Total.Equal(dec("20.00")), b.Total.String())
	})

	t.Run("fee is not multiplied by quantity", func(t *testing.T) {
		b := pricing.Compute(kernel.FulfillmentDelivery, []pricing.Line{
			{Quantity: 3, UnitPrice: dec("1.10"), DeliveryFee: dec("2.00")},
			{Quantity: 1, UnitPrice: dec("4.00"), DeliveryFee: dec("0.50")},
		})

		assert.Equal(t, "7.30", b.Subtotal.StringFixed(2))
		assert.Equal(t, "2.50", b.DeliveryFee.StringFixed(2))
		assert.Equal(t, "9.80", b.Total.StringFixed(2))
	})

	t.Run("empty input prices to zero", func(t *testing.T) {
		b := pricing.Compute(kernel.FulfillmentDelivery, nil)
		assert.True(t, b.Total.IsZero())
	})
}

func TestItemDeliveryFee(t *testing.T) {
	override := dec("1.25")
	base := dec("4.00")

	assert.True(t, pricing.ItemDeliveryFee(&override, &base).Equal(override))
	assert.True(t, pricing.ItemDeliveryFee(nil, &base).Equal(base))
	assert.True(t, pricing.ItemDeliveryFee(nil, nil).IsZero())
}
