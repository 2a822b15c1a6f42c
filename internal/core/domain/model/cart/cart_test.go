package cart_test

import (
	"testing"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(vendorID kernel.UUID, price string) catalog.Product {
	return catalog.Product{
		ID:       kernel.NewUUID(),
		VendorID: vendorID,
		Name:     "Falafel wrap",
		Price:    decimal.RequireFromString(price),
		IsActive: true,
	}
}

func vendorWithFee(fee string) *catalog.Vendor {
	f := decimal.RequireFromString(fee)
	return &catalog.Vendor{ID: kernel.NewUUID(), OwnerID: kernel.NewUUID(), Name: "Shawarma Hub", BaseDeliveryFee: &f}
}

func newCart(t *testing.T) *cart.Cart {
	t.Helper()
	c, err := cart.New(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	c := newCart(t)

	require.NoError(t, c.Validate())
	assert.Equal(t, kernel.FulfillmentDelivery, c.Fulfillment())
	assert.True(t, c.IsEmpty())
	assert.Nil(t, c.VendorID())

	_, err := cart.New(kernel.UUID{}, kernel.NewUUID())
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	var zero cart.Cart
	assert.ErrorIs(t, zero.Validate(), cart.ErrCartIsNotConstructed)
}

func TestCart_AddItem(t *testing.T) {
	v := vendorWithFee("3.50")

	t.Run("should snapshot price and vendor fee", func(t *testing.T) {
		c := newCart(t)
		p := product(v.ID, "10.00")

		it, err := c.AddItem(p, v, 2)

		require.NoError(t, err)
		assert.Equal(t, 2, it.Quantity())
		assert.Equal(t, "3.50", it.DeliveryFee().StringFixed(2))
		require.NotNil(t, c.VendorID())
		assert.True(t, c.VendorID().IsEqual(v.ID))

		b := c.Pricing()
		assert.Equal(t, "20.00", b.Subtotal.StringFixed(2))
		assert.Equal(t, "3.50", b.DeliveryFee.StringFixed(2))
		assert.Equal(t, "23.50", b.Total.StringFixed(2))
	})

	t.Run("re-adding increments quantity and re-syncs price", func(t *testing.T) {
		c := newCart(t)
		p := product(v.ID, "10.00")
		_, err := c.AddItem(p, v, 1)
		require.NoError(t, err)

		p.Price = decimal.RequireFromString("12.00")
		override := decimal.RequireFromString("1.00")
		p.DeliveryFeeOverride = &override
		it, err := c.AddItem(p, v, 2)

		require.NoError(t, err)
		assert.Len(t, c.Items(), 1)
		assert.Equal(t, 3, it.Quantity())
		assert.Equal(t, "12.00", it.UnitPrice().StringFixed(2))
		assert.Equal(t, "1.00", it.DeliveryFee().StringFixed(2))
	})

	t.Run("should reject a second vendor and leave the cart unchanged", func(t *testing.T) {
		c := newCart(t)
		_, err := c.AddItem(product(v.ID, "10.00"), v, 1)
		require.NoError(t, err)

		other := vendorWithFee("0")
		_, err = c.AddItem(product(other.ID, "5.00"), other, 1)

		require.ErrorIs(t, err, cart.ErrVendorMismatch)
		assert.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Len(t, c.Items(), 1)
		assert.True(t, c.VendorID().IsEqual(v.ID))
		assert.Equal(t, "10.00", c.Pricing().Subtotal.StringFixed(2))
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		c := newCart(t)
		_, err := c.AddItem(product(v.ID, "1.00"), v, 0)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.True(t, c.IsEmpty())
	})

	t.Run("should treat inactive product as missing", func(t *testing.T) {
		c := newCart(t)
		p := product(v.ID, "1.00")
		p.IsActive = false

		_, err := c.AddItem(p, v, 1)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestCart_RemoveItem(t *testing.T) {
	v := vendorWithFee("1.00")
	c := newCart(t)
	first, _ := c.AddItem(product(v.ID, "1.00"), v, 1)
	second, _ := c.AddItem(product(v.ID, "2.00"), v, 1)

	require.NoError(t, c.RemoveItem(first.ID()))
	assert.NotNil(t, c.VendorID())

	require.NoError(t, c.RemoveItem(second.ID()))
	assert.Nil(t, c.VendorID())
	assert.True(t, c.IsEmpty())

	assert.ErrorIs(t, c.RemoveItem(second.ID()), errs.ErrObjectNotFound)
}

func TestCart_UpdateItemQuantity(t *testing.T) {
	v := vendorWithFee("1.00")
	c := newCart(t)
	it, _ := c.AddItem(product(v.ID, "1.00"), v, 1)

	require.NoError(t, c.UpdateItemQuantity(it.ID(), 5))
	assert.Equal(t, 5, it.Quantity())
	assert.ErrorIs(t, c.UpdateItemQuantity(it.ID(), -1), errs.ErrValueIsInvalid)
	assert.ErrorIs(t, c.UpdateItemQuantity(kernel.NewUUID(), 1), errs.ErrObjectNotFound)
}

func TestCart_SetFulfillment(t *testing.T) {
	c := newCart(t)
	addressID := kernel.NewUUID()

	assert.ErrorIs(t, c.SetFulfillment(kernel.FulfillmentDelivery, nil), cart.ErrAddressRequired)

	require.NoError(t, c.SetFulfillment(kernel.FulfillmentDelivery, &addressID))
	require.NotNil(t, c.AddressID())
	assert.True(t, c.AddressID().IsEqual(addressID))

	require.NoError(t, c.SetFulfillment(kernel.FulfillmentPickup, &addressID))
	assert.Nil(t, c.AddressID())
	assert.Equal(t, kernel.FulfillmentPickup, c.Fulfillment())

	assert.ErrorIs(t, c.SetFulfillment("teleport", nil), errs.ErrValueIsInvalid)
}

func TestCart_Clear(t *testing.T) {
	v := vendorWithFee("1.00")
	c := newCart(t)
	addressID := kernel.NewUUID()
	_, _ = c.AddItem(product(v.ID, "1.00"), v, 1)
	require.NoError(t, c.SetFulfillment(kernel.FulfillmentDelivery, &addressID))

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Nil(t, c.VendorID())
	assert.Nil(t, c.AddressID())
	assert.Equal(t, kernel.FulfillmentDelivery, c.Fulfillment())
}

func TestCart_ValidateForCheckout(t *testing.T) {
	v := vendorWithFee("1.00")
	addressID := kernel.NewUUID()

	t.Run("empty", func(t *testing.T) {
		assert.ErrorIs(t, newCart(t).ValidateForCheckout(), cart.ErrEmptyCart)
	})

	t.Run("delivery without address", func(t *testing.T) {
		c := newCart(t)
		_, _ = c.AddItem(product(v.ID, "1.00"), v, 1)
		assert.ErrorIs(t, c.ValidateForCheckout(), cart.ErrInvalidFulfillment)
	})

	t.Run("pickup with a stored address", func(t *testing.T) {
		it := cart.RestoreItem(kernel.NewUUID(), kernel.NewUUID(), "x", 1, decimal.NewFromInt(1), decimal.Zero)
		c, err := cart.Restore(kernel.NewUUID(), kernel.NewUUID(), &v.ID, kernel.FulfillmentPickup, &addressID, []*cart.Item{it})
		require.NoError(t, err)
		assert.ErrorIs(t, c.ValidateForCheckout(), cart.ErrInvalidFulfillment)
	})

	t.Run("missing vendor", func(t *testing.T) {
		it := cart.RestoreItem(kernel.NewUUID(), kernel.NewUUID(), "x", 1, decimal.NewFromInt(1), decimal.Zero)
		c, err := cart.Restore(kernel.NewUUID(), kernel.NewUUID(), nil, kernel.FulfillmentPickup, nil, []*cart.Item{it})
		require.NoError(t, err)
		assert.ErrorIs(t, c.ValidateForCheckout(), cart.ErrVendorRequired)
	})

	t.Run("ready", func(t *testing.T) {
		c := newCart(t)
		_, _ = c.AddItem(product(v.ID, "1.00"), v, 1)
		require.NoError(t, c.SetFulfillment(kernel.FulfillmentDelivery, &addressID))
		assert.NoError(t, c.ValidateForCheckout())
	})
}
