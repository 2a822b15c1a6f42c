// Package catalog holds the read-only vendor, product and address data the
// order workflow consumes. Catalog records are maintained elsewhere.
package catalog

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/pricing"

	"github.com/shopspring/decimal"
)

// Vendor is a shop that customers order from.
type Vendor struct {
	ID              kernel.UUID
	OwnerID         kernel.UUID
	Name            string
	BaseDeliveryFee *decimal.Decimal
	Location        *kernel.GeoPoint
}

// Product is a sellable item of one vendor.
type Product struct {
	ID                  kernel.UUID
	VendorID            kernel.UUID
	Name                string
	Price               decimal.Decimal
	DeliveryFeeOverride *decimal.Decimal
	IsActive            bool
}

// DeliveryFee resolves the per-line fee for p sold by v.
func (p Product) DeliveryFee(v *Vendor) decimal.Decimal {
	var base *decimal.Decimal
	if v != nil {
		base = v.BaseDeliveryFee
	}
	return pricing.ItemDeliveryFee(p.DeliveryFeeOverride, base)
}

// Address is a saved customer location.
type Address struct {
	ID               kernel.UUID
	UserID           *kernel.UUID
	FormattedAddress string
	Location         *kernel.GeoPoint
}

// IsOwnedBy reports whether the address belongs to userID.
func (a Address) IsOwnedBy(userID kernel.UUID) bool {
	return a.UserID != nil && a.UserID.IsEqual(userID)
}
