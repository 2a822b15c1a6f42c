// Package cartrepo persists one cart per owner together with its items.
package cartrepo

import (
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartDTO is the cart header row with its items.
type CartDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OwnerID         uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	VendorID        *uuid.UUID `gorm:"type:uuid"`
	FulfillmentType string
	AddressID       *uuid.UUID `gorm:"type:uuid"`
	UpdatedAt       time.Time
	Items           []CartItemDTO `gorm:"foreignKey:CartID;references:ID"`
}

// TableName maps CartDTO to the "carts" table.
func (CartDTO) TableName() string {
	return "carts"
}

// CartItemDTO is one cart line.
type CartItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CartID      uuid.UUID `gorm:"type:uuid;index"`
	ProductID   uuid.UUID `gorm:"type:uuid"`
	Position    int
	Name        string
	Quantity    int
	UnitPrice   decimal.Decimal `gorm:"type:numeric(10,2)"`
	DeliveryFee decimal.Decimal `gorm:"type:numeric(10,2)"`
}

// TableName maps CartItemDTO to the "cart_items" table.
func (CartItemDTO) TableName() string {
	return "cart_items"
}

// fromDomain converts a cart and its lines to rows.
func fromDomain(c *cart.Cart) CartDTO {
	dto := CartDTO{
		ID:              c.ID().Bytes(),
		OwnerID:         c.OwnerID().Bytes(),
		VendorID:        kernel.BytesPtr(c.VendorID()),
		FulfillmentType: c.Fulfillment().String(),
		AddressID:       kernel.BytesPtr(c.AddressID()),
	}
	dto.Items = make([]CartItemDTO, 0, len(c.Items()))
	for i, item := range c.Items() {
		dto.Items = append(dto.Items, CartItemDTO{
			ID:          item.ID().Bytes(),
			CartID:      dto.ID,
			ProductID:   item.ProductID().Bytes(),
			Position:    i,
			Name:        item.Name(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice(),
			DeliveryFee: item.DeliveryFee(),
		})
	}
	return dto
}

// toDomain restores a cart from its rows.
func toDomain(dto CartDTO) (*cart.Cart, error) {
	items := make([]*cart.Item, 0, len(dto.Items))
	for _, it := range dto.Items {
		items = append(items, cart.RestoreItem(
			kernel.FromGoogle(it.ID),
			kernel.FromGoogle(it.ProductID),
			it.Name,
			it.Quantity,
			it.UnitPrice,
			it.DeliveryFee,
		))
	}
	return cart.Restore(
		kernel.FromGoogle(dto.ID),
		kernel.FromGoogle(dto.OwnerID),
		kernel.FromGooglePtr(dto.VendorID),
		kernel.FulfillmentType(dto.FulfillmentType),
		kernel.FromGooglePtr(dto.AddressID),
		items,
	)
}
