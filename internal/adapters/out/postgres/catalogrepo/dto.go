// Package catalogrepo reads vendors, products and addresses, and resolves
// vendor ownership for caller capabilities.
package catalogrepo

import (
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VendorDTO is a vendor row. Coordinates are optional.
type VendorDTO struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey"`
	OwnerID         uuid.UUID        `gorm:"type:uuid;index"`
	Name            string
	BaseDeliveryFee *decimal.Decimal `gorm:"type:numeric(10,2)"`
	Lat             *float64         `gorm:"type:numeric(10,7)"`
	Lng             *float64         `gorm:"type:numeric(10,7)"`
}

// TableName maps VendorDTO to the "vendors" table.
func (VendorDTO) TableName() string {
	return "vendors"
}

// ProductDTO is a product row with its current price.
type ProductDTO struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primaryKey"`
	VendorID            uuid.UUID        `gorm:"type:uuid;index"`
	Name                string
	Price               decimal.Decimal  `gorm:"type:numeric(10,2)"`
	DeliveryFeeOverride *decimal.Decimal `gorm:"type:numeric(10,2)"`
	IsActive            bool
}

// TableName maps ProductDTO to the "products" table.
func (ProductDTO) TableName() string {
	return "products"
}

// AddressDTO is a saved customer address.
type AddressDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID           *uuid.UUID `gorm:"type:uuid;index"`
	FormattedAddress string
	Lat              *float64 `gorm:"type:numeric(10,7)"`
	Lng              *float64 `gorm:"type:numeric(10,7)"`
}

// TableName maps AddressDTO to the "addresses" table.
func (AddressDTO) TableName() string {
	return "addresses"
}

// vendorToDomain restores a vendor, validating its coordinates.
func vendorToDomain(dto VendorDTO) (*catalog.Vendor, error) {
	loc, err := kernel.NewGeoPointPtr(dto.Lat, dto.Lng)
	if err != nil {
		return nil, err
	}
	return &catalog.Vendor{
		ID:              kernel.FromGoogle(dto.ID),
		OwnerID:         kernel.FromGoogle(dto.OwnerID),
		Name:            dto.Name,
		BaseDeliveryFee: dto.BaseDeliveryFee,
		Location:        loc,
	}, nil
}

// productToDomain restores a product.
func productToDomain(dto ProductDTO) *catalog.Product {
	return &catalog.Product{
		ID:                  kernel.FromGoogle(dto.ID),
		VendorID:            kernel.FromGoogle(dto.VendorID),
		Name:                dto.Name,
		Price:               dto.Price,
		DeliveryFeeOverride: dto.DeliveryFeeOverride,
		IsActive:            dto.IsActive,
	}
}

// addressToDomain restores an address, validating its coordinates.
func addressToDomain(dto AddressDTO) (*catalog.Address, error) {
	loc, err := kernel.NewGeoPointPtr(dto.Lat, dto.Lng)
	if err != nil {
		return nil, err
	}
	return &catalog.Address{
		ID:               kernel.FromGoogle(dto.ID),
		UserID:           kernel.FromGooglePtr(dto.UserID),
		FormattedAddress: dto.FormattedAddress,
		Location:         loc,
	}, nil
}
