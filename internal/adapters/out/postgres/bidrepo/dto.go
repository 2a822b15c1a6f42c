// Package bidrepo persists driver bids. The (order_id, driver_id) unique key
// keeps one bid row per driver and order.
package bidrepo

import (
	"time"

	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BidDTO is the database row of a bid.
// Offer fields are nullable; a reopened bid overwrites them.
type BidDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID       `gorm:"type:uuid;uniqueIndex:bids_order_id_driver_id_key"`
	DriverID   uuid.UUID       `gorm:"type:uuid;uniqueIndex:bids_order_id_driver_id_key"`
	Amount     decimal.Decimal `gorm:"type:numeric(10,2)"`
	ETAMinutes *int            `gorm:"column:eta_minutes"`
	DistanceKm *float64        `gorm:"type:numeric(8,2)"`
	Status     string
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

// TableName maps BidDTO to the "bids" table.
func (BidDTO) TableName() string {
	return "bids"
}

// fromDomain converts a bid to its row.
func fromDomain(b *bid.Bid) BidDTO {
	return BidDTO{
		ID:         b.ID().Bytes(),
		OrderID:    b.OrderID().Bytes(),
		DriverID:   b.DriverID().Bytes(),
		Amount:     b.Amount(),
		ETAMinutes: b.ETAMinutes(),
		DistanceKm: b.DistanceKm(),
		Status:     b.Status().String(),
		ExpiresAt:  b.ExpiresAt(),
		CreatedAt:  b.CreatedAt(),
	}
}

// toDomain restores a bid from its row.
func toDomain(dto BidDTO) (*bid.Bid, error) {
	return bid.Restore(
		kernel.FromGoogle(dto.ID),
		kernel.FromGoogle(dto.OrderID),
		kernel.FromGoogle(dto.DriverID),
		dto.Amount,
		dto.DistanceKm,
		dto.ETAMinutes,
		bid.Status(dto.Status),
		dto.ExpiresAt,
		dto.CreatedAt,
	)
}
