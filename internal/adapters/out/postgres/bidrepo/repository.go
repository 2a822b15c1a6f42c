package bidrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBidRepository implements ports.BidRepository using GORM.
type GormBidRepository struct {
	db *gorm.DB
}

// NewGormBidRepository creates a new GORM bid repository.
func NewGormBidRepository(db *gorm.DB) *GormBidRepository {
	return &GormBidRepository{db: db}
}

// Add inserts a new bid row.
func (r *GormBidRepository) Add(ctx context.Context, b *bid.Bid) error {
	if err := b.Validate(); err != nil {
		return err
	}

	dto := fromDomain(b)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes every column, including the nullable offer fields.
func (r *GormBidRepository) Update(ctx context.Context, b *bid.Bid) error {
	if err := b.Validate(); err != nil {
		return err
	}

	dto := fromDomain(b)
	result := r.db.WithContext(ctx).
		Model(&BidDTO{}).
		Where("id = ?", dto.ID).
		Select("amount", "eta_minutes", "distance_km", "status", "expires_at", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByOrder reads the bids of an order ordered by creation time.
func (r *GormBidRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*bid.Bid, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []BidDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	bids := make([]*bid.Bid, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		bids = append(bids, b)
	}
	return bids, nil
}

// FindByOrderAndDriver reads the driver's bid row for the order.
func (r *GormBidRepository) FindByOrderAndDriver(ctx context.Context, orderID, driverID kernel.UUID) (*bid.Bid, error) {
	if err := errors.Join(orderID.Validate(), driverID.Validate()); err != nil {
		return nil, err
	}

	var dto BidDTO
	if err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND driver_id = ?", orderID.Bytes(), driverID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("bid", driverID.String())
		}
		return nil, err
	}
	return toDomain(dto)
}
