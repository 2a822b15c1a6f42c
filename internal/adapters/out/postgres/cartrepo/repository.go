package cartrepo

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartRepository implements ports.CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// GetOrCreate inserts an empty cart when the owner has none, then locks the row.
// Concurrent first accesses race on the owner_id unique key; the loser's insert
// is a no-op and it reads the winner's row.
func (r *GormCartRepository) GetOrCreate(ctx context.Context, ownerID kernel.UUID) (*cart.Cart, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}

	fresh, err := cart.New(kernel.NewUUID(), ownerID)
	if err != nil {
		return nil, err
	}
	dto := fromDomain(fresh)
	dto.Items = nil
	dto.UpdatedAt = time.Now().UTC()
	if err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "owner_id"}}, DoNothing: true}).
		Create(&dto).Error; err != nil {
		return nil, err
	}

	var stored CartDTO
	if err = r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&stored, "owner_id = ?", ownerID.Bytes()).Error; err != nil {
		return nil, err
	}
	if err = r.db.WithContext(ctx).
		Where("cart_id = ?", stored.ID).
		Order("position").
		Find(&stored.Items).Error; err != nil {
		return nil, err
	}

	return toDomain(stored)
}

// Save writes the cart header and replaces the item set.
func (r *GormCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	result := r.db.WithContext(ctx).
		Model(&CartDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"vendor_id":        dto.VendorID,
			"fulfillment_type": dto.FulfillmentType,
			"address_id":       dto.AddressID,
			"updated_at":       time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.db.WithContext(ctx).Where("cart_id = ?", dto.ID).Delete(&CartItemDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&dto.Items).Error
}
