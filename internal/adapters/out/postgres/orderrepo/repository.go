package orderrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts the order with its items and the events recorded since placement.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	return r.appendEvents(ctx, aggregate)
}

// Update writes status and locked_at, then appends pending events.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(map[string]any{
			"status":    aggregate.Status().String(),
			"locked_at": aggregate.LockedAt(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return r.appendEvents(ctx, aggregate)
}

// Get retrieves an order by ID without locking it.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.load(ctx, r.db, id)
}

// GetForUpdate takes SELECT ... FOR UPDATE on the order row.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.load(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// load reads the order through db, which may carry a locking clause, and its items.
func (r *GormOrderRepository) load(ctx context.Context, db *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).
		Order("position").
		Find(&dto.Items).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// appendEvents inserts the events pulled from the aggregate.
func (r *GormOrderRepository) appendEvents(ctx context.Context, aggregate *order.Order) error {
	events := eventsFromDomain(aggregate.ID(), aggregate.PullStatusEvents())
	if len(events) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&events).Error
}
