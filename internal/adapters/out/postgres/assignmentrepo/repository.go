package assignmentrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAssignmentRepository implements ports.AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAssignmentRepository creates a new GORM assignment repository.
func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Add inserts the assignment. A second assignment for the same order violates
// the order_id unique key and fails.
func (r *GormAssignmentRepository) Add(ctx context.Context, a *assignment.Assignment) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes the pickup and delivery stamps.
func (r *GormAssignmentRepository) Update(ctx context.Context, a *assignment.Assignment) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	result := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"picked_up_at": dto.PickedUpAt,
			"delivered_at": dto.DeliveredAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Get retrieves an assignment by ID.
func (r *GormAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

// ExistsForOrder counts assignments of the order.
func (r *GormAssignmentRepository) ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddTrackingPoint inserts one trail point.
func (r *GormAssignmentRepository) AddTrackingPoint(ctx context.Context, p assignment.TrackingPoint) error {
	dto := pointFromDomain(p)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListRecentTrackingPoints reads the trail newest first, capped at limit.
func (r *GormAssignmentRepository) ListRecentTrackingPoints(
	ctx context.Context,
	assignmentID kernel.UUID,
	limit int,
) ([]assignment.TrackingPoint, error) {
	if err := assignmentID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TrackingPointDTO
	if err := r.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID.Bytes()).
		Order("captured_at DESC").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	points := make([]assignment.TrackingPoint, 0, len(dtos))
	for _, dto := range dtos {
		p, err := pointToDomain(dto)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}
