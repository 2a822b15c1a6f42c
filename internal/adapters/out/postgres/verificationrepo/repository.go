package verificationrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/verification"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormVerificationRepository implements ports.VerificationRepository using GORM.
type GormVerificationRepository struct {
	db *gorm.DB
}

// NewGormVerificationRepository creates a new GORM verification repository.
func NewGormVerificationRepository(db *gorm.DB) *GormVerificationRepository {
	return &GormVerificationRepository{db: db}
}

// Find reads the verification of the given type for the order.
func (r *GormVerificationRepository) Find(
	ctx context.Context,
	orderID kernel.UUID,
	kind verification.Type,
) (*verification.Verification, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto VerificationDTO
	if err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND type = ?", orderID.Bytes(), string(kind)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("verification", orderID.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

// Save upserts on (order_id, type), replacing code and verification state.
func (r *GormVerificationRepository) Save(ctx context.Context, v *verification.Verification) error {
	if err := v.Validate(); err != nil {
		return err
	}

	dto := fromDomain(v)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}, {Name: "type"}},
			DoUpdates: clause.AssignmentColumns([]string{"code", "driver_id", "verified_at"}),
		}).
		Create(&dto).Error
}
