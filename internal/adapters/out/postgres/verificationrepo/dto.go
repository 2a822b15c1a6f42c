// Package verificationrepo persists handoff verifications, one per order and type.
package verificationrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/verification"

	"github.com/google/uuid"
)

// VerificationDTO is the database row of a verification.
type VerificationDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID  `gorm:"type:uuid;uniqueIndex:verifications_order_id_type_key"`
	Type       string     `gorm:"uniqueIndex:verifications_order_id_type_key"`
	Code       string
	DriverID   *uuid.UUID `gorm:"type:uuid"`
	VerifiedAt *time.Time
}

// TableName maps VerificationDTO to the "verifications" table.
func (VerificationDTO) TableName() string {
	return "verifications"
}

// fromDomain converts a verification to its row.
func fromDomain(v *verification.Verification) VerificationDTO {
	return VerificationDTO{
		ID:         v.ID().Bytes(),
		OrderID:    v.OrderID().Bytes(),
		Type:       string(v.Type()),
		Code:       v.Code(),
		DriverID:   kernel.BytesPtr(v.DriverID()),
		VerifiedAt: v.VerifiedAt(),
	}
}

// toDomain restores a verification from its row.
func toDomain(dto VerificationDTO) (*verification.Verification, error) {
	return verification.Restore(
		kernel.FromGoogle(dto.ID),
		kernel.FromGoogle(dto.OrderID),
		verification.Type(dto.Type),
		dto.Code,
		kernel.FromGooglePtr(dto.DriverID),
		dto.VerifiedAt,
	)
}
