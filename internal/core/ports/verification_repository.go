package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/verification"
)

// VerificationRepository defines the persistence contract for delivery codes.
// Verifications are keyed by order and type.
type VerificationRepository interface {
	// Find returns errs.ErrObjectNotFound when nothing was issued for the order.
	Find(ctx context.Context, orderID kernel.UUID, kind verification.Type) (*verification.Verification, error)

	// Save inserts or replaces the verification keyed by (order, type).
	Save(ctx context.Context, v *verification.Verification) error
}
