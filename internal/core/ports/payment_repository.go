package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for payment records.
// An order carries one payment per checkout.
type PaymentRepository interface {
	// Add persists a new pending payment.
	// The referenced order must already be stored.
	Add(ctx context.Context, p *payment.Payment) error

	// Update persists a status change of an existing payment.
	// Used when cash on delivery is settled.
	Update(ctx context.Context, p *payment.Payment) error

	// ListByOrder returns every payment of the order.
	// Returns an empty slice when none exists.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*payment.Payment, error)
}
