// Package ports defines the contracts between the order workflow and its infrastructure.
// Repositories returned by a UnitOfWork run inside its transaction.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates together with their items and status trail.
type OrderRepository interface {
	// Add stores a placed order, its items and the status events recorded so far.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update stores status and locked_at and appends the pending status events.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items by identifier.
	// Returns errs.ErrObjectNotFound when it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate loads the order holding a row lock until the transaction ends.
	// Every operation that decides on the order's status takes this lock first.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
