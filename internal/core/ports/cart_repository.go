package ports

import (
	"context"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
)

// CartRepository defines the persistence contract for shopping carts.
// Each owner has exactly one cart.
type CartRepository interface {
	// GetOrCreate returns the owner's cart, creating an empty one on first access.
	// The cart row stays locked until the transaction ends.
	GetOrCreate(ctx context.Context, ownerID kernel.UUID) (*cart.Cart, error)

	// Save writes the cart header and replaces its item set.
	Save(ctx context.Context, c *cart.Cart) error
}
