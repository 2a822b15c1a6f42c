package ports

import (
	"context"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
)

// CatalogRepository reads vendors, products and addresses maintained elsewhere.
type CatalogRepository interface {
	// GetVendor retrieves a vendor by its identifier.
	// Returns errs.ErrObjectNotFound when it does not exist.
	GetVendor(ctx context.Context, id kernel.UUID) (*catalog.Vendor, error)

	// GetProduct retrieves a product with its current price and active flag.
	// Returns errs.ErrObjectNotFound when it does not exist.
	GetProduct(ctx context.Context, id kernel.UUID) (*catalog.Product, error)

	// GetAddress retrieves a saved address with its owner.
	// Returns errs.ErrObjectNotFound when it does not exist.
	GetAddress(ctx context.Context, id kernel.UUID) (*catalog.Address, error)
}

// CapabilityResolver turns an authenticated identity into Capabilities.
type CapabilityResolver interface {
	Resolve(ctx context.Context, actorID kernel.UUID, roles []actor.Role) (actor.Capabilities, error)
}

// CodeGenerator produces uniformly random zero-padded 6-digit codes.
type CodeGenerator interface {
	Generate() (string, error)
}
