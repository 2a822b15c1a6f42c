package catalogrepo

import (
	"context"
	"errors"
	"slices"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCatalogRepository implements ports.CatalogRepository using GORM.
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM catalog repository.
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// GetVendor retrieves a vendor by ID.
func (r *GormCatalogRepository) GetVendor(ctx context.Context, id kernel.UUID) (*catalog.Vendor, error) {
	var dto VendorDTO
	if err := r.first(ctx, &dto, "vendor", id); err != nil {
		return nil, err
	}
	return vendorToDomain(dto)
}

// GetProduct retrieves a product by ID.
func (r *GormCatalogRepository) GetProduct(ctx context.Context, id kernel.UUID) (*catalog.Product, error) {
	var dto ProductDTO
	if err := r.first(ctx, &dto, "product", id); err != nil {
		return nil, err
	}
	return productToDomain(dto), nil
}

// GetAddress retrieves an address by ID.
func (r *GormCatalogRepository) GetAddress(ctx context.Context, id kernel.UUID) (*catalog.Address, error) {
	var dto AddressDTO
	if err := r.first(ctx, &dto, "address", id); err != nil {
		return nil, err
	}
	return addressToDomain(dto)
}

// first loads the row with id into dest, mapping a miss to ObjectNotFoundError.
func (r *GormCatalogRepository) first(ctx context.Context, dest any, name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).First(dest, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError(name, id.String())
		}
		return err
	}
	return nil
}

// GormCapabilityResolver implements ports.CapabilityResolver. Roles come from
// the authenticated identity; vendor ownership is read from the catalog.
type GormCapabilityResolver struct {
	db *gorm.DB
}

// NewGormCapabilityResolver creates a resolver reading vendor ownership from db.
func NewGormCapabilityResolver(db *gorm.DB) *GormCapabilityResolver {
	return &GormCapabilityResolver{db: db}
}

// Resolve attaches the vendors owned by actorID to the given roles.
func (r *GormCapabilityResolver) Resolve(
	ctx context.Context,
	actorID kernel.UUID,
	roles []actor.Role,
) (actor.Capabilities, error) {
	if err := actorID.Validate(); err != nil {
		return actor.Capabilities{}, err
	}

	var owned []kernel.UUID
	if slices.Contains(roles, actor.RoleVendor) {
		var ids []uuid.UUID
		if err := r.db.WithContext(ctx).
			Model(&VendorDTO{}).
			Where("owner_id = ?", actorID.Bytes()).
			Pluck("id", &ids).Error; err != nil {
			return actor.Capabilities{}, err
		}
		for _, id := range ids {
			owned = append(owned, kernel.FromGoogle(id))
		}
	}

	return actor.NewCapabilities(actorID, roles, owned)
}
