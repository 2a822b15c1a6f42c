package commands

import (
	"context"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// withCart runs mutate against the caller's cart inside one transaction and
// persists the result. The cart row stays locked until commit.
func withCart(
	ctx context.Context,
	factory CartUoWFactory,
	ownerID kernel.UUID,
	mutate func(uow CartUoW, c *cart.Cart) error,
) (*cart.Cart, error) {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CartRepository().GetOrCreate(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err = mutate(uow, c); err != nil {
		return nil, err
	}
	if err = uow.CartRepository().Save(ctx, c); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// AddCartItemCommandHandler adds products to carts.
type AddCartItemCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewAddCartItemCommandHandler creates a new handler.
func NewAddCartItemCommandHandler(uowFactory CartUoWFactory) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{uowFactory: uowFactory}
}

// Handle adds the product to the cart, pinning the cart to the product's vendor.
func (h AddCartItemCommandHandler) Handle(ctx context.Context, cmd AddCartItemCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := cmd.Actor().CanShop(); err != nil {
		return nil, err
	}

	return withCart(ctx, h.uowFactory, cmd.Actor().ActorID(), func(uow CartUoW, c *cart.Cart) error {
		catalogRepo := uow.CatalogRepository()
		product, err := catalogRepo.GetProduct(ctx, cmd.ProductID())
		if err != nil {
			return err
		}
		vendor, err := catalogRepo.GetVendor(ctx, product.VendorID)
		if err != nil {
			return err
		}
		_, err = c.AddItem(*product, vendor, cmd.Quantity())
		return err
	})
}

// UpdateCartItemCommandHandler changes line quantities.
type UpdateCartItemCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewUpdateCartItemCommandHandler(uowFactory CartUoWFactory) UpdateCartItemCommandHandler {
	return UpdateCartItemCommandHandler{uowFactory: uowFactory}
}

// Handle replaces the quantity of the line.
// Returns an ObjectNotFoundError when the line is not in the caller's cart.
func (h UpdateCartItemCommandHandler) Handle(ctx context.Context, cmd UpdateCartItemCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return withCart(ctx, h.uowFactory, cmd.Actor().ActorID(), func(_ CartUoW, c *cart.Cart) error {
		return c.UpdateItemQuantity(cmd.ItemID(), cmd.Quantity())
	})
}

// RemoveCartItemCommandHandler removes cart lines.
type RemoveCartItemCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewRemoveCartItemCommandHandler(uowFactory CartUoWFactory) RemoveCartItemCommandHandler {
	return RemoveCartItemCommandHandler{uowFactory: uowFactory}
}

// Handle removes the line. Removing the last line releases the vendor.
func (h RemoveCartItemCommandHandler) Handle(ctx context.Context, cmd RemoveCartItemCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return withCart(ctx, h.uowFactory, cmd.Actor().ActorID(), func(_ CartUoW, c *cart.Cart) error {
		return c.RemoveItem(cmd.ItemID())
	})
}

// SetCartFulfillmentCommandHandler switches pickup and delivery.
type SetCartFulfillmentCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewSetCartFulfillmentCommandHandler(uowFactory CartUoWFactory) SetCartFulfillmentCommandHandler {
	return SetCartFulfillmentCommandHandler{uowFactory: uowFactory}
}

// Handle switches fulfillment. An address that does not belong to the caller
// is reported as missing so foreign address ids are not disclosed.
func (h SetCartFulfillmentCommandHandler) Handle(ctx context.Context, cmd SetCartFulfillmentCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return withCart(ctx, h.uowFactory, cmd.Actor().ActorID(), func(uow CartUoW, c *cart.Cart) error {
		if addressID := cmd.AddressID(); addressID != nil {
			address, err := uow.CatalogRepository().GetAddress(ctx, *addressID)
			if err != nil {
				return err
			}
			if !address.IsOwnedBy(cmd.Actor().ActorID()) {
				return errs.NewObjectNotFoundError("address_id", *addressID)
			}
		}
		return c.SetFulfillment(cmd.Fulfillment(), cmd.AddressID())
	})
}

// ClearCartCommandHandler empties carts.
type ClearCartCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewClearCartCommandHandler(uowFactory CartUoWFactory) ClearCartCommandHandler {
	return ClearCartCommandHandler{uowFactory: uowFactory}
}

func (h ClearCartCommandHandler) Handle(ctx context.Context, cmd ClearCartCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return withCart(ctx, h.uowFactory, cmd.Actor().ActorID(), func(_ CartUoW, c *cart.Cart) error {
		c.Clear()
		return nil
	})
}
