package cart

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/pricing"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// Cart errors. All of them leave the cart unchanged.
var (
	ErrCartIsNotConstructed = errors.New("Cart must be created via New or Restore")

	ErrEmptyCart          = errs.NewStateConflictError("cart", "cart is empty")
	ErrVendorRequired     = errs.NewStateConflictError("cart", "vendor is required")
	ErrVendorMismatch     = errs.NewStateConflictError("cart", "cart supports one vendor at a time, clear cart to switch vendors")
	ErrInvalidFulfillment = errs.NewValueIsInvalidErrorWithCause(
		"address_id", errors.New("delivery requires an address and pickup must not have one"),
	)
	ErrAddressRequired = errs.NewValueIsRequiredErrorWithCause(
		"address_id", errors.New("address required for delivery"),
	)
)

// Cart is the aggregate root for a customer's basket. There is exactly one per
// customer, created lazily on first access and never deleted.
//
// Cart follows these invariants:
//   - All items belong to a single vendor; the vendor is released with the last item
//   - A delivery cart carries an address, a pickup cart never does at checkout
//   - Each line keeps the price and delivery fee snapshot of its last add
//   - Quantities are at least 1
//
// Example:
//
//	c, err := cart.New(kernel.NewUUID(), customerID)
//	if err != nil {
//	    return err
//	}
//	if _, err = c.AddItem(product, vendor, 2); err != nil {
//	    return err // cart.ErrVendorMismatch when another vendor is in the cart
//	}
//	total := c.Pricing().Total
type Cart struct {
	id          kernel.UUID
	ownerID     kernel.UUID
	vendorID    *kernel.UUID
	fulfillment kernel.FulfillmentType
	addressID   *kernel.UUID
	items       []*Item
	guard       guard.ConstructorGuard
}

// New creates an empty delivery cart for ownerID.
//
// Parameters:
//   - id: identifier of the cart
//   - ownerID: the customer owning the cart
//
// Returns:
//   - *Cart: an empty cart with delivery fulfillment and no vendor
//   - error: ValueIsRequiredError when an identifier is missing
func New(id, ownerID kernel.UUID) (*Cart, error) {
	if err := errors.Join(id.Validate(), ownerID.Validate()); err != nil {
		return nil, err
	}
	return &Cart{
		id:          id,
		ownerID:     ownerID,
		fulfillment: kernel.FulfillmentDelivery,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Restore rebuilds a cart from storage.
// Returns an error when an identifier or the fulfillment type is invalid.
func Restore(
	id, ownerID kernel.UUID,
	vendorID *kernel.UUID,
	fulfillment kernel.FulfillmentType,
	addressID *kernel.UUID,
	items []*Item,
) (*Cart, error) {
	c, err := New(id, ownerID)
	if err != nil {
		return nil, err
	}
	if err = fulfillment.Validate(); err != nil {
		return nil, err
	}
	c.vendorID = vendorID
	c.fulfillment = fulfillment
	c.addressID = addressID
	c.items = items
	return c, nil
}

// Validate ensures the Cart was created through New or Restore.
func (c *Cart) Validate() error {
	if c == nil {
		return ErrCartIsNotConstructed
	}
	return c.guard.Validate(ErrCartIsNotConstructed)
}

// ID returns the cart's unique identifier.
func (c *Cart) ID() kernel.UUID {
	return c.id
}

// OwnerID returns the customer the cart belongs to.
func (c *Cart) OwnerID() kernel.UUID {
	return c.ownerID
}

// VendorID returns the vendor all items belong to.
// Returns nil for an empty cart.
func (c *Cart) VendorID() *kernel.UUID {
	return c.vendorID
}

// Fulfillment returns the selected fulfillment type.
func (c *Cart) Fulfillment() kernel.FulfillmentType {
	return c.fulfillment
}

// AddressID returns the delivery address.
// Returns nil when none is selected or the cart is set to pickup.
func (c *Cart) AddressID() *kernel.UUID {
	return c.addressID
}

// Items returns the cart lines in insertion order.
func (c *Cart) Items() []*Item {
	return c.items
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// AddItem adds quantity units of product. Adding a product already in the cart
// increments its quantity and re-syncs the price and fee snapshots.
//
// Parameters:
//   - product: catalog product to add; inactive products are treated as missing
//   - vendor: the product's vendor, used to resolve the delivery fee
//   - quantity: units to add, at least 1
//
// Returns:
//   - *Item: the new or updated line
//   - error: ValueIsInvalidError for the quantity, ObjectNotFoundError for an
//     inactive product or ErrVendorMismatch when the cart holds another vendor
func (c *Cart) AddItem(product catalog.Product, vendor *catalog.Vendor, quantity int) (*Item, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, errs.NewObjectNotFoundError("product_id", product.ID)
	}
	if c.vendorID != nil && !c.vendorID.IsEqual(product.VendorID) {
		return nil, ErrVendorMismatch
	}

	vendorID := product.VendorID
	c.vendorID = &vendorID

	fee := product.DeliveryFee(vendor)
	for _, it := range c.items {
		if it.productID.IsEqual(product.ID) {
			it.quantity += quantity
			it.unitPrice = product.Price
			it.deliveryFee = fee
			it.name = product.Name
			return it, nil
		}
	}

	it := &Item{
		id:          kernel.NewUUID(),
		productID:   product.ID,
		name:        product.Name,
		quantity:    quantity,
		unitPrice:   product.Price,
		deliveryFee: fee,
	}
	c.items = append(c.items, it)
	return it, nil
}

// UpdateItemQuantity replaces the quantity of an existing line.
//
// Returns ObjectNotFoundError when itemID is not in this cart.
func (c *Cart) UpdateItemQuantity(itemID kernel.UUID, quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	it := c.findItem(itemID)
	if it == nil {
		return errs.NewObjectNotFoundError("item", itemID)
	}
	it.quantity = quantity
	return nil
}

// RemoveItem drops a line; the vendor is released with the last one.
//
// Returns ObjectNotFoundError when itemID is not in this cart.
func (c *Cart) RemoveItem(itemID kernel.UUID) error {
	for i, it := range c.items {
		if it.id.IsEqual(itemID) {
			c.items = append(c.items[:i], c.items[i+1:]...)
			if len(c.items) == 0 {
				c.vendorID = nil
			}
			return nil
		}
	}
	return errs.NewObjectNotFoundError("item", itemID)
}

// SetFulfillment switches between pickup and delivery. Ownership of the address
// is checked by the caller, which has access to the catalog.
func (c *Cart) SetFulfillment(fulfillment kernel.FulfillmentType, addressID *kernel.UUID) error {
	if err := fulfillment.Validate(); err != nil {
		return err
	}
	if fulfillment.IsDelivery() {
		if addressID == nil {
			return ErrAddressRequired
		}
		id := *addressID
		c.addressID = &id
	} else {
		c.addressID = nil
	}
	c.fulfillment = fulfillment
	return nil
}

// Clear removes all items and resets the vendor and address. Fulfillment type is kept.
func (c *Cart) Clear() {
	c.items = nil
	c.vendorID = nil
	c.addressID = nil
}

// Lines returns the pricing view of the cart lines.
func (c *Cart) Lines() []pricing.Line {
	lines := make([]pricing.Line, 0, len(c.items))
	for _, it := range c.items {
		lines = append(lines, pricing.Line{
			Quantity:    it.quantity,
			UnitPrice:   it.unitPrice,
			DeliveryFee: it.deliveryFee,
		})
	}
	return lines
}

// Pricing recomputes the totals from the current items.
func (c *Cart) Pricing() pricing.Breakdown {
	return pricing.Compute(c.fulfillment, c.Lines())
}

// ValidateForCheckout reports why the cart cannot become an order, if it cannot.
//
// Returns:
//   - ErrEmptyCart when there are no lines
//   - ErrInvalidFulfillment when delivery lacks an address or pickup has one
//   - ErrVendorRequired when no vendor is set
func (c *Cart) ValidateForCheckout() error {
	if c.IsEmpty() {
		return ErrEmptyCart
	}
	if c.fulfillment.IsDelivery() != (c.addressID != nil) {
		return ErrInvalidFulfillment
	}
	if c.vendorID == nil {
		return ErrVendorRequired
	}
	return nil
}

func (c *Cart) findItem(itemID kernel.UUID) *Item {
	for _, it := range c.items {
		if it.id.IsEqual(itemID) {
			return it
		}
	}
	return nil
}

func validateQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity))
	}
	return nil
}
