package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAddCartItemCommandIsNotConstructed = errors.New(
	"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
)

// AddCartItemCommand puts a product into the caller's cart or raises its quantity.
type AddCartItemCommand struct {
	actor     actor.Capabilities
	productID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

// NewAddCartItemCommand creates a new add-item command.
// Returns a ValueIsOutOfRangeError when quantity is below one.
func NewAddCartItemCommand(caller actor.Capabilities, productID kernel.UUID, quantity int) (AddCartItemCommand, error) {
	cmd := AddCartItemCommand{}
	if err := errors.Join(
		caller.ActorID().Validate(),
		cmd.setProductID(productID),
		cmd.setQuantity(quantity),
	); err != nil {
		return AddCartItemCommand{}, err
	}
	cmd.actor = caller
	cmd.guard = guard.NewConstructorGuard()
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAddCartItemCommandIsNotConstructed if validation fails.
func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

// Actor returns the caller the command is authorized against.
func (c AddCartItemCommand) Actor() actor.Capabilities {
	return c.actor
}

// ProductID returns the product to add.
func (c AddCartItemCommand) ProductID() kernel.UUID {
	return c.productID
}

// Quantity returns the number of units to add.
func (c AddCartItemCommand) Quantity() int {
	return c.quantity
}

func (c *AddCartItemCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("product_id", err)
	}
	c.productID = productID
	return nil
}

func (c *AddCartItemCommand) setQuantity(quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	c.quantity = quantity
	return nil
}
