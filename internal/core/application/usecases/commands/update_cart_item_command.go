package commands

import (
	"errors"
	"math"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateCartItemCommandIsNotConstructed = errors.New(
	"UpdateCartItemCommand must be created via NewUpdateCartItemCommand constructor",
)

// UpdateCartItemCommand replaces the quantity of one cart line.
type UpdateCartItemCommand struct {
	actor    actor.Capabilities
	itemID   kernel.UUID
	quantity int

	guard guard.ConstructorGuard
}

// NewUpdateCartItemCommand creates a new update-item command.
func NewUpdateCartItemCommand(caller actor.Capabilities, itemID kernel.UUID, quantity int) (UpdateCartItemCommand, error) {
	var idErr error
	if err := itemID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("item_id", err)
	}
	if err := errors.Join(caller.ActorID().Validate(), idErr, validateQuantity(quantity)); err != nil {
		return UpdateCartItemCommand{}, err
	}
	return UpdateCartItemCommand{
		actor:    caller,
		itemID:   itemID,
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateCartItemCommandIsNotConstructed if validation fails.
func (c UpdateCartItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCartItemCommandIsNotConstructed)
}

// Actor returns the caller the command is authorized against.
func (c UpdateCartItemCommand) Actor() actor.Capabilities {
	return c.actor
}

// ItemID returns the cart line to change.
func (c UpdateCartItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Quantity returns the new quantity.
func (c UpdateCartItemCommand) Quantity() int {
	return c.quantity
}

func validateQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, math.MaxInt32)
	}
	return nil
}
