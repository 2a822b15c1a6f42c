package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRemoveCartItemCommandIsNotConstructed = errors.New(
	"RemoveCartItemCommand must be created via NewRemoveCartItemCommand constructor",
)

// RemoveCartItemCommand deletes one line from the caller's cart.
type RemoveCartItemCommand struct {
	actor  actor.Capabilities
	itemID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveCartItemCommand creates a new remove-item command.
func NewRemoveCartItemCommand(caller actor.Capabilities, itemID kernel.UUID) (RemoveCartItemCommand, error) {
	var idErr error
	if err := itemID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("item_id", err)
	}
	if err := errors.Join(caller.ActorID().Validate(), idErr); err != nil {
		return RemoveCartItemCommand{}, err
	}
	return RemoveCartItemCommand{
		actor:  caller,
		itemID: itemID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRemoveCartItemCommandIsNotConstructed if validation fails.
func (c RemoveCartItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCartItemCommandIsNotConstructed)
}

// Actor returns the caller the command is authorized against.
func (c RemoveCartItemCommand) Actor() actor.Capabilities {
	return c.actor
}

// ItemID returns the cart line to remove.
func (c RemoveCartItemCommand) ItemID() kernel.UUID {
	return c.itemID
}
