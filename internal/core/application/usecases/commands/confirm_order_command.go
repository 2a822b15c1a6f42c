package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrConfirmOrderCommandIsNotConstructed = errors.New(
	"ConfirmOrderCommand must be created via NewConfirmOrderCommand constructor",
)

// ConfirmOrderCommand is issued by the vendor that owns the order.
type ConfirmOrderCommand struct {
	actor   actor.Capabilities
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmOrderCommand creates a new confirmation command.
// Returns a ValueIsRequiredError when orderID is empty.
func NewConfirmOrderCommand(caller actor.Capabilities, orderID kernel.UUID) (ConfirmOrderCommand, error) {
	var idErr error
	if err := orderID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("order_id", err)
	}
	if err := errors.Join(caller.ActorID().Validate(), idErr); err != nil {
		return ConfirmOrderCommand{}, err
	}
	return ConfirmOrderCommand{
		actor:   caller,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrConfirmOrderCommandIsNotConstructed if validation fails.
func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}

// Actor returns the caller the command is authorized against.
func (c ConfirmOrderCommand) Actor() actor.Capabilities {
	return c.actor
}

// OrderID returns the order to confirm.
func (c ConfirmOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
