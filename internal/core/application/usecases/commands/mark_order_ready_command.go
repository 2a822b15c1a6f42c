package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrMarkOrderReadyCommandIsNotConstructed = errors.New(
	"MarkOrderReadyCommand must be created via NewMarkOrderReadyCommand constructor",
)

// MarkOrderReadyCommand opens the order for driver bids.
type MarkOrderReadyCommand struct {
	actor   actor.Capabilities
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkOrderReadyCommand creates a new ready command.
func NewMarkOrderReadyCommand(caller actor.Capabilities, orderID kernel.UUID) (MarkOrderReadyCommand, error) {
	var idErr error
	if err := orderID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("order_id", err)
	}
	if err := errors.Join(caller.ActorID().Validate(), idErr); err != nil {
		return MarkOrderReadyCommand{}, err
	}
	return MarkOrderReadyCommand{
		actor:   caller,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrMarkOrderReadyCommandIsNotConstructed if validation fails.
func (c MarkOrderReadyCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderReadyCommandIsNotConstructed)
}

// Actor returns the caller the command is authorized against.
func (c MarkOrderReadyCommand) Actor() actor.Capabilities {
	return c.actor
}

// OrderID returns the order to open for bids.
func (c MarkOrderReadyCommand) OrderID() kernel.UUID {
	return c.orderID
}
