package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrIssueDeliveryCodeCommandIsNotConstructed = errors.New(
	"IssueDeliveryCodeCommand must be created via NewIssueDeliveryCodeCommand constructor",
)

// IssueDeliveryCodeCommand issues or rotates the one-time dropoff code.
type IssueDeliveryCodeCommand struct {
	actor   actor.Capabilities
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewIssueDeliveryCodeCommand creates a new issue command.
// Returns a ValueIsRequiredError when orderID is empty.
func NewIssueDeliveryCodeCommand(caller actor.Capabilities, orderID kernel.UUID) (IssueDeliveryCodeCommand, error) {
	var idErr error
	if err := orderID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("order_id", err)
	}
	if err := errors.Join(caller.ActorID().Validate(), idErr); err != nil {
		return IssueDeliveryCodeCommand{}, err
	}
	return IssueDeliveryCodeCommand{
		actor:   caller,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrIssueDeliveryCodeCommandIsNotConstructed if validation fails.
func (c IssueDeliveryCodeCommand) Validate() error {
	return c.guard.Validate(ErrIssueDeliveryCodeCommandIsNotConstructed)
}

// Actor returns the caller the command is authorized against.
func (c IssueDeliveryCodeCommand) Actor() actor.Capabilities {
	return c.actor
}

// OrderID returns the order the code is issued for.
func (c IssueDeliveryCodeCommand) OrderID() kernel.UUID {
	return c.orderID
}
