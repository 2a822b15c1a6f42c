package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrMarkPickedUpCommandIsNotConstructed = errors.New(
	"MarkPickedUpCommand must be created via NewMarkPickedUpCommand constructor",
)

// MarkPickedUpCommand records that the assigned driver collected the order.
type MarkPickedUpCommand struct {
	actor        actor.Capabilities
	assignmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkPickedUpCommand creates a new pickup command.
// Returns a ValueIsRequiredError when assignmentID is empty.
func NewMarkPickedUpCommand(caller actor.Capabilities, assignmentID kernel.UUID) (MarkPickedUpCommand, error) {
	var idErr error
	if err := assignmentID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("assignment_id", err)
	}
	if err := errors.Join(caller.ActorID().Validate(), idErr); err != nil {
		return MarkPickedUpCommand{}, err
	}
	return MarkPickedUpCommand{
		actor:        caller,
		assignmentID: assignmentID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrMarkPickedUpCommandIsNotConstructed if validation fails.
func (c MarkPickedUpCommand) Validate() error {
	return c.guard.Validate(ErrMarkPickedUpCommandIsNotConstructed)
}

// Actor returns the caller the command is authorized against.
func (c MarkPickedUpCommand) Actor() actor.Capabilities {
	return c.actor
}

// AssignmentID returns the assignment the driver works on.
func (c MarkPickedUpCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}
