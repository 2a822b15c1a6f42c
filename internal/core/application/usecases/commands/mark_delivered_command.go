package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrMarkDeliveredCommandIsNotConstructed = errors.New(
	"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
)

// MarkDeliveredCommand delivers the order without code verification.
type MarkDeliveredCommand struct {
	actor        actor.Capabilities
	assignmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkDeliveredCommand creates a new delivery command.
// Returns a ValueIsRequiredError when assignmentID is empty.
func NewMarkDeliveredCommand(caller actor.Capabilities, assignmentID kernel.UUID) (MarkDeliveredCommand, error) {
	var idErr error
	if err := assignmentID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("assignment_id", err)
	}
	if err := errors.Join(caller.ActorID().Validate(), idErr); err != nil {
		return MarkDeliveredCommand{}, err
	}
	return MarkDeliveredCommand{
		actor:        caller,
		assignmentID: assignmentID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrMarkDeliveredCommandIsNotConstructed if validation fails.
func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}

// Actor returns the caller the command is authorized against.
func (c MarkDeliveredCommand) Actor() actor.Capabilities {
	return c.actor
}

// AssignmentID returns the assignment the driver works on.
func (c MarkDeliveredCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}
