package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRecordLocationCommandIsNotConstructed = errors.New(
	"RecordLocationCommand must be created via NewRecordLocationCommand constructor",
)

// RecordLocationCommand appends one point to an assignment's trail.
type RecordLocationCommand struct {
	actor        actor.Capabilities
	assignmentID kernel.UUID
	location     kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewRecordLocationCommand creates a new tracking command.
// The location must lie within valid latitude and longitude bounds.
func NewRecordLocationCommand(
	caller actor.Capabilities,
	assignmentID kernel.UUID,
	location kernel.GeoPoint,
) (RecordLocationCommand, error) {
	var idErr error
	if err := assignmentID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("assignment_id", err)
	}
	if err := errors.Join(caller.ActorID().Validate(), idErr, location.Validate()); err != nil {
		return RecordLocationCommand{}, err
	}
	return RecordLocationCommand{
		actor:        caller,
		assignmentID: assignmentID,
		location:     location,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRecordLocationCommandIsNotConstructed if validation fails.
func (c RecordLocationCommand) Validate() error {
	return c.guard.Validate(ErrRecordLocationCommandIsNotConstructed)
}

// Actor returns the caller the command is authorized against.
func (c RecordLocationCommand) Actor() actor.Capabilities {
	return c.actor
}

// AssignmentID returns the tracked assignment.
func (c RecordLocationCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

// Location returns the reported position.
func (c RecordLocationCommand) Location() kernel.GeoPoint {
	return c.location
}
