package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/verification"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrVerifyDeliveryCommandIsNotConstructed = errors.New(
	"VerifyDeliveryCommand must be created via NewVerifyDeliveryCommand constructor",
)

// VerifyDeliveryCommand is the driver's proof of handoff: the customer's code
// plus the driver's position at the door.
type VerifyDeliveryCommand struct {
	actor        actor.Capabilities
	assignmentID kernel.UUID
	code         string
	location     kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewVerifyDeliveryCommand creates a new verification command.
//
// Parameters:
//   - caller: the assigned driver
//   - assignmentID: the assignment being completed
//   - code: the six-digit code read from the customer
//   - location: the driver's position at handoff
//
// Returns:
//   - VerifyDeliveryCommand: validated command
//   - error: the joined validation errors of every argument
func NewVerifyDeliveryCommand(
	caller actor.Capabilities,
	assignmentID kernel.UUID,
	code string,
	location kernel.GeoPoint,
) (VerifyDeliveryCommand, error) {
	var idErr error
	if err := assignmentID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("assignment_id", err)
	}
	if err := errors.Join(
		caller.ActorID().Validate(),
		idErr,
		verification.ValidateCode(code),
		location.Validate(),
	); err != nil {
		return VerifyDeliveryCommand{}, err
	}
	return VerifyDeliveryCommand{
		actor:        caller,
		assignmentID: assignmentID,
		code:         code,
		location:     location,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrVerifyDeliveryCommandIsNotConstructed if validation fails.
func (c VerifyDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrVerifyDeliveryCommandIsNotConstructed)
}

// Actor returns the caller the command is authorized against.
func (c VerifyDeliveryCommand) Actor() actor.Capabilities {
	return c.actor
}

// AssignmentID returns the assignment being completed.
func (c VerifyDeliveryCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

// Code returns the code presented by the driver.
func (c VerifyDeliveryCommand) Code() string {
	return c.code
}

// Location returns the driver's reported position.
func (c VerifyDeliveryCommand) Location() kernel.GeoPoint {
	return c.location
}
