package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetTrackingQueryIsNotConstructed = errors.New(
	"GetTrackingQuery must be created via NewGetTrackingQuery constructor",
)

// GetTrackingQuery is the customer's live view of a delivery.
type GetTrackingQuery struct {
	actor        actor.Capabilities
	assignmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTrackingQuery creates a new tracking query.
// Returns a ValueIsRequiredError when assignmentID is empty.
func NewGetTrackingQuery(caller actor.Capabilities, assignmentID kernel.UUID) (GetTrackingQuery, error) {
	var idErr error
	if err := assignmentID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("assignment_id", err)
	}
	if err := errors.Join(caller.ActorID().Validate(), idErr); err != nil {
		return GetTrackingQuery{}, err
	}
	return GetTrackingQuery{
		actor:        caller,
		assignmentID: assignmentID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetTrackingQueryIsNotConstructed if validation fails.
func (q GetTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingQueryIsNotConstructed)
}

// Actor returns the caller the query is authorized against.
func (q GetTrackingQuery) Actor() actor.Capabilities {
	return q.actor
}

// AssignmentID returns the tracked assignment.
func (q GetTrackingQuery) AssignmentID() kernel.UUID {
	return q.assignmentID
}

// Tracking is the order status with the driver's recent trail, newest first.
// LatestPoint and ETAMinutes are nil until the driver reports a position.
type Tracking struct {
	AssignmentID kernel.UUID
	OrderID      kernel.UUID
	Status       order.Status
	LatestPoint  *assignment.TrackingPoint
	Trail        []assignment.TrackingPoint
	ETAMinutes   *int
}
