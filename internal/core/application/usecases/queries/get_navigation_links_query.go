package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetNavigationLinksQueryIsNotConstructed = errors.New(
	"GetNavigationLinksQuery must be created via NewGetNavigationLinksQuery constructor",
)

// GetNavigationLinksQuery gives the assigned driver directions to the vendor and to the customer.
type GetNavigationLinksQuery struct {
	actor        actor.Capabilities
	assignmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetNavigationLinksQuery creates a new navigation query.
// Returns a ValueIsRequiredError when assignmentID is empty.
func NewGetNavigationLinksQuery(caller actor.Capabilities, assignmentID kernel.UUID) (GetNavigationLinksQuery, error) {
	var idErr error
	if err := assignmentID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("assignment_id", err)
	}
	if err := errors.Join(caller.ActorID().Validate(), idErr); err != nil {
		return GetNavigationLinksQuery{}, err
	}
	return GetNavigationLinksQuery{
		actor:        caller,
		assignmentID: assignmentID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetNavigationLinksQueryIsNotConstructed if validation fails.
func (q GetNavigationLinksQuery) Validate() error {
	return q.guard.Validate(ErrGetNavigationLinksQueryIsNotConstructed)
}

// Actor returns the caller the query is authorized against.
func (q GetNavigationLinksQuery) Actor() actor.Capabilities {
	return q.actor
}

// AssignmentID returns the assignment to route.
func (q GetNavigationLinksQuery) AssignmentID() kernel.UUID {
	return q.assignmentID
}

// NavigationLinks holds nil links for endpoints without coordinates.
type NavigationLinks struct {
	PickupURL  *string
	DropoffURL *string
}
