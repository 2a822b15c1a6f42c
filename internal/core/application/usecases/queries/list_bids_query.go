package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrListBidsQueryIsNotConstructed = errors.New(
	"ListBidsQuery must be created via NewListBidsQuery constructor",
)

// ListBidsQuery lists the bids placed on the caller's order.
type ListBidsQuery struct {
	actor   actor.Capabilities
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewListBidsQuery creates a new bid listing query.
func NewListBidsQuery(caller actor.Capabilities, orderID kernel.UUID) (ListBidsQuery, error) {
	var idErr error
	if err := orderID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("order_id", err)
	}
	if err := errors.Join(caller.ActorID().Validate(), idErr); err != nil {
		return ListBidsQuery{}, err
	}
	return ListBidsQuery{
		actor:   caller,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrListBidsQueryIsNotConstructed if validation fails.
func (q ListBidsQuery) Validate() error {
	return q.guard.Validate(ErrListBidsQueryIsNotConstructed)
}

// Actor returns the caller the query is authorized against.
func (q ListBidsQuery) Actor() actor.Capabilities {
	return q.actor
}

// OrderID returns the order whose bids are listed.
func (q ListBidsQuery) OrderID() kernel.UUID {
	return q.orderID
}
