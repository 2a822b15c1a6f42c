package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCheckBidEligibilityQueryIsNotConstructed = errors.New(
	"CheckBidEligibilityQuery must be created via NewCheckBidEligibilityQuery constructor",
)

// Reasons reported for an ineligible driver.
const (
	ReasonNotADriver      = "Not a driver"
	ReasonOrderNotReady   = "Order not ready"
	ReasonAlreadyAssigned = "Already assigned"
	ReasonAlreadyBid      = "Already bid"
)

// CheckBidEligibilityQuery asks whether the calling driver may bid on an order.
type CheckBidEligibilityQuery struct {
	actor   actor.Capabilities
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCheckBidEligibilityQuery creates a new eligibility query.
// Returns a ValueIsRequiredError when orderID is empty.
func NewCheckBidEligibilityQuery(caller actor.Capabilities, orderID kernel.UUID) (CheckBidEligibilityQuery, error) {
	var idErr error
	if err := orderID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("order_id", err)
	}
	if err := errors.Join(caller.ActorID().Validate(), idErr); err != nil {
		return CheckBidEligibilityQuery{}, err
	}
	return CheckBidEligibilityQuery{
		actor:   caller,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrCheckBidEligibilityQueryIsNotConstructed if validation fails.
func (q CheckBidEligibilityQuery) Validate() error {
	return q.guard.Validate(ErrCheckBidEligibilityQueryIsNotConstructed)
}

// Actor returns the caller the query is authorized against.
func (q CheckBidEligibilityQuery) Actor() actor.Capabilities {
	return q.actor
}

// OrderID returns the order being checked.
func (q CheckBidEligibilityQuery) OrderID() kernel.UUID {
	return q.orderID
}

// BidEligibility is the answer of the check. Reason is empty when Eligible.
type BidEligibility struct {
	Eligible bool
	Reason   string
}

func eligible() BidEligibility {
	return BidEligibility{Eligible: true}
}

func ineligible(reason string) BidEligibility {
	return BidEligibility{Reason: reason}
}
