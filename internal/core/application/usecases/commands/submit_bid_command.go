package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrSubmitBidCommandIsNotConstructed = errors.New(
	"SubmitBidCommand must be created via NewSubmitBidCommand constructor",
)

// SubmitBidCommand carries a driver's offer for a ready order.
// Offer.DistanceKm is ignored; the handler derives it from the catalog.
type SubmitBidCommand struct {
	actor   actor.Capabilities
	orderID kernel.UUID
	offer   bid.Offer

	guard guard.ConstructorGuard
}

// NewSubmitBidCommand creates a new bid command.
//
// Parameters:
//   - caller: the bidding driver
//   - orderID: the ready order
//   - offer: the driver's terms; DistanceKm is cleared
//
// Returns:
//   - SubmitBidCommand: validated command
//   - error: a ValueIsRequiredError or the offer's validation errors
func NewSubmitBidCommand(caller actor.Capabilities, orderID kernel.UUID, offer bid.Offer) (SubmitBidCommand, error) {
	var idErr error
	if err := orderID.Validate(); err != nil {
		idErr = errs.NewValueIsRequiredErrorWithCause("order_id", err)
	}
	if err := errors.Join(caller.ActorID().Validate(), idErr, offer.Validate()); err != nil {
		return SubmitBidCommand{}, err
	}
	offer.DistanceKm = nil
	return SubmitBidCommand{
		actor:   caller,
		orderID: orderID,
		offer:   offer,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSubmitBidCommandIsNotConstructed if validation fails.
func (c SubmitBidCommand) Validate() error {
	return c.guard.Validate(ErrSubmitBidCommandIsNotConstructed)
}

// Actor returns the caller the command is authorized against.
func (c SubmitBidCommand) Actor() actor.Capabilities {
	return c.actor
}

// OrderID returns the order being bid on.
func (c SubmitBidCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Offer returns the driver's terms.
func (c SubmitBidCommand) Offer() bid.Offer {
	return c.offer
}
