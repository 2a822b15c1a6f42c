package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAcceptBidCommandIsNotConstructed = errors.New(
	"AcceptBidCommand must be created via NewAcceptBidCommand constructor",
)

// AcceptBidCommand is the vendor's choice of a winning bid.
//
// Example:
//
//	cmd, err := NewAcceptBidCommand(caps, orderID, bidID)
//	if err != nil {
//	    return err
//	}
//	awarded, err := handler.Handle(ctx, cmd)
type AcceptBidCommand struct {
	actor   actor.Capabilities
	orderID kernel.UUID
	bidID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptBidCommand creates a new acceptance command.
//
// Parameters:
//   - caller: the vendor owner or an admin
//   - orderID: the order being awarded
//   - bidID: the winning bid
//
// Returns:
//   - AcceptBidCommand: validated command
//   - error: a ValueIsRequiredError for each missing identifier
func NewAcceptBidCommand(caller actor.Capabilities, orderID, bidID kernel.UUID) (AcceptBidCommand, error) {
	var orderErr, bidErr error
	if err := orderID.Validate(); err != nil {
		orderErr = errs.NewValueIsRequiredErrorWithCause("order_id", err)
	}
	if err := bidID.Validate(); err != nil {
		bidErr = errs.NewValueIsRequiredErrorWithCause("bid_id", err)
	}
	if err := errors.Join(caller.ActorID().Validate(), orderErr, bidErr); err != nil {
		return AcceptBidCommand{}, err
	}
	return AcceptBidCommand{
		actor:   caller,
		orderID: orderID,
		bidID:   bidID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAcceptBidCommandIsNotConstructed if validation fails.
func (c AcceptBidCommand) Validate() error {
	return c.guard.Validate(ErrAcceptBidCommandIsNotConstructed)
}

// Actor returns the caller the command is authorized against.
func (c AcceptBidCommand) Actor() actor.Capabilities {
	return c.actor
}

// OrderID returns the order being awarded.
func (c AcceptBidCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BidID returns the winning bid.
func (c AcceptBidCommand) BidID() kernel.UUID {
	return c.bidID
}
