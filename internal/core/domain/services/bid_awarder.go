package services

import (
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// Award is the outcome of a successful acceptance.
type Award struct {
	// Assignment binds the order to the winning driver.
	Assignment *assignment.Assignment
	Winner     *bid.Bid

	// Changed lists every bid whose status moved, winner included.
	Changed []*bid.Bid
}

// BidAwarder implements the acceptance rules of the bidding market.
//
// Business rules:
//   - An order with an assignment cannot be awarded again
//   - Only ready_for_delivery orders can be awarded
//   - Every bid is reconciled against the clock before the winner is checked
//   - The winner must still be pending; all other pending bids are declined
//
// The caller must hold the order row lock for the whole sequence and pass every
// bid of the order, so the decision sees a consistent snapshot.
type BidAwarder struct{}

// NewBidAwarder creates the stateless acceptance service.
func NewBidAwarder() BidAwarder {
	return BidAwarder{}
}

// Award accepts bidID on o.
//
// Parameters:
//   - o: the order, loaded under its row lock
//   - hasAssignment: whether an assignment already exists for o
//   - bidID: the bid chosen by the vendor
//   - bids: every bid of o
//   - causedBy: the actor recorded on the status event
//   - now: the decision instant used for expiry and stamps
//
// Returns:
//   - *Award: the new assignment and every bid whose status moved
//   - errs.ObjectNotFoundError if bidID is not one of bids
//   - order.ErrAlreadyAssigned, order.ErrNotReadyForDelivery or bid.ErrBidNotAvailable
//     when the state forbids the acceptance
func (BidAwarder) Award(
	o *order.Order,
	hasAssignment bool,
	bidID kernel.UUID,
	bids []*bid.Bid,
	causedBy kernel.UUID,
	now time.Time,
) (*Award, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	var winner *bid.Bid
	for _, b := range bids {
		if b.ID().IsEqual(bidID) && b.OrderID().IsEqual(o.ID()) {
			winner = b
			break
		}
	}
	if winner == nil {
		return nil, errs.NewObjectNotFoundError("bid", bidID)
	}

	if hasAssignment {
		return nil, order.ErrAlreadyAssigned
	}
	if !o.IsOpenForBids() {
		return nil, order.ErrNotReadyForDelivery
	}

	award := &Award{Winner: winner}
	for _, b := range bids {
		if b.Reconcile(now) {
			award.Changed = append(award.Changed, b)
		}
	}

	if err := winner.Accept(now); err != nil {
		return nil, err
	}
	award.Changed = appendOnce(award.Changed, winner)

	for _, b := range bids {
		if b != winner && b.Decline() {
			award.Changed = appendOnce(award.Changed, b)
		}
	}

	if err := o.AssignDriver(causedBy, now); err != nil {
		return nil, err
	}

	a, err := assignment.New(kernel.NewUUID(), o.ID(), winner.DriverID(), now)
	if err != nil {
		return nil, fmt.Errorf("create assignment: %w", err)
	}
	award.Assignment = a
	return award, nil
}

func appendOnce(list []*bid.Bid, b *bid.Bid) []*bid.Bid {
	for _, existing := range list {
		if existing == b {
			return list
		}
	}
	return append(list, b)
}
