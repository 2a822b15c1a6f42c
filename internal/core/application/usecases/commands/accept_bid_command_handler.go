package commands

import (
	"context"

	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/clock"
)

// AcceptBidCommandHandler awards an order to one driver's bid.
// Declined bids and the customer are notified through the outbox.
type AcceptBidCommandHandler struct {
	uowFactory BiddingUoWFactory
	awarder    services.BidAwarder
	clock      clock.Clock
}

// NewAcceptBidCommandHandler creates a handler bound to the bidding unit of work.
func NewAcceptBidCommandHandler(
	uowFactory BiddingUoWFactory,
	awarder services.BidAwarder,
	clk clock.Clock,
) AcceptBidCommandHandler {
	return AcceptBidCommandHandler{
		uowFactory: uowFactory,
		awarder:    awarder,
		clock:      clk,
	}
}

// Handle is the critical section of the bidding market. The order row lock is
// taken first and held until commit, so concurrent accepts on one order run one
// after another and every loser observes the winner's assignment.
func (h AcceptBidCommandHandler) Handle(ctx context.Context, cmd AcceptBidCommand) (*assignment.Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	bidRepo := uow.BidRepository()
	assignmentRepo := uow.AssignmentRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = cmd.Actor().CanActAsCustomerOf(o.CustomerID()); err != nil {
		return nil, err
	}

	hasAssignment, err := assignmentRepo.ExistsForOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}
	bids, err := bidRepo.ListByOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	award, err := h.awarder.Award(o, hasAssignment, cmd.BidID(), bids, cmd.Actor().ActorID(), now)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = assignmentRepo.Add(ctx, award.Assignment); err != nil {
		return nil, err
	}
	for _, b := range award.Changed {
		if err = bidRepo.Update(ctx, b); err != nil {
			return nil, err
		}
	}

	intent := notification.BidAccepted(award.Winner.DriverID(), o.ID(), award.Winner.ID(), now)
	if err = uow.OutboxRepository().Enqueue(ctx, intent); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return award.Assignment, nil
}
