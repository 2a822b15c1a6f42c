package queries

import (
	"context"

	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/pkg/clock"
)

// ListBidsQueryHandler lists bids for vendors.
type ListBidsQueryHandler struct {
	uowFactory BidsUoWFactory
	clock      clock.Clock
}

func NewListBidsQueryHandler(uowFactory BidsUoWFactory, clk clock.Clock) ListBidsQueryHandler {
	return ListBidsQueryHandler{uowFactory: uowFactory, clock: clk}
}

// Handle returns the order's bids, oldest first. Pending bids past their
// expiry are stored as expired before they are returned. The order row is
// locked for the sweep so it cannot interleave with an accept.
func (h ListBidsQueryHandler) Handle(ctx context.Context, query ListBidsQuery) ([]*bid.Bid, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}
	if err = query.Actor().CanActAsCustomerOf(o.CustomerID()); err != nil {
		return nil, err
	}

	bidRepo := uow.BidRepository()
	bids, err := bidRepo.ListByOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	for _, b := range bids {
		if !b.Reconcile(now) {
			continue
		}
		if err = bidRepo.Update(ctx, b); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return bids, nil
}
