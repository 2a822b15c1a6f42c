package commands

import (
	"context"
	"errors"
	"math"

	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/clock"
	"marketplace/internal/pkg/errs"
)

// ErrOrderNotAvailableForBidding covers both a non-ready and an assigned order.
var ErrOrderNotAvailableForBidding = errs.NewStateConflictError("order", "order not available for bidding")

// SubmitBidCommandHandler records driver offers.
type SubmitBidCommandHandler struct {
	uowFactory BiddingUoWFactory
	clock      clock.Clock
}

// NewSubmitBidCommandHandler creates a handler that stamps bids with clk.
func NewSubmitBidCommandHandler(uowFactory BiddingUoWFactory, clk clock.Clock) SubmitBidCommandHandler {
	return SubmitBidCommandHandler{uowFactory: uowFactory, clock: clk}
}

// Handle records the caller's bid. A driver holds a single bid row per order:
// an expired or declined one is reopened with the new terms, a live one is
// rejected with bid.ErrAlreadyBid.
func (h SubmitBidCommandHandler) Handle(ctx context.Context, cmd SubmitBidCommand) (*bid.Bid, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := cmd.Actor().CanBid(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if !o.IsOpenForBids() {
		return nil, ErrOrderNotAvailableForBidding
	}
	assigned, err := uow.AssignmentRepository().ExistsForOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}
	if assigned {
		return nil, ErrOrderNotAvailableForBidding
	}

	offer := cmd.Offer()
	if offer.DistanceKm, err = deliveryDistance(ctx, uow.CatalogRepository(), o); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	bidRepo := uow.BidRepository()
	driverID := cmd.Actor().ActorID()

	b, err := bidRepo.FindByOrderAndDriver(ctx, o.ID(), driverID)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		if b, err = bid.New(kernel.NewUUID(), o.ID(), driverID, offer, now); err != nil {
			return nil, err
		}
		if err = bidRepo.Add(ctx, b); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err = b.Reopen(offer, now); err != nil {
			return nil, err
		}
		if err = bidRepo.Update(ctx, b); err != nil {
			return nil, err
		}
	}

	intent := notification.BidSubmitted(o.CustomerID(), o.ID(), b.ID(), b.Amount(), now)
	if err = uow.OutboxRepository().Enqueue(ctx, intent); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

// deliveryDistance returns the vendor to dropoff distance rounded to 0.01 km,
// or nil when either end has no coordinates.
func deliveryDistance(ctx context.Context, catalogRepo ports.CatalogRepository, o *order.Order) (*float64, error) {
	if o.AddressID() == nil {
		return nil, nil
	}
	vendor, err := catalogRepo.GetVendor(ctx, o.VendorID())
	if err != nil {
		return nil, err
	}
	address, err := catalogRepo.GetAddress(ctx, *o.AddressID())
	if err != nil {
		return nil, err
	}
	if vendor.Location == nil || address.Location == nil {
		return nil, nil
	}
	km := math.Round(vendor.Location.DistanceKm(*address.Location)*100) / 100
	return &km, nil
}
