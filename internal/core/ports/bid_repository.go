package ports

import (
	"context"

	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/kernel"
)

// BidRepository defines the persistence contract for driver bids.
// At most one bid per (order, driver) pair is stored.
type BidRepository interface {
	// Add persists a new bid.
	// Fails on the (order, driver) unique key when the driver already bid.
	Add(ctx context.Context, b *bid.Bid) error

	// Update persists a status change of an existing bid.
	// Used after expiry, acceptance and decline.
	Update(ctx context.Context, b *bid.Bid) error

	// ListByOrder returns every bid of the order, oldest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*bid.Bid, error)

	// FindByOrderAndDriver returns errs.ErrObjectNotFound when the driver never bid on the order.
	FindByOrderAndDriver(ctx context.Context, orderID, driverID kernel.UUID) (*bid.Bid, error)
}
