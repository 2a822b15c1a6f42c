// Package queries contains the read side of the marketplace.
//
// Most handlers read straight from the database with raw SQL. Bid listing and
// cart display go through a unit of work instead: listing bids persists the
// expiry sweep, and the first look at a cart creates it.
package queries

import (
	"context"

	"marketplace/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// BidsUoW serves bid listing with the read-time expiry sweep.
	BidsUoW interface {
		TxManager
		OrderRepository() ports.OrderRepository
		BidRepository() ports.BidRepository
	}

	BidsUoWFactory interface {
		Create() BidsUoW
	}

	// CartUoW serves cart reads, which create the cart on first access.
	CartUoW interface {
		TxManager
		CartRepository() ports.CartRepository
	}

	CartUoWFactory interface {
		Create() CartUoW
	}
)
