// Package commands contains the operations that change the marketplace state.
// Every handler follows the same shape: validate the command, open a unit of
// work, take the order row lock where status is decided, mutate aggregates,
// persist them together with any notification intents, commit.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces give each handler only the repositories it needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	BidRepoFactory interface {
		BidRepository() ports.BidRepository
	}

	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	VerificationRepoFactory interface {
		VerificationRepository() ports.VerificationRepository
	}

	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	CatalogRepoFactory interface {
		CatalogRepository() ports.CatalogRepository
	}

	// CartUoW serves cart editing.
	CartUoW interface {
		TxManager
		CartRepoFactory
		CatalogRepoFactory
	}

	CartUoWFactory interface {
		Create() CartUoW
	}

	// CheckoutUoW turns a cart into an order and its payment record.
	CheckoutUoW interface {
		TxManager
		CartRepoFactory
		OrderRepoFactory
		PaymentRepoFactory
	}

	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// OrderUoW serves vendor-side lifecycle transitions.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		OutboxRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// BiddingUoW serves bid submission and acceptance.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	//   bids, err := uow.BidRepository().ListByOrder(ctx, orderID)
	//   // ... decide, then persist
	//
	//   err = uow.Commit(ctx)
	BiddingUoW interface {
		TxManager
		OrderRepoFactory
		BidRepoFactory
		AssignmentRepoFactory
		CatalogRepoFactory
		OutboxRepoFactory
	}

	BiddingUoWFactory interface {
		Create() BiddingUoW
	}

	// DeliveryUoW serves everything that happens after a driver is assigned.
	DeliveryUoW interface {
		TxManager
		OrderRepoFactory
		AssignmentRepoFactory
		VerificationRepoFactory
		PaymentRepoFactory
		CatalogRepoFactory
		OutboxRepoFactory
	}

	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// OutboxUoW serves the notification dispatcher.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)

// UnitOfWorkFactoryFunc adapts a function to any of the factory interfaces above,
// typically wrapping one full ports.UnitOfWorkFactory.
type UnitOfWorkFactoryFunc[T any] func() T

// Create calls f.
func (f UnitOfWorkFactoryFunc[T]) Create() T {
	return f()
}
