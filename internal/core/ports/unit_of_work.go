package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one business transaction. Repositories obtained after Begin run
// inside it; callers always defer Rollback, which is a no-op after Commit.
type UnitOfWork interface {
	// Begin opens the transaction.
	Begin(ctx context.Context) error

	// Commit makes every change of the transaction durable.
	Commit(ctx context.Context) error

	// Rollback discards uncommitted changes.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	CartRepository() CartRepository
	BidRepository() BidRepository
	AssignmentRepository() AssignmentRepository
	VerificationRepository() VerificationRepository
	PaymentRepository() PaymentRepository
	OutboxRepository() OutboxRepository
	CatalogRepository() CatalogRepository
}
