package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
)

// OutboxRepository is the durable queue of notification intents.
type OutboxRepository interface {
	// Enqueue stores intents in the caller's transaction.
	// They become visible to dispatchers only after commit.
	Enqueue(ctx context.Context, intents ...notification.Intent) error

	// ClaimBatch locks up to limit undelivered intents, skipping rows locked by
	// other dispatchers, oldest first.
	ClaimBatch(ctx context.Context, limit int) ([]notification.Intent, error)

	// MarkDispatched records a successful delivery of the intent.
	// A dispatched intent is never claimed again.
	MarkDispatched(ctx context.Context, id kernel.UUID, at time.Time) error

	// MarkFailed records an attempt. After maxAttempts the intent is given up.
	MarkFailed(ctx context.Context, id kernel.UUID, cause string, maxAttempts int, at time.Time) error
}

// Notifier delivers one intent to the notification transport.
type Notifier interface {
	Notify(ctx context.Context, intent notification.Intent) error
}
