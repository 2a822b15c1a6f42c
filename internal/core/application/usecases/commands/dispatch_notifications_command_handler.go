package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/clock"
)

// DispatchFailure describes one intent the notifier refused.
type DispatchFailure struct {
	NotificationID kernel.UUID
	Recipient      kernel.UUID
	Err            error
}

// DispatchResult summarizes one dispatch run.
type DispatchResult struct {
	Dispatched int
	Failed     []DispatchFailure
}

// DispatchNotificationsCommandHandler delivers outbox intents. A failing
// notifier only records an attempt on the intent; it never fails the batch.
type DispatchNotificationsCommandHandler struct {
	uowFactory OutboxUoWFactory
	notifier   ports.Notifier
	clock      clock.Clock
}

// NewDispatchNotificationsCommandHandler creates a handler sending through notifier.
func NewDispatchNotificationsCommandHandler(
	uowFactory OutboxUoWFactory,
	notifier ports.Notifier,
	clk clock.Clock,
) DispatchNotificationsCommandHandler {
	return DispatchNotificationsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clk,
	}
}

// Handle claims one batch and sends every intent in it.
// The returned error is reserved for storage failures.
func (h DispatchNotificationsCommandHandler) Handle(
	ctx context.Context,
	cmd DispatchNotificationsCommand,
) (DispatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return DispatchResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DispatchResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	intents, err := outbox.ClaimBatch(ctx, cmd.BatchSize())
	if err != nil {
		return DispatchResult{}, err
	}

	var result DispatchResult
	for _, intent := range intents {
		if notifyErr := h.notifier.Notify(ctx, intent); notifyErr != nil {
			result.Failed = append(result.Failed, DispatchFailure{
				NotificationID: intent.ID,
				Recipient:      intent.Recipient,
				Err:            notifyErr,
			})
			if err = outbox.MarkFailed(ctx, intent.ID, notifyErr.Error(), cmd.MaxAttempts(), h.clock.Now()); err != nil {
				return DispatchResult{}, err
			}
			continue
		}
		if err = outbox.MarkDispatched(ctx, intent.ID, h.clock.Now()); err != nil {
			return DispatchResult{}, err
		}
		result.Dispatched++
	}

	if err = uow.Commit(ctx); err != nil {
		return DispatchResult{}, err
	}
	return result, nil
}
