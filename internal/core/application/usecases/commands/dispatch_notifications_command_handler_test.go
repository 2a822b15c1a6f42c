package commands_test

import (
	"errors"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDispatchNotificationsCommandHandler_Handle(t *testing.T) {
	t.Run("should mark delivered intents and record failures", func(t *testing.T) {
		ctx := t.Context()
		ok := notification.OrderReady(kernel.NewUUID(), kernel.NewUUID(), now)
		broken := notification.BidAccepted(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), now)

		cmd, err := commands.NewDispatchNotificationsCommand(10, 3)
		require.NoError(t, err)

		uow, r := newUoW()
		notifier := new(MockNotifier)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			r.outbox.On("ClaimBatch", ctx, 10).Return([]notification.Intent{ok, broken}, nil).Once(),
			notifier.On("Notify", ctx, ok).Return(nil).Once(),
			r.outbox.On("MarkDispatched", ctx, ok.ID, now).Return(nil).Once(),
			notifier.On("Notify", ctx, broken).Return(errors.New("broker unavailable")).Once(),
			r.outbox.On("MarkFailed", ctx, broken.ID, "broker unavailable", 3, now).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockFactory[commands.OutboxUoW])
		factory.On("Create").Return(uow).Once()

		result, err := commands.NewDispatchNotificationsCommandHandler(factory, notifier, testClock()).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Dispatched)
		require.Len(t, result.Failed, 1)
		assert.True(t, result.Failed[0].NotificationID.IsEqual(broken.ID))
		assert.EqualError(t, result.Failed[0].Err, "broker unavailable")
		r.assertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("should commit an empty batch", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewDispatchNotificationsCommand(5, 1)
		require.NoError(t, err)

		uow, r := newUoW()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		r.outbox.On("ClaimBatch", ctx, 5).Return([]notification.Intent{}, nil).Once()
		factory := new(MockFactory[commands.OutboxUoW])
		factory.On("Create").Return(uow).Once()
		notifier := new(MockNotifier)

		result, err := commands.NewDispatchNotificationsCommandHandler(factory, notifier, testClock()).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Zero(t, result.Dispatched)
		assert.Empty(t, result.Failed)
		notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})
}

func TestNewDispatchNotificationsCommand_Validation(t *testing.T) {
	_, err := commands.NewDispatchNotificationsCommand(0, 0)

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	fields := errs.FieldErrors(err)
	assert.Contains(t, fields, "batch_size")
	assert.Contains(t, fields, "max_attempts")
}
