package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"marketplace/internal/adapters/out/kafka"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNotificationProducer_Notify(t *testing.T) {
	at := time.Date(2025, 12, 18, 12, 0, 0, 0, time.UTC)
	customerID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	intent := notification.OrderReady(customerID, orderID, at)

	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var msg kafka.NotificationMessage
		if err := json.Unmarshal(val, &msg); err != nil {
			return err
		}
		if msg.Recipient != customerID.String() {
			return errors.New("unexpected recipient " + msg.Recipient)
		}
		if msg.Data["order_id"] != orderID.String() {
			return errors.New("order_id missing from data")
		}
		return nil
	})

	notifier := kafka.NewNotificationProducer(producer, "notifications", discardLogger())
	require.NoError(t, notifier.Notify(context.Background(), intent))
	require.NoError(t, notifier.Close())
}

func TestNotificationProducer_PayloadShape(t *testing.T) {
	at := time.Date(2025, 12, 18, 12, 0, 0, 0, time.UTC)
	intent := notification.BidAccepted(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), at)

	var captured kafka.NotificationMessage
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		return json.Unmarshal(val, &captured)
	})

	notifier := kafka.NewNotificationProducer(producer, "notifications", discardLogger())
	require.NoError(t, notifier.Notify(context.Background(), intent))
	require.NoError(t, notifier.Close())

	assert.Equal(t, intent.ID.String(), captured.ID)
	assert.Equal(t, "Bid accepted", captured.Title)
	assert.Equal(t, intent.Body, captured.Body)
	assert.Equal(t, "2025-12-18T12:00:00Z", captured.CreatedAt)
	assert.Contains(t, captured.Data, "bid_id")
}

func TestNotificationProducer_SendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	notifier := kafka.NewNotificationProducer(producer, "notifications", discardLogger())
	err := notifier.Notify(context.Background(), notification.OrderReady(kernel.NewUUID(), kernel.NewUUID(), time.Now()))

	require.Error(t, err)
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, notifier.Close())
}
