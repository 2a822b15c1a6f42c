package notification_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntents(t *testing.T) {
	at := time.Date(2025, 12, 18, 9, 0, 0, 0, time.UTC)
	customer := kernel.NewUUID()
	orderID := kernel.NewUUID()
	bidID := kernel.NewUUID()

	t.Run("bid submitted goes to the customer", func(t *testing.T) {
		i := notification.BidSubmitted(customer, orderID, bidID, decimal.RequireFromString("7.5"), at)

		assert.True(t, i.Recipient.IsEqual(customer))
		assert.Equal(t, "New delivery bid", i.Title)
		assert.Contains(t, i.Body, "7.50")
		assert.Equal(t, bidID.String(), i.Data["bid_id"])
		assert.Equal(t, at, i.CreatedAt)
		assert.False(t, i.ID.IsZero())
	})

	t.Run("delivered fans out to vendor owner", func(t *testing.T) {
		owner := kernel.NewUUID()

		intents := notification.OrderDelivered(customer, &owner, orderID, at)

		require.Len(t, intents, 2)
		assert.True(t, intents[0].Recipient.IsEqual(customer))
		assert.True(t, intents[1].Recipient.IsEqual(owner))
		assert.Contains(t, intents[1].Body, "for your vendor")
		assert.False(t, intents[0].ID.IsEqual(intents[1].ID))
	})

	t.Run("delivered without a known owner", func(t *testing.T) {
		assert.Len(t, notification.OrderDelivered(customer, nil, orderID, at), 1)
	})
}
