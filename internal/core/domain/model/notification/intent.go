// Package notification describes messages to order participants. Intents are
// written to the outbox inside the transaction that caused them and delivered
// later by the dispatcher; a failed delivery never undoes the transaction.
package notification

import (
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Intent is one message to one recipient.
// The JSON form is the payload published to the notifications topic.
type Intent struct {
	ID        kernel.UUID       `json:"id"`
	Recipient kernel.UUID       `json:"recipient"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data"`
	CreatedAt time.Time         `json:"created_at"`
}

func newIntent(recipient kernel.UUID, title, body string, data map[string]string, at time.Time) Intent {
	return Intent{
		ID:        kernel.NewUUID(),
		Recipient: recipient,
		Title:     title,
		Body:      body,
		Data:      data,
		CreatedAt: at,
	}
}

// BidSubmitted tells the customer that a driver offered amount for orderID.
func BidSubmitted(customerID, orderID, bidID kernel.UUID, amount decimal.Decimal, at time.Time) Intent {
	return newIntent(customerID,
		"New delivery bid",
		fmt.Sprintf("A driver offered to deliver your order #%s for %s", orderID, amount.StringFixed(2)),
		map[string]string{"order_id": orderID.String(), "bid_id": bidID.String()},
		at,
	)
}

// BidAccepted tells the winning driver that the customer picked their bid.
func BidAccepted(driverID, orderID, bidID kernel.UUID, at time.Time) Intent {
	return newIntent(driverID,
		"Bid accepted",
		fmt.Sprintf("Your bid for order #%s was accepted.", orderID),
		map[string]string{"order_id": orderID.String(), "bid_id": bidID.String()},
		at,
	)
}

// OrderReady tells the customer that the vendor finished preparing orderID.
func OrderReady(customerID, orderID kernel.UUID, at time.Time) Intent {
	return newIntent(customerID,
		"Order ready",
		fmt.Sprintf("Your order #%s is ready for delivery.", orderID),
		map[string]string{"order_id": orderID.String()},
		at,
	)
}

// OrderDelivered notifies the customer and, when known, the vendor owner.
//
// Manual and verified deliveries produce the same intents.
func OrderDelivered(customerID kernel.UUID, vendorOwnerID *kernel.UUID, orderID kernel.UUID, at time.Time) []Intent {
	data := map[string]string{"order_id": orderID.String()}
	intents := []Intent{newIntent(customerID,
		"Order delivered",
		fmt.Sprintf("Order #%s has been delivered.", orderID),
		data,
		at,
	)}
	if vendorOwnerID != nil {
		intents = append(intents, newIntent(*vendorOwnerID,
			"Order delivered",
			fmt.Sprintf("Order #%s for your vendor has been delivered.", orderID),
			map[string]string{"order_id": orderID.String()},
			at,
		))
	}
	return intents
}
