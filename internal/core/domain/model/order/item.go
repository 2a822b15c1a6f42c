package order

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// DefaultItemName is used when the product snapshot carries no name.
const DefaultItemName = "Item"

// Item is a frozen copy of one cart line taken at checkout.
//
// Name, UnitPrice and DeliveryFee never follow later catalog changes.
// ProductID is nil once the product is gone.
type Item struct {
	ID          kernel.UUID
	ProductID   *kernel.UUID
	Name        string
	Quantity    int
	UnitPrice   decimal.Decimal
	DeliveryFee decimal.Decimal
}

// StatusEvent is one entry of the append-only status audit trail.
//
// CausedBy is the actor who triggered the change; Note carries free text such as
// "placed" or how a delivery was confirmed.
type StatusEvent struct {
	Status   Status
	CausedBy *kernel.UUID
	Note     string
	At       time.Time
}
