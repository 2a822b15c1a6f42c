package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// FulfillmentType decides whether a driver delivers the order or the customer collects it.
type FulfillmentType string

const (
	FulfillmentPickup   FulfillmentType = "pickup"
	FulfillmentDelivery FulfillmentType = "delivery"
)

// Validate accepts only FulfillmentPickup and FulfillmentDelivery.
//
// Returns a ValueIsInvalidError on "fulfillment_type" otherwise.
func (f FulfillmentType) Validate() error {
	switch f {
	case FulfillmentPickup, FulfillmentDelivery:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("fulfillment_type",
			fmt.Errorf("%q is not one of pickup, delivery", string(f)))
	}
}

// IsDelivery reports whether a driver carries the order to an address.
// Delivery fees and the bidding market apply only to delivery orders.
func (f FulfillmentType) IsDelivery() bool {
	return f == FulfillmentDelivery
}

func (f FulfillmentType) String() string {
	return string(f)
}
