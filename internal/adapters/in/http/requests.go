package http

import (
	"errors"

	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const defaultQuantity = 1

// AddCartItemRequest is the body of POST /cart/items. Quantity defaults to one.
type AddCartItemRequest struct {
	ProductID *kernel.UUID `json:"product_id"`
	Quantity  *int         `json:"quantity"`
}

func (r AddCartItemRequest) productID() (kernel.UUID, error) {
	if r.ProductID == nil {
		return kernel.UUID{}, errs.NewValueIsRequiredError("product_id")
	}
	return *r.ProductID, nil
}

func (r AddCartItemRequest) quantity() int {
	if r.Quantity == nil {
		return defaultQuantity
	}
	return *r.Quantity
}

// UpdateCartItemRequest is the body of PATCH /cart/items/{itemId}.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity"`
}

func (r UpdateCartItemRequest) quantity() (int, error) {
	if r.Quantity == nil {
		return 0, errs.NewValueIsRequiredError("quantity")
	}
	return *r.Quantity, nil
}

// SetFulfillmentRequest is the body of PUT /cart/fulfillment.
type SetFulfillmentRequest struct {
	FulfillmentType string       `json:"fulfillment_type"`
	AddressID       *kernel.UUID `json:"address_id"`
}

// CheckoutRequest is the body of POST /checkout.
type CheckoutRequest struct {
	PaymentMethod *string `json:"payment_method"`
}

// method returns nil when the field is omitted, leaving the default to the command.
func (r CheckoutRequest) method() *payment.Method {
	if r.PaymentMethod == nil {
		return nil
	}
	m := payment.Method(*r.PaymentMethod)
	return &m
}

// SubmitBidRequest is the body of POST /orders/{id}/bids.
type SubmitBidRequest struct {
	Amount           *decimal.Decimal `json:"amount"`
	ETAMinutes       *int             `json:"eta_minutes"`
	ExpiresInMinutes *int             `json:"expires_in_minutes"`
}

func (r SubmitBidRequest) offer() (bid.Offer, error) {
	if r.Amount == nil {
		return bid.Offer{}, errs.NewValueIsRequiredError("amount")
	}
	return bid.Offer{
		Amount:     *r.Amount,
		ETAMinutes: r.ETAMinutes,
		TTLMinutes: r.ExpiresInMinutes,
	}, nil
}

// LocationRequest carries a driver position. Both coordinates are required.
type LocationRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

func (r LocationRequest) point() (kernel.GeoPoint, error) {
	var latErr, lngErr error
	if r.Lat == nil {
		latErr = errs.NewValueIsRequiredError("lat")
	}
	if r.Lng == nil {
		lngErr = errs.NewValueIsRequiredError("lng")
	}
	if err := errors.Join(latErr, lngErr); err != nil {
		return kernel.GeoPoint{}, err
	}
	return kernel.NewGeoPoint(*r.Lat, *r.Lng)
}

// VerifyDeliveryRequest is the body of POST /assignments/{id}/verify.
type VerifyDeliveryRequest struct {
	Code string `json:"code"`
	LocationRequest
}
