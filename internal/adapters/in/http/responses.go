package http

import (
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/pricing"
	"marketplace/internal/core/domain/model/verification"

	"github.com/shopspring/decimal"
)

// Money is rendered as a string with two decimals.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type PricingResponse struct {
	Subtotal    string `json:"subtotal"`
	DeliveryFee string `json:"delivery_fee"`
	ServiceFee  string `json:"service_fee"`
	Tax         string `json:"tax"`
	Discount    string `json:"discount"`
	Total       string `json:"total"`
}

func toPricing(b pricing.Breakdown) PricingResponse {
	return PricingResponse{
		Subtotal:    money(b.Subtotal),
		DeliveryFee: money(b.DeliveryFee),
		ServiceFee:  money(b.ServiceFee),
		Tax:         money(b.Tax),
		Discount:    money(b.Discount),
		Total:       money(b.Total),
	}
}

type CartItemResponse struct {
	ID          kernel.UUID `json:"id"`
	ProductID   kernel.UUID `json:"product_id"`
	Name        string      `json:"name"`
	Quantity    int         `json:"quantity"`
	UnitPrice   string      `json:"unit_price"`
	DeliveryFee string      `json:"delivery_fee"`
}

// CartResponse is the cart with computed pricing.
type CartResponse struct {
	ID              kernel.UUID        `json:"id"`
	VendorID        *kernel.UUID       `json:"vendor_id"`
	FulfillmentType string             `json:"fulfillment_type"`
	AddressID       *kernel.UUID       `json:"address_id"`
	Items           []CartItemResponse `json:"items"`
	Pricing         PricingResponse    `json:"pricing"`
}

func toCart(c *cart.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(c.Items()))
	for _, it := range c.Items() {
		items = append(items, CartItemResponse{
			ID:          it.ID(),
			ProductID:   it.ProductID(),
			Name:        it.Name(),
			Quantity:    it.Quantity(),
			UnitPrice:   money(it.UnitPrice()),
			DeliveryFee: money(it.DeliveryFee()),
		})
	}
	return CartResponse{
		ID:              c.ID(),
		VendorID:        c.VendorID(),
		FulfillmentType: c.Fulfillment().String(),
		AddressID:       c.AddressID(),
		Items:           items,
		Pricing:         toPricing(c.Pricing()),
	}
}

type OrderItemResponse struct {
	ID          kernel.UUID  `json:"id"`
	ProductID   *kernel.UUID `json:"product_id"`
	Name        string       `json:"name"`
	Quantity    int          `json:"quantity"`
	UnitPrice   string       `json:"unit_price"`
	DeliveryFee string       `json:"delivery_fee"`
}

// OrderResponse is a placed order with its frozen items and totals.
type OrderResponse struct {
	ID              kernel.UUID         `json:"id"`
	CustomerID      kernel.UUID         `json:"customer_id"`
	VendorID        kernel.UUID         `json:"vendor_id"`
	AddressID       *kernel.UUID        `json:"address_id"`
	FulfillmentType string              `json:"fulfillment_type"`
	Status          string              `json:"status"`
	Items           []OrderItemResponse `json:"items"`
	Pricing         PricingResponse     `json:"pricing"`
	PlacedAt        time.Time           `json:"placed_at"`
	LockedAt        *time.Time          `json:"locked_at"`
}

func toOrder(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Name:        it.Name,
			Quantity:    it.Quantity,
			UnitPrice:   money(it.UnitPrice),
			DeliveryFee: money(it.DeliveryFee),
		})
	}
	return OrderResponse{
		ID:              o.ID(),
		CustomerID:      o.CustomerID(),
		VendorID:        o.VendorID(),
		AddressID:       o.AddressID(),
		FulfillmentType: o.Fulfillment().String(),
		Status:          o.Status().String(),
		Items:           items,
		Pricing:         toPricing(o.Totals()),
		PlacedAt:        o.PlacedAt(),
		LockedAt:        o.LockedAt(),
	}
}

// BidResponse is one bid as seen by the vendor.
type BidResponse struct {
	ID         kernel.UUID `json:"id"`
	OrderID    kernel.UUID `json:"order_id"`
	DriverID   kernel.UUID `json:"driver_id"`
	Amount     string      `json:"amount"`
	ETAMinutes *int        `json:"eta_minutes"`
	DistanceKm *float64    `json:"distance_km"`
	Status     string      `json:"status"`
	ExpiresAt  time.Time   `json:"expires_at"`
	CreatedAt  time.Time   `json:"created_at"`
}

func toBid(b *bid.Bid) BidResponse {
	return BidResponse{
		ID:         b.ID(),
		OrderID:    b.OrderID(),
		DriverID:   b.DriverID(),
		Amount:     money(b.Amount()),
		ETAMinutes: b.ETAMinutes(),
		DistanceKm: b.DistanceKm(),
		Status:     b.Status().String(),
		ExpiresAt:  b.ExpiresAt(),
		CreatedAt:  b.CreatedAt(),
	}
}

func toBids(bids []*bid.Bid) []BidResponse {
	out := make([]BidResponse, 0, len(bids))
	for _, b := range bids {
		out = append(out, toBid(b))
	}
	return out
}

type AssignmentResponse struct {
	ID          kernel.UUID `json:"id"`
	OrderID     kernel.UUID `json:"order_id"`
	DriverID    kernel.UUID `json:"driver_id"`
	AcceptedAt  time.Time   `json:"accepted_at"`
	PickedUpAt  *time.Time  `json:"picked_up_at"`
	DeliveredAt *time.Time  `json:"delivered_at"`
}

func toAssignment(a *assignment.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:          a.ID(),
		OrderID:     a.OrderID(),
		DriverID:    a.DriverID(),
		AcceptedAt:  a.AcceptedAt(),
		PickedUpAt:  a.PickedUpAt(),
		DeliveredAt: a.DeliveredAt(),
	}
}

type PointResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func toPoint(p *kernel.GeoPoint) *PointResponse {
	if p == nil {
		return nil
	}
	return &PointResponse{Lat: p.Lat(), Lng: p.Lng()}
}

type TrackingPointResponse struct {
	ID         kernel.UUID `json:"id"`
	Lat        float64     `json:"lat"`
	Lng        float64     `json:"lng"`
	CapturedAt time.Time   `json:"captured_at"`
}

func toTrackingPoint(p assignment.TrackingPoint) TrackingPointResponse {
	return TrackingPointResponse{
		ID:         p.ID,
		Lat:        p.Location.Lat(),
		Lng:        p.Location.Lng(),
		CapturedAt: p.CapturedAt,
	}
}

// TrackingResponse is the customer view of a delivery in progress.
type TrackingResponse struct {
	AssignmentID kernel.UUID             `json:"assignment_id"`
	OrderID      kernel.UUID             `json:"order_id"`
	Status       string                  `json:"status"`
	LatestPoint  *TrackingPointResponse  `json:"latest_point"`
	Trail        []TrackingPointResponse `json:"trail"`
	ETAMinutes   *int                    `json:"eta_minutes"`
}

func toTracking(t queries.Tracking) TrackingResponse {
	trail := make([]TrackingPointResponse, 0, len(t.Trail))
	for _, p := range t.Trail {
		trail = append(trail, toTrackingPoint(p))
	}
	resp := TrackingResponse{
		AssignmentID: t.AssignmentID,
		OrderID:      t.OrderID,
		Status:       t.Status.String(),
		Trail:        trail,
		ETAMinutes:   t.ETAMinutes,
	}
	if t.LatestPoint != nil {
		latest := toTrackingPoint(*t.LatestPoint)
		resp.LatestPoint = &latest
	}
	return resp
}

type VendorSummary struct {
	ID   kernel.UUID `json:"id"`
	Name string      `json:"name"`
}

// OpenOrderResponse is one entry of the driver marketplace feed.
type OpenOrderResponse struct {
	ID          kernel.UUID    `json:"id"`
	Vendor      VendorSummary  `json:"vendor"`
	Address     *string        `json:"address"`
	DistanceKm  *float64       `json:"distance_km"`
	Pickup      *PointResponse `json:"pickup"`
	Destination *PointResponse `json:"destination"`
	Total       string         `json:"total"`
}

func toOpenOrders(orders []queries.OpenOrder) []OpenOrderResponse {
	out := make([]OpenOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, OpenOrderResponse{
			ID:          o.ID,
			Vendor:      VendorSummary{ID: o.VendorID, Name: o.VendorName},
			Address:     o.Address,
			DistanceKm:  o.DistanceKm,
			Pickup:      toPoint(o.Pickup),
			Destination: toPoint(o.Destination),
			Total:       money(o.Total),
		})
	}
	return out
}

type EligibilityResponse struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}

type NavigationResponse struct {
	PickupURL  *string `json:"pickup_url"`
	DropoffURL *string `json:"dropoff_url"`
}

// VerificationResponse returns the issued code to the customer.
type VerificationResponse struct {
	OrderID kernel.UUID `json:"order_id"`
	Type    string      `json:"type"`
	Code    string      `json:"code"`
}

func toVerification(v *verification.Verification) VerificationResponse {
	return VerificationResponse{
		OrderID: v.OrderID(),
		Type:    string(v.Type()),
		Code:    v.Code(),
	}
}
