package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListOpenOrdersQueryIsNotConstructed = errors.New(
	"ListOpenOrdersQuery must be created via NewListOpenOrdersQuery constructor",
)

// ListOpenOrdersQuery lists the orders drivers can bid on: ready for delivery
// and not yet assigned.
//
// Example:
//
//	query, err := NewListOpenOrdersQuery(caller)
//	handler := NewListOpenOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	for _, o := range orders {
//	    fmt.Printf("order %s from %s, %v km\n", o.ID, o.VendorName, o.DistanceKm)
//	}
type ListOpenOrdersQuery struct {
	actor actor.Capabilities

	guard guard.ConstructorGuard
}

// NewListOpenOrdersQuery creates a new open orders query.
func NewListOpenOrdersQuery(caller actor.Capabilities) (ListOpenOrdersQuery, error) {
	if err := caller.ActorID().Validate(); err != nil {
		return ListOpenOrdersQuery{}, err
	}
	return ListOpenOrdersQuery{actor: caller, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrListOpenOrdersQueryIsNotConstructed if validation fails.
func (q ListOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOpenOrdersQueryIsNotConstructed)
}

// Actor returns the caller the query is authorized against.
func (q ListOpenOrdersQuery) Actor() actor.Capabilities {
	return q.actor
}

// OpenOrder is one biddable order. Pickup and Destination are nil when the
// vendor or the address has no coordinates; DistanceKm is nil unless both exist.
type OpenOrder struct {
	ID          kernel.UUID
	VendorID    kernel.UUID
	VendorName  string
	Address     *string
	Total       decimal.Decimal
	Pickup      *kernel.GeoPoint
	Destination *kernel.GeoPoint
	DistanceKm  *float64
}
