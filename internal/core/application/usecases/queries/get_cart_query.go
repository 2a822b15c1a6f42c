package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/pricing"
	"marketplace/internal/pkg/guard"
)

var ErrGetCartQueryIsNotConstructed = errors.New(
	"GetCartQuery must be created via NewGetCartQuery constructor",
)

// GetCartQuery reads the caller's cart.
type GetCartQuery struct {
	actor actor.Capabilities

	guard guard.ConstructorGuard
}

// NewGetCartQuery creates a new cart query.
func NewGetCartQuery(caller actor.Capabilities) (GetCartQuery, error) {
	if err := caller.ActorID().Validate(); err != nil {
		return GetCartQuery{}, err
	}
	return GetCartQuery{actor: caller, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetCartQueryIsNotConstructed if validation fails.
func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

// Actor returns the caller the query is authorized against.
func (q GetCartQuery) Actor() actor.Capabilities {
	return q.actor
}

// CartView is the cart with its pricing computed from the current items.
type CartView struct {
	Cart    *cart.Cart
	Pricing pricing.Breakdown
}
