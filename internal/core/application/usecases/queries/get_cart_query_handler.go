package queries

import (
	"context"
)

// GetCartQueryHandler serves cart reads.
type GetCartQueryHandler struct {
	uowFactory CartUoWFactory
}

func NewGetCartQueryHandler(uowFactory CartUoWFactory) GetCartQueryHandler {
	return GetCartQueryHandler{uowFactory: uowFactory}
}

// Handle returns the caller's cart, creating an empty one on first access.
func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (CartView, error) {
	if err := query.Validate(); err != nil {
		return CartView{}, err
	}
	if err := query.Actor().CanShop(); err != nil {
		return CartView{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CartView{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CartRepository().GetOrCreate(ctx, query.Actor().ActorID())
	if err != nil {
		return CartView{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return CartView{}, err
	}

	return CartView{Cart: c, Pricing: c.Pricing()}, nil
}
