package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/pkg/clock"
)

// CheckoutCommandHandler converts a cart into an order in one transaction:
// the order, its items, its first status event, the payment record and the
// cleared cart are committed together or not at all.
type CheckoutCommandHandler struct {
	uowFactory CheckoutUoWFactory
	clock      clock.Clock
}

// NewCheckoutCommandHandler creates a handler that stamps orders with clk.
func NewCheckoutCommandHandler(uowFactory CheckoutUoWFactory, clk clock.Clock) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

// Handle places an order from the caller's cart.
//
// Returns:
//   - *order.Order: the placed order in pending_vendor_confirm
//   - cart.ErrEmptyCart or cart.ErrInvalidFulfillment when the cart cannot be checked out
//   - errs.ErrAccessDenied when the caller is not a customer
func (h CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := cmd.Actor().CanShop(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	orderRepo := uow.OrderRepository()

	c, err := cartRepo.GetOrCreate(ctx, cmd.Actor().ActorID())
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	placed, err := order.Place(kernel.NewUUID(), c, now)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, placed); err != nil {
		return nil, err
	}

	p, err := payment.New(kernel.NewUUID(), placed.ID(), cmd.PaymentMethod(), placed.Totals().Total)
	if err != nil {
		return nil, err
	}
	if err = uow.PaymentRepository().Add(ctx, p); err != nil {
		return nil, err
	}

	c.Clear()
	if err = cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return placed, nil
}
