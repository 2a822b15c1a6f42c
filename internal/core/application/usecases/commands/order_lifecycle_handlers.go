package commands

import (
	"context"

	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/clock"
)

// ConfirmOrderCommandHandler accepts placed orders on behalf of their vendor.
type ConfirmOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      clock.Clock
}

func NewConfirmOrderCommandHandler(uowFactory OrderUoWFactory, clk clock.Clock) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{uowFactory: uowFactory, clock: clk}
}

// Handle moves a pending order to vendor_confirmed.
func (h ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = cmd.Actor().CanManageVendor(o.VendorID()); err != nil {
		return nil, err
	}
	if err = o.Confirm(cmd.Actor().ActorID(), h.clock.Now()); err != nil {
		return nil, err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

// MarkOrderReadyCommandHandler opens confirmed orders for bids.
type MarkOrderReadyCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      clock.Clock
}

func NewMarkOrderReadyCommandHandler(uowFactory OrderUoWFactory, clk clock.Clock) MarkOrderReadyCommandHandler {
	return MarkOrderReadyCommandHandler{uowFactory: uowFactory, clock: clk}
}

// Handle locks the order for bidding and tells the customer it is ready.
func (h MarkOrderReadyCommandHandler) Handle(ctx context.Context, cmd MarkOrderReadyCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = cmd.Actor().CanManageVendor(o.VendorID()); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	if err = o.MarkReady(cmd.Actor().ActorID(), now); err != nil {
		return nil, err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.OutboxRepository().Enqueue(ctx, notification.OrderReady(o.CustomerID(), o.ID(), now)); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}
