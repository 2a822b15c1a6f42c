package order

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/pricing"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through Place or Restore.
	ErrOrderIsNotConstructed = errors.New("Order must be created via Place or Restore")

	// ErrAlreadyAssigned is returned when an order already has a driver assignment.
	ErrAlreadyAssigned = errs.NewStateConflictError("order", "order already has an assignment")

	// ErrNotReadyForDelivery is returned when drivers act on an order that is not ready.
	ErrNotReadyForDelivery = errs.NewStateConflictError("order", "order is not ready for delivery")
)

// Order is the aggregate root of the delivery workflow and the single source of
// truth for status. Bids, assignments and verifications read it but never copy it.
//
// Order follows these invariants:
//   - Items and money fields are frozen at placement
//   - Status only changes through the transitions in Status
//   - Each status change yields exactly one StatusEvent
//   - An address is present only for delivery orders
//   - Can only be created through Place or Restore
//
// Lifecycle:
//
//	pending_vendor_confirm -> vendor_confirmed -> ready_for_delivery
//	ready_for_delivery -> driver_assigned -> en_route -> delivered
//	driver_assigned -> delivered (handover without a pickup milestone)
type Order struct {
	id          kernel.UUID
	customerID  kernel.UUID
	vendorID    kernel.UUID
	addressID   *kernel.UUID
	fulfillment kernel.FulfillmentType
	status      Status
	totals      pricing.Breakdown
	items       []Item
	placedAt    time.Time
	lockedAt    *time.Time

	// pending holds status events not yet persisted
	pending []StatusEvent

	guard guard.ConstructorGuard
}

// Place converts a checkout-ready cart into an order in pending_vendor_confirm.
//
// Pricing is taken from the same projection the cart displays. Items keep their
// name, price and fee; pickup orders freeze a zero delivery fee per item. The
// cart itself is not modified, the caller clears it in the same transaction.
//
// Parameters:
//   - id: identifier of the new order
//   - c: the customer's cart, with a vendor, items and a valid fulfillment
//   - now: placement time, also used for the first status event
//
// Returns:
//   - *Order: the placed order with one pending StatusEvent
//   - error: cart.ErrEmptyCart, cart.ErrInvalidFulfillment or cart.ErrVendorRequired
//     when the cart cannot be checked out
//
// Example:
//
//	placed, err := order.Place(kernel.NewUUID(), c, clock.Now())
//	if err != nil {
//	    return nil, err
//	}
//	c.Clear()
func Place(id kernel.UUID, c *cart.Cart, now time.Time) (*Order, error) {
	if err := errors.Join(id.Validate(), c.Validate()); err != nil {
		return nil, err
	}
	if err := c.ValidateForCheckout(); err != nil {
		return nil, err
	}

	o := &Order{
		id:          id,
		customerID:  c.OwnerID(),
		vendorID:    *c.VendorID(),
		fulfillment: c.Fulfillment(),
		status:      PendingVendorConfirm,
		totals:      c.Pricing(),
		placedAt:    now,
		guard:       guard.NewConstructorGuard(),
	}
	if o.fulfillment.IsDelivery() {
		addressID := *c.AddressID()
		o.addressID = &addressID
	}

	o.items = make([]Item, 0, len(c.Items()))
	for _, ci := range c.Items() {
		productID := ci.ProductID()
		name := ci.Name()
		if name == "" {
			name = DefaultItemName
		}
		fee := ci.DeliveryFee()
		if !o.fulfillment.IsDelivery() {
			fee = decimal.Zero
		}
		o.items = append(o.items, Item{
			ID:          kernel.NewUUID(),
			ProductID:   &productID,
			Name:        name,
			Quantity:    ci.Quantity(),
			UnitPrice:   ci.UnitPrice(),
			DeliveryFee: fee,
		})
	}

	customerID := o.customerID
	o.record(PendingVendorConfirm, &customerID, "placed", now)
	return o, nil
}

// Restore rebuilds an order from storage without recording events.
//
// Identifiers, fulfillment type and status are validated; items and totals are
// trusted as persisted since they were frozen by Place.
func Restore(
	id, customerID, vendorID kernel.UUID,
	addressID *kernel.UUID,
	fulfillment kernel.FulfillmentType,
	status Status,
	totals pricing.Breakdown,
	items []Item,
	placedAt time.Time,
	lockedAt *time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		vendorID.Validate(),
		fulfillment.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	return &Order{
		id:          id,
		customerID:  customerID,
		vendorID:    vendorID,
		addressID:   addressID,
		fulfillment: fulfillment,
		status:      status,
		totals:      totals,
		items:       items,
		placedAt:    placedAt,
		lockedAt:    lockedAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Order was created through Place or Restore.
//
// Returns:
//   - nil if the order is valid
//   - ErrOrderIsNotConstructed for a nil or zero-value order
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// VendorID returns the single vendor the order was placed with.
func (o *Order) VendorID() kernel.UUID {
	return o.vendorID
}

// AddressID returns the delivery address.
// Returns nil for pickup orders.
func (o *Order) AddressID() *kernel.UUID {
	return o.addressID
}

// Fulfillment returns whether the order is picked up or delivered.
func (o *Order) Fulfillment() kernel.FulfillmentType {
	return o.fulfillment
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// Totals returns the pricing frozen at placement.
// It never changes, even when catalog prices or vendor fees do.
func (o *Order) Totals() pricing.Breakdown {
	return o.totals
}

// Items returns the frozen order lines.
func (o *Order) Items() []Item {
	return o.items
}

// PlacedAt returns the checkout time.
func (o *Order) PlacedAt() time.Time {
	return o.placedAt
}

// LockedAt returns the time the vendor marked the order ready.
// Returns nil before that.
func (o *Order) LockedAt() *time.Time {
	return o.lockedAt
}

// IsOpenForBids reports whether drivers may bid on the order at all.
// Whether an assignment exists is checked separately.
func (o *Order) IsOpenForBids() bool {
	return o.status == ReadyForDelivery
}

// Confirm records the vendor's confirmation.
//
// Returns a StateConflictError unless the order is pending_vendor_confirm.
func (o *Order) Confirm(causedBy kernel.UUID, at time.Time) error {
	return o.transition(Status.Confirm, causedBy, "", at)
}

// MarkReady opens the order for bidding and locks its contents.
//
// Allowed from pending_vendor_confirm and vendor_confirmed. Sets LockedAt to at.
func (o *Order) MarkReady(causedBy kernel.UUID, at time.Time) error {
	if err := o.transition(Status.MarkReady, causedBy, "", at); err != nil {
		return err
	}
	lockedAt := at
	o.lockedAt = &lockedAt
	return nil
}

// AssignDriver moves a ready order to driver_assigned.
//
// It is driven by bid acceptance only, inside the transaction that creates the
// assignment and holds the order row lock.
func (o *Order) AssignDriver(causedBy kernel.UUID, at time.Time) error {
	return o.transition(Status.AssignDriver, causedBy, "", at)
}

// MarkEnRoute records the pickup milestone: driver_assigned becomes en_route.
func (o *Order) MarkEnRoute(causedBy kernel.UUID, at time.Time) error {
	return o.transition(Status.PickUp, causedBy, "", at)
}

// MarkDelivered closes the lifecycle.
//
// Parameters:
//   - causedBy: the driver or admin completing the delivery
//   - at: delivery time
//   - note: distinguishes verified from manual delivery in the status trail
//
// Returns a StateConflictError unless the order is driver_assigned or en_route.
func (o *Order) MarkDelivered(causedBy kernel.UUID, at time.Time, note string) error {
	return o.transition(Status.Deliver, causedBy, note, at)
}

// PullStatusEvents returns the events recorded since the last call and forgets them.
// Repositories call it when saving so each event is appended exactly once.
func (o *Order) PullStatusEvents() []StatusEvent {
	events := o.pending
	o.pending = nil
	return events
}

func (o *Order) transition(
	next func(Status) (Status, error),
	causedBy kernel.UUID,
	note string,
	at time.Time,
) error {
	if err := causedBy.Validate(); err != nil {
		return err
	}
	status, err := next(o.status)
	if err != nil {
		return err
	}
	o.status = status
	o.record(status, &causedBy, note, at)
	return nil
}

func (o *Order) record(status Status, causedBy *kernel.UUID, note string, at time.Time) {
	o.pending = append(o.pending, StatusEvent{
		Status:   status,
		CausedBy: causedBy,
		Note:     note,
		At:       at,
	})
}
