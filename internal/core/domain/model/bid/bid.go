package bid

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrBidIsNotConstructed is returned when a Bid was not created through New or Restore.
	ErrBidIsNotConstructed = errors.New("Bid must be created via New or Restore")

	// ErrBidNotAvailable is returned when accepting a bid that is no longer pending or has expired.
	ErrBidNotAvailable = errs.NewStateConflictError("bid", "bid is not available")

	// ErrAlreadyBid is returned when the driver still holds a live pending bid on the order.
	ErrAlreadyBid = errs.NewStateConflictError("bid", "already bid")
)

// Bid is a driver's priced offer to deliver one ready order.
//
// Bid follows these invariants:
//   - At most one bid exists per (order, driver); a driver who bids again after
//     the previous bid expired or was declined reopens the same bid
//   - A bid is live while it is pending and its expiry instant has not passed
//   - Expiry is applied lazily through Reconcile, never by a background sweep
//   - Only a live bid can be accepted; accepted bids never change again
//
// Example:
//
//	b, err := bid.New(kernel.NewUUID(), orderID, driverID, bid.Offer{
//	    Amount: decimal.RequireFromString("7.50"),
//	}, now)
//	if err != nil {
//	    return err
//	}
//	if b.Reconcile(clock.Now()) {
//	    // persist the expired status
//	}
type Bid struct {
	id         kernel.UUID
	orderID    kernel.UUID
	driverID   kernel.UUID
	amount     decimal.Decimal
	distanceKm *float64
	etaMinutes *int
	status     Status
	expiresAt  time.Time
	createdAt  time.Time
	guard      guard.ConstructorGuard
}

// New opens a pending bid that expires after the offer's TTL.
//
// Parameters:
//   - id, orderID, driverID: identifiers of the bid, the order and the bidding driver
//   - offer: the driver's terms, validated with Offer.Validate
//   - now: submission time; expiry is now + offer.TTL()
//
// Returns:
//   - *Bid: a pending bid
//   - error: joined validation errors of the identifiers and the offer
func New(id, orderID, driverID kernel.UUID, offer Offer, now time.Time) (*Bid, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), driverID.Validate(), offer.Validate()); err != nil {
		return nil, err
	}
	b := &Bid{
		id:        id,
		orderID:   orderID,
		driverID:  driverID,
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}
	b.apply(offer, now)
	return b, nil
}

// Restore rebuilds a bid from storage.
// The stored status is returned as is; callers reconcile it against the clock.
func Restore(
	id, orderID, driverID kernel.UUID,
	amount decimal.Decimal,
	distanceKm *float64,
	etaMinutes *int,
	status Status,
	expiresAt, createdAt time.Time,
) (*Bid, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), driverID.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	return &Bid{
		id:         id,
		orderID:    orderID,
		driverID:   driverID,
		amount:     amount,
		distanceKm: distanceKm,
		etaMinutes: etaMinutes,
		status:     status,
		expiresAt:  expiresAt,
		createdAt:  createdAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Bid was created through New or Restore.
func (b *Bid) Validate() error {
	if b == nil {
		return ErrBidIsNotConstructed
	}
	return b.guard.Validate(ErrBidIsNotConstructed)
}

// ID returns the bid's unique identifier.
func (b *Bid) ID() kernel.UUID {
	return b.id
}

// OrderID returns the order the bid is placed on.
func (b *Bid) OrderID() kernel.UUID {
	return b.orderID
}

// DriverID returns the bidding driver.
func (b *Bid) DriverID() kernel.UUID {
	return b.driverID
}

// Amount returns the offered delivery price.
func (b *Bid) Amount() decimal.Decimal {
	return b.amount
}

// DistanceKm returns the vendor to dropoff distance captured at submission.
// Returns nil when either end had no coordinates.
func (b *Bid) DistanceKm() *float64 {
	return b.distanceKm
}

// ETAMinutes returns the driver's estimated minutes to delivery.
// Returns nil when the driver gave none.
func (b *Bid) ETAMinutes() *int {
	return b.etaMinutes
}

// Status returns the stored status, which may still be Pending after expiry
// until Reconcile runs.
func (b *Bid) Status() Status {
	return b.status
}

// ExpiresAt returns the last instant at which the bid is live.
func (b *Bid) ExpiresAt() time.Time {
	return b.expiresAt
}

// CreatedAt returns the time the bid row was first created.
func (b *Bid) CreatedAt() time.Time {
	return b.createdAt
}

// HasExpired reports whether the expiry instant lies strictly before now.
// A bid is still live at exactly ExpiresAt.
func (b *Bid) HasExpired(now time.Time) bool {
	return b.expiresAt.Before(now)
}

// IsLive reports whether the bid is pending and not yet expired.
func (b *Bid) IsLive(now time.Time) bool {
	return b.status == Pending && !b.HasExpired(now)
}

// Reconcile moves a pending bid past its expiry to Expired. It returns true when
// the status changed and the bid needs to be persisted.
func (b *Bid) Reconcile(now time.Time) bool {
	if b.status == Pending && b.HasExpired(now) {
		b.status = Expired
		return true
	}
	return false
}

// Accept marks the bid as the winner. The bid is reconciled first.
func (b *Bid) Accept(now time.Time) error {
	b.Reconcile(now)
	if b.status != Pending {
		return ErrBidNotAvailable
	}
	b.status = Accepted
	return nil
}

// Decline loses a pending bid to another driver. Non-pending bids are left alone.
func (b *Bid) Decline() bool {
	if b.status != Pending {
		return false
	}
	b.status = Declined
	return true
}

// Reopen replaces the terms of a bid the driver holds already.
//
// The bid becomes pending again with a fresh expiry computed from now.
//
// Returns:
//   - ErrAlreadyBid when the bid is still live
//   - ErrBidNotAvailable when the bid was accepted
//   - validation errors of the offer
func (b *Bid) Reopen(offer Offer, now time.Time) error {
	if err := offer.Validate(); err != nil {
		return err
	}
	if b.IsLive(now) {
		return ErrAlreadyBid
	}
	if b.status == Accepted {
		return ErrBidNotAvailable
	}
	b.apply(offer, now)
	return nil
}

func (b *Bid) apply(offer Offer, now time.Time) {
	b.amount = offer.Amount
	b.etaMinutes = offer.ETAMinutes
	b.distanceKm = offer.DistanceKm
	b.status = Pending
	b.expiresAt = now.Add(offer.TTL())
}
