package bid

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Bid lifetime and offer limits.
const (
	DefaultTTL = 30 * time.Minute

	MinTTLMinutes = 5
	MaxTTLMinutes = 120
	MinETAMinutes = 1
)

// Offer carries the driver-supplied terms of a bid.
type Offer struct {
	Amount     decimal.Decimal
	ETAMinutes *int
	// TTLMinutes overrides DefaultTTL when set.
	TTLMinutes *int
	// DistanceKm is the vendor to dropoff distance at submission, when both ends are known.
	DistanceKm *float64
}

// Validate checks the offer terms.
//
// Returns joined errors for:
//   - "amount": negative amounts
//   - "eta_minutes": an ETA below MinETAMinutes
//   - "expires_in_minutes": a TTL outside [MinTTLMinutes, MaxTTLMinutes]
func (o Offer) Validate() error {
	var amountErr, etaErr, ttlErr error
	if o.Amount.IsNegative() {
		amountErr = errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is less than 0", o.Amount))
	}
	if o.ETAMinutes != nil && *o.ETAMinutes < MinETAMinutes {
		etaErr = errs.NewValueIsInvalidErrorWithCause("eta_minutes",
			fmt.Errorf("%d is less than %d", *o.ETAMinutes, MinETAMinutes))
	}
	if o.TTLMinutes != nil && (*o.TTLMinutes < MinTTLMinutes || *o.TTLMinutes > MaxTTLMinutes) {
		ttlErr = errs.NewValueIsOutOfRangeError("expires_in_minutes", *o.TTLMinutes, MinTTLMinutes, MaxTTLMinutes)
	}
	return errors.Join(amountErr, etaErr, ttlErr)
}

// TTL resolves the bid lifetime: TTLMinutes when set, DefaultTTL otherwise.
func (o Offer) TTL() time.Duration {
	if o.TTLMinutes == nil {
		return DefaultTTL
	}
	return time.Duration(*o.TTLMinutes) * time.Minute
}
