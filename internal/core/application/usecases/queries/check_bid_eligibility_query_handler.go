package queries

import (
	"context"
	"database/sql"
	"errors"

	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/clock"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// CheckBidEligibilityQueryHandler answers eligibility checks with one read.
type CheckBidEligibilityQueryHandler struct {
	db    *gorm.DB
	clock clock.Clock
}

// NewCheckBidEligibilityQueryHandler creates a handler judging expiry against clk.
func NewCheckBidEligibilityQueryHandler(db *gorm.DB, clk clock.Clock) CheckBidEligibilityQueryHandler {
	return CheckBidEligibilityQueryHandler{db: db, clock: clk}
}

// Handle answers whether the caller may bid on the order now. Only a missing
// order is an error; every other refusal is a reason.
//
// A driver whose earlier bid expired may bid again, so only a live pending bid
// counts as "already bid". Accepted and declined bids imply an assignment.
func (h CheckBidEligibilityQueryHandler) Handle(
	ctx context.Context,
	query CheckBidEligibilityQuery,
) (BidEligibility, error) {
	if err := query.Validate(); err != nil {
		return BidEligibility{}, err
	}
	if !query.Actor().IsDriver() {
		return ineligible(ReasonNotADriver), nil
	}

	var (
		status   order.Status
		assigned bool
		hasBid   bool
	)
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.status,
			EXISTS (SELECT 1 FROM assignments s WHERE s.order_id = o.id),
			EXISTS (
				SELECT 1 FROM bids b
				WHERE b.order_id = o.id
					AND b.driver_id = ?
					AND b.status = ?
					AND b.expires_at >= ?
			)
		FROM orders o
		WHERE o.id = ?
	`, query.Actor().ActorID().Bytes(), string(bid.Pending), h.clock.Now(), query.OrderID().Bytes()).
		Row().
		Scan(&status, &assigned, &hasBid)
	if errors.Is(err, sql.ErrNoRows) {
		return BidEligibility{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}
	if err != nil {
		return BidEligibility{}, err
	}

	switch {
	case status != order.ReadyForDelivery:
		return ineligible(ReasonOrderNotReady), nil
	case assigned:
		return ineligible(ReasonAlreadyAssigned), nil
	case hasBid:
		return ineligible(ReasonAlreadyBid), nil
	default:
		return eligible(), nil
	}
}
