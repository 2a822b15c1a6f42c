package services

import (
	"time"

	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/verification"
)

// Status notes recorded on the delivered event.
const (
	NoteVerifiedDelivery = "delivered with verified code"
	NoteManualDelivery   = "marked delivered by driver"
)

// DeliveryFinalizer moves an assignment and its order to delivered.
//
// The verified path also consumes the verification and settles cash on delivery.
// The manual path does neither and is idempotent.
type DeliveryFinalizer struct{}

// NewDeliveryFinalizer creates the stateless delivery service.
func NewDeliveryFinalizer() DeliveryFinalizer {
	return DeliveryFinalizer{}
}

// FinalizeVerified checks code and position through v and, when they pass,
// stamps the assignment, delivers the order on behalf of the assigned driver and
// settles every unpaid COD payment. It returns the payments it settled.
func (DeliveryFinalizer) FinalizeVerified(
	o *order.Order,
	a *assignment.Assignment,
	v *verification.Verification,
	payments []*payment.Payment,
	code string,
	reported kernel.GeoPoint,
	dropoff *kernel.GeoPoint,
	now time.Time,
) ([]*payment.Payment, error) {
	if v == nil {
		return nil, verification.ErrNoPendingVerification
	}
	if err := v.Verify(code, reported, dropoff, a.DriverID(), now); err != nil {
		return nil, err
	}

	a.MarkDelivered(now)
	if err := o.MarkDelivered(a.DriverID(), now, NoteVerifiedDelivery); err != nil {
		return nil, err
	}

	var settled []*payment.Payment
	for _, p := range payments {
		if p.SettleCashOnDelivery(now) {
			settled = append(settled, p)
		}
	}
	return settled, nil
}

// FinalizeManual stamps delivery without verification. It returns false, and
// changes nothing, when the assignment is already delivered.
func (DeliveryFinalizer) FinalizeManual(
	o *order.Order,
	a *assignment.Assignment,
	causedBy kernel.UUID,
	now time.Time,
) (bool, error) {
	if a.IsDelivered() {
		return false, nil
	}
	if err := o.MarkDelivered(causedBy, now, NoteManualDelivery); err != nil {
		return false, err
	}
	a.MarkDelivered(now)
	return true, nil
}
