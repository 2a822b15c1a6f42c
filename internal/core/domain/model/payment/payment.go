// Package payment records how an order is paid. Card payments are opaque
// provider payloads; cash on delivery settles only on verified handoff.
package payment

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Method is how the customer pays for an order.
type Method string

const (
	MethodCard Method = "card"
	MethodCOD  Method = "cod"
)

// Validate accepts only MethodCard and MethodCOD.
//
// Returns a ValueIsInvalidError on "payment_method" otherwise.
func (m Method) Validate() error {
	if m != MethodCard && m != MethodCOD {
		return errs.NewValueIsInvalidErrorWithCause("payment_method", fmt.Errorf("%q is not one of card, cod", string(m)))
	}
	return nil
}

// Status is the settlement state of a payment.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusFailed  Status = "failed"
)

// ErrPaymentIsNotConstructed is returned when a Payment was not created through New or Restore.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via New or Restore")

// Payment records how one order is paid.
//
// Payment follows these invariants:
//   - Exactly one payment is created with each order at checkout
//   - Amount equals the order total frozen at checkout
//   - A cash on delivery payment becomes paid only through a verified handoff
//   - A paid payment never changes again
//
// Example:
//
//	p, err := payment.New(kernel.NewUUID(), placed.ID(), payment.MethodCOD, placed.Totals().Total)
//	if err != nil {
//	    return err
//	}
//	if p.SettleCashOnDelivery(now) {
//	    // persist the settled payment
//	}
type Payment struct {
	id              kernel.UUID
	orderID         kernel.UUID
	method          Method
	amount          decimal.Decimal
	status          Status
	providerPayload json.RawMessage
	paidAt          *time.Time
	guard           guard.ConstructorGuard
}

// New records a pending payment of amount for orderID.
//
// Parameters:
//   - id: identifier of the payment
//   - orderID: the paid order
//   - method: card or cod
//   - amount: non-negative order total
//
// Returns joined validation errors of the identifiers, the method and the amount.
func New(id, orderID kernel.UUID, method Method, amount decimal.Decimal) (*Payment, error) {
	var amountErr error
	if amount.IsNegative() {
		amountErr = errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is less than 0", amount))
	}
	if err := errors.Join(id.Validate(), orderID.Validate(), method.Validate(), amountErr); err != nil {
		return nil, err
	}
	return &Payment{
		id:      id,
		orderID: orderID,
		method:  method,
		amount:  amount,
		status:  StatusPending,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Restore rebuilds a payment from storage, including its settlement state.
func Restore(
	id, orderID kernel.UUID,
	method Method,
	amount decimal.Decimal,
	status Status,
	providerPayload json.RawMessage,
	paidAt *time.Time,
) (*Payment, error) {
	p, err := New(id, orderID, method, amount)
	if err != nil {
		return nil, err
	}
	p.status = status
	p.providerPayload = providerPayload
	p.paidAt = paidAt
	return p, nil
}

// Validate ensures the Payment was created through New or Restore.
func (p *Payment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

// ID returns the payment's unique identifier.
func (p *Payment) ID() kernel.UUID {
	return p.id
}

// OrderID returns the paid order.
func (p *Payment) OrderID() kernel.UUID {
	return p.orderID
}

// Method returns how the order is paid.
func (p *Payment) Method() Method {
	return p.method
}

// Amount returns the charged total.
func (p *Payment) Amount() decimal.Decimal {
	return p.amount
}

// Status returns the settlement state.
func (p *Payment) Status() Status {
	return p.status
}

// ProviderPayload returns the opaque card provider data.
// Returns nil for cash on delivery.
func (p *Payment) ProviderPayload() json.RawMessage {
	return p.providerPayload
}

// PaidAt returns the settlement time.
// Returns nil while unpaid.
func (p *Payment) PaidAt() *time.Time {
	return p.paidAt
}

// IsPaid reports whether the payment is settled.
func (p *Payment) IsPaid() bool {
	return p.status == StatusPaid
}

// SettleCashOnDelivery marks an unpaid COD payment as paid. It returns false for
// card payments and for payments already paid.
func (p *Payment) SettleCashOnDelivery(at time.Time) bool {
	if p.method != MethodCOD || p.IsPaid() {
		return false
	}
	p.status = StatusPaid
	p.paidAt = &at
	return true
}
