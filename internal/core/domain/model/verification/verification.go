// Package verification implements proof of handoff: a one-time code issued to
// the customer and checked, together with the driver's position, at the door.
package verification

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// Code format and handoff distance.
const (
	CodeLength = 6

	// DropoffRadiusKm is the largest accepted distance between driver and dropoff.
	DropoffRadiusKm = 0.3
)

// Type distinguishes verification mechanisms. Only TypeOTP is issued.
type Type string

const (
	TypeOTP Type = "otp"
	TypeQR  Type = "qr"
)

// Verification errors. The code and location errors surface as 422 responses
// with a field-level reason.
var (
	ErrVerificationIsNotConstructed = errors.New("Verification must be created via Issue or Restore")

	ErrNoPendingVerification = errs.NewValueIsInvalidErrorWithCause("code", errors.New("no pending verification found"))
	ErrInvalidCode           = errs.NewValueIsInvalidErrorWithCause("code", errors.New("invalid code"))
	ErrMissingCoordinates    = errs.NewGeoPreconditionError("dropoff", "missing dropoff coordinates")
	ErrTooFarFromDropoff     = errs.NewGeoPreconditionError("location", "too far from dropoff")
	ErrAlreadyVerified       = errs.NewStateConflictError("verification", "delivery already verified")
)

// Verification is the proof of handoff for one order.
//
// Verification follows these invariants:
//   - Unique per (order, type); issuing again replaces the pending code in place
//   - Pending while VerifiedAt is nil; consumed at most once
//   - A consumed verification keeps the verifying driver and time forever
//
// Example:
//
//	v, err := verification.Issue(kernel.NewUUID(), orderID, "004271")
//	if err != nil {
//	    return err
//	}
//	err = v.Verify(code, reported, dropoff, driverID, now)
//	switch {
//	case errors.Is(err, verification.ErrInvalidCode):
//	    // wrong code, nothing changed
//	case errors.Is(err, errs.ErrGeoPrecondition):
//	    // driver too far or dropoff unknown
//	}
type Verification struct {
	id         kernel.UUID
	orderID    kernel.UUID
	kind       Type
	code       string
	driverID   *kernel.UUID
	verifiedAt *time.Time
	guard      guard.ConstructorGuard
}

// Issue creates a pending OTP verification for orderID.
//
// Parameters:
//   - id: identifier of the verification
//   - orderID: the order the code proves delivery of
//   - code: exactly CodeLength digits
//
// Returns joined validation errors of the identifiers and the code.
func Issue(id, orderID kernel.UUID, code string) (*Verification, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), ValidateCode(code)); err != nil {
		return nil, err
	}
	return &Verification{
		id:      id,
		orderID: orderID,
		kind:    TypeOTP,
		code:    code,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Restore rebuilds a verification from storage.
// The stored code is trusted as persisted.
func Restore(
	id, orderID kernel.UUID,
	kind Type,
	code string,
	driverID *kernel.UUID,
	verifiedAt *time.Time,
) (*Verification, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	return &Verification{
		id:         id,
		orderID:    orderID,
		kind:       kind,
		code:       code,
		driverID:   driverID,
		verifiedAt: verifiedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// ValidateCode checks that code is exactly CodeLength ASCII digits.
func ValidateCode(code string) error {
	if len(code) != CodeLength {
		return errs.NewValueIsInvalidErrorWithCause("code", fmt.Errorf("code must have %d digits", CodeLength))
	}
	for i := range len(code) {
		if code[i] < '0' || code[i] > '9' {
			return errs.NewValueIsInvalidErrorWithCause("code", errors.New("code must be numeric"))
		}
	}
	return nil
}

// Validate ensures the Verification was created through Issue or Restore.
func (v *Verification) Validate() error {
	if v == nil {
		return ErrVerificationIsNotConstructed
	}
	return v.guard.Validate(ErrVerificationIsNotConstructed)
}

// ID returns the verification's unique identifier.
func (v *Verification) ID() kernel.UUID {
	return v.id
}

// OrderID returns the order the verification belongs to.
func (v *Verification) OrderID() kernel.UUID {
	return v.orderID
}

// Type returns the verification mechanism.
func (v *Verification) Type() Type {
	return v.kind
}

// Code returns the current code. It is handed to the customer once at issuance.
func (v *Verification) Code() string {
	return v.code
}

// DriverID returns the driver who completed the handoff.
// Returns nil while pending.
func (v *Verification) DriverID() *kernel.UUID {
	return v.driverID
}

// VerifiedAt returns the handoff time.
// Returns nil while pending.
func (v *Verification) VerifiedAt() *time.Time {
	return v.verifiedAt
}

// IsPending reports whether the verification has not been consumed.
func (v *Verification) IsPending() bool {
	return v.verifiedAt == nil
}

// Reissue replaces the code of a pending verification.
//
// A consumed verification is the proof of handoff and is never reset: Reissue
// returns ErrAlreadyVerified and leaves the code, driver and verification time
// untouched.
func (v *Verification) Reissue(code string) error {
	if !v.IsPending() {
		return ErrAlreadyVerified
	}
	if err := ValidateCode(code); err != nil {
		return err
	}
	v.code = code
	return nil
}

// Matches compares in constant time.
func (v *Verification) Matches(code string) bool {
	return subtle.ConstantTimeCompare([]byte(v.code), []byte(code)) == 1
}

// Verify runs the handoff checks in order and consumes the verification when all pass:
// pending, matching code, known dropoff, driver within DropoffRadiusKm.
// Nothing changes on failure.
func (v *Verification) Verify(
	code string,
	reported kernel.GeoPoint,
	dropoff *kernel.GeoPoint,
	driverID kernel.UUID,
	at time.Time,
) error {
	if !v.IsPending() {
		return ErrNoPendingVerification
	}
	if !v.Matches(code) {
		return ErrInvalidCode
	}
	if err := CheckProximity(reported, dropoff); err != nil {
		return err
	}
	id := driverID
	v.driverID = &id
	v.verifiedAt = &at
	return nil
}

// CheckProximity fails when dropoff is unknown or reported lies outside DropoffRadiusKm of it.
func CheckProximity(reported kernel.GeoPoint, dropoff *kernel.GeoPoint) error {
	if dropoff == nil {
		return ErrMissingCoordinates
	}
	if reported.DistanceKm(*dropoff) > DropoffRadiusKm {
		return ErrTooFarFromDropoff
	}
	return nil
}
