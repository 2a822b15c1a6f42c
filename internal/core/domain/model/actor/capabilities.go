// Package actor resolves what the caller of an operation is allowed to do.
//
// Every operation states its permission as one predicate over Capabilities
// instead of querying role storage itself. Admins pass every predicate.
package actor

import (
	"slices"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Role is a permission group carried in the caller's token.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleDriver   Role = "driver"
	RoleAdmin    Role = "admin"
)

// Capabilities is the resolved identity of one caller: the actor id from the
// token subject, its roles and the vendors it owns.
//
// Example:
//
//	caps, err := actor.NewCapabilities(userID, []actor.Role{actor.RoleDriver}, nil)
//	if err != nil {
//	    return err
//	}
//	if err = caps.CanBid(); err != nil {
//	    return err // errs.ErrAccessDenied
//	}
type Capabilities struct {
	actorID        kernel.UUID
	roles          []Role
	ownedVendorIDs []kernel.UUID
}

// NewCapabilities copies roles and ownedVendorIDs so later changes to the slices
// do not leak into the caller identity.
//
// Returns a ValueIsRequiredError when actorID is missing.
func NewCapabilities(actorID kernel.UUID, roles []Role, ownedVendorIDs []kernel.UUID) (Capabilities, error) {
	if err := actorID.Validate(); err != nil {
		return Capabilities{}, err
	}
	return Capabilities{
		actorID:        actorID,
		roles:          slices.Clone(roles),
		ownedVendorIDs: slices.Clone(ownedVendorIDs),
	}, nil
}

// ActorID returns the caller's user id.
func (c Capabilities) ActorID() kernel.UUID {
	return c.actorID
}

// Roles returns a copy of the caller's roles.
func (c Capabilities) Roles() []Role {
	return slices.Clone(c.roles)
}

// HasRole reports whether the caller carries role.
func (c Capabilities) HasRole(role Role) bool {
	return slices.Contains(c.roles, role)
}

// IsAdmin reports whether the caller passes every predicate.
func (c Capabilities) IsAdmin() bool {
	return c.HasRole(RoleAdmin)
}

// OwnsVendor reports whether the caller owns vendorID.
func (c Capabilities) OwnsVendor(vendorID kernel.UUID) bool {
	return slices.ContainsFunc(c.ownedVendorIDs, vendorID.IsEqual)
}

// IsDriver is true for drivers and admins.
func (c Capabilities) IsDriver() bool {
	return c.IsAdmin() || c.HasRole(RoleDriver)
}

// CanBid is the precondition for listing open orders, eligibility checks and bidding.
func (c Capabilities) CanBid() error {
	if c.IsDriver() {
		return nil
	}
	return errs.NewAccessDeniedError("only drivers can bid")
}

// CanShop is required to check out.
func (c Capabilities) CanShop() error {
	if c.IsAdmin() || c.HasRole(RoleCustomer) {
		return nil
	}
	return errs.NewAccessDeniedError("only customers can check out")
}

// CanActAsCustomerOf covers bid listing, bid acceptance and OTP issuance.
func (c Capabilities) CanActAsCustomerOf(customerID kernel.UUID) error {
	if c.IsAdmin() || (c.HasRole(RoleCustomer) && c.actorID.IsEqual(customerID)) {
		return nil
	}
	return errs.NewAccessDeniedError("caller is not the customer of this order")
}

// CanManageVendor covers confirm and mark ready.
func (c Capabilities) CanManageVendor(vendorID kernel.UUID) error {
	if c.IsAdmin() || (c.HasRole(RoleVendor) && c.OwnsVendor(vendorID)) {
		return nil
	}
	return errs.NewAccessDeniedError("caller does not own this vendor")
}

// CanDrive covers every write on an assignment.
func (c Capabilities) CanDrive(assignedDriverID kernel.UUID) error {
	if c.IsAdmin() || (c.HasRole(RoleDriver) && c.actorID.IsEqual(assignedDriverID)) {
		return nil
	}
	return errs.NewAccessDeniedError("caller is not the assigned driver")
}

// CanTrack lets the order's customer, the vendor owner or an admin watch a delivery.
func (c Capabilities) CanTrack(customerID, vendorID kernel.UUID) error {
	switch {
	case c.IsAdmin():
		return nil
	case c.HasRole(RoleCustomer) && c.actorID.IsEqual(customerID):
		return nil
	case c.HasRole(RoleVendor) && c.OwnsVendor(vendorID):
		return nil
	default:
		return errs.NewAccessDeniedError("caller cannot track this delivery")
	}
}
