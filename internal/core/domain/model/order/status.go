package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status is the lifecycle state of an order, stored as its string value.
type Status string

// Order lifecycle states, in the order an order passes through them.
const (
	PendingVendorConfirm Status = "pending_vendor_confirm"
	VendorConfirmed      Status = "vendor_confirmed"
	ReadyForDelivery     Status = "ready_for_delivery"
	DriverAssigned       Status = "driver_assigned"
	EnRoute              Status = "en_route"
	Delivered            Status = "delivered"
)

func validStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		PendingVendorConfirm: {},
		VendorConfirmed:      {},
		ReadyForDelivery:     {},
		DriverAssigned:       {},
		EnRoute:              {},
		Delivered:            {},
	}
}

// Validate checks that s is a member of the lifecycle enum. Values read from
// storage or requests go through it before use.
func (s Status) Validate() error {
	if _, ok := validStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// String returns the stored representation.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// Confirm moves a freshly placed order to vendor_confirmed.
func (s Status) Confirm() (Status, error) {
	if s != PendingVendorConfirm {
		return "", s.conflict("confirm")
	}
	return VendorConfirmed, nil
}

// MarkReady is allowed from pending_vendor_confirm as well, so vendors may skip
// the explicit confirmation.
func (s Status) MarkReady() (Status, error) {
	if s != PendingVendorConfirm && s != VendorConfirmed {
		return "", s.conflict("mark ready")
	}
	return ReadyForDelivery, nil
}

// AssignDriver moves ready_for_delivery to driver_assigned.
func (s Status) AssignDriver() (Status, error) {
	if s != ReadyForDelivery {
		return "", s.conflict("assign a driver")
	}
	return DriverAssigned, nil
}

// PickUp moves driver_assigned to en_route.
func (s Status) PickUp() (Status, error) {
	if s != DriverAssigned {
		return "", s.conflict("pick up")
	}
	return EnRoute, nil
}

// Deliver accepts both driver_assigned and en_route: a driver may hand over
// without recording the pickup milestone.
func (s Status) Deliver() (Status, error) {
	if s != DriverAssigned && s != EnRoute {
		return "", s.conflict("deliver")
	}
	return Delivered, nil
}

func (s Status) conflict(action string) error {
	return errs.NewStateConflictError("order", fmt.Sprintf("cannot %s an order in status %s", action, s))
}
