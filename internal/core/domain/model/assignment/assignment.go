package assignment

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

// ErrAssignmentIsNotConstructed is returned when an Assignment was not created through New or Restore.
var ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via New or Restore")

// Assignment binds the winning driver to an order.
//
// Assignment follows these invariants:
//   - Exactly one assignment exists per order, created only by bid acceptance
//   - The driver never changes after acceptance
//   - Pickup and delivery times are stamped at most once
//
// Example:
//
//	a, err := assignment.New(kernel.NewUUID(), orderID, winner.DriverID(), now)
//	if err != nil {
//	    return err
//	}
//	if a.MarkPickedUp(now) {
//	    // first pickup: move the order en route
//	}
type Assignment struct {
	id          kernel.UUID
	orderID     kernel.UUID
	driverID    kernel.UUID
	acceptedAt  time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time
	guard       guard.ConstructorGuard
}

// New creates the assignment for an accepted bid.
//
// Parameters:
//   - id: identifier of the assignment
//   - orderID: the order being delivered
//   - driverID: the driver whose bid won
//   - acceptedAt: acceptance time
//
// Returns a ValueIsRequiredError when an identifier is missing.
// New is called only by bid acceptance.
func New(id, orderID, driverID kernel.UUID, acceptedAt time.Time) (*Assignment, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), driverID.Validate()); err != nil {
		return nil, err
	}
	return &Assignment{
		id:         id,
		orderID:    orderID,
		driverID:   driverID,
		acceptedAt: acceptedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Restore rebuilds an assignment with its milestones from storage.
func Restore(
	id, orderID, driverID kernel.UUID,
	acceptedAt time.Time,
	pickedUpAt, deliveredAt *time.Time,
) (*Assignment, error) {
	a, err := New(id, orderID, driverID, acceptedAt)
	if err != nil {
		return nil, err
	}
	a.pickedUpAt = pickedUpAt
	a.deliveredAt = deliveredAt
	return a, nil
}

// Validate ensures the Assignment was created through New or Restore.
func (a *Assignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

// ID returns the assignment's unique identifier.
func (a *Assignment) ID() kernel.UUID {
	return a.id
}

// OrderID returns the delivered order.
func (a *Assignment) OrderID() kernel.UUID {
	return a.orderID
}

// DriverID returns the assigned driver.
func (a *Assignment) DriverID() kernel.UUID {
	return a.driverID
}

// AcceptedAt returns the time the winning bid was accepted.
func (a *Assignment) AcceptedAt() time.Time {
	return a.acceptedAt
}

// PickedUpAt returns the pickup time.
// Returns nil before pickup.
func (a *Assignment) PickedUpAt() *time.Time {
	return a.pickedUpAt
}

// DeliveredAt returns the handoff time.
// Returns nil before delivery.
func (a *Assignment) DeliveredAt() *time.Time {
	return a.deliveredAt
}

// IsPickedUp reports whether the pickup milestone is stamped.
func (a *Assignment) IsPickedUp() bool {
	return a.pickedUpAt != nil
}

// IsDelivered reports whether the handoff milestone is stamped.
func (a *Assignment) IsDelivered() bool {
	return a.deliveredAt != nil
}

// IsDrivenBy reports whether driverID is the assigned driver.
func (a *Assignment) IsDrivenBy(driverID kernel.UUID) bool {
	return a.driverID.IsEqual(driverID)
}

// MarkPickedUp stamps the pickup time once. It returns false if already stamped.
func (a *Assignment) MarkPickedUp(at time.Time) bool {
	if a.pickedUpAt != nil {
		return false
	}
	a.pickedUpAt = &at
	return true
}

// MarkDelivered stamps the handoff time once. It returns false if already stamped.
func (a *Assignment) MarkDelivered(at time.Time) bool {
	if a.deliveredAt != nil {
		return false
	}
	a.deliveredAt = &at
	return true
}
