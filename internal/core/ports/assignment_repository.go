package ports

import (
	"context"

	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for assignments.
// Provides storage for the single assignment of an order and for the
// tracking points its driver reports.
type AssignmentRepository interface {
	// Add persists a new assignment.
	// Fails when the order already has one.
	Add(ctx context.Context, a *assignment.Assignment) error

	// Update persists delivery stamps of an existing assignment.
	// The assignment must exist in the repository.
	Update(ctx context.Context, a *assignment.Assignment) error

	// Get retrieves an assignment by its identifier.
	// Returns errs.ErrObjectNotFound when it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	// ExistsForOrder reports whether the order has been awarded.
	// Used by acceptance to refuse a second award.
	ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error)

	// AddTrackingPoint appends one reported position.
	// Points are never updated or removed.
	AddTrackingPoint(ctx context.Context, p assignment.TrackingPoint) error

	// ListRecentTrackingPoints returns up to limit points, newest first.
	ListRecentTrackingPoints(ctx context.Context, assignmentID kernel.UUID, limit int) ([]assignment.TrackingPoint, error)
}
