package queries

import (
	"context"

	"marketplace/internal/core/domain/model/assignment"

	"gorm.io/gorm"
)

// GetNavigationLinksQueryHandler builds map links for drivers.
type GetNavigationLinksQueryHandler struct {
	db *gorm.DB
}

func NewGetNavigationLinksQueryHandler(db *gorm.DB) GetNavigationLinksQueryHandler {
	return GetNavigationLinksQueryHandler{db: db}
}

// Handle returns links to the vendor and to the dropoff.
// Only the assigned driver or an admin may read them.
func (h GetNavigationLinksQueryHandler) Handle(
	ctx context.Context,
	query GetNavigationLinksQuery,
) (NavigationLinks, error) {
	if err := query.Validate(); err != nil {
		return NavigationLinks{}, err
	}

	view, err := loadAssignmentView(ctx, h.db, query.AssignmentID())
	if err != nil {
		return NavigationLinks{}, err
	}
	if err = query.Actor().CanDrive(view.DriverID); err != nil {
		return NavigationLinks{}, err
	}

	dropoffLabel := assignment.DefaultDropoffLabel
	if view.Address != nil && *view.Address != "" {
		dropoffLabel = *view.Address
	}

	return NavigationLinks{
		PickupURL:  assignment.NavigationURLPtr(view.VendorLocation, view.VendorName),
		DropoffURL: assignment.NavigationURLPtr(view.AddressLocation, dropoffLabel),
	}, nil
}
