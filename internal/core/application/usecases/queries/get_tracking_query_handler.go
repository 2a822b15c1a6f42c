package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTrackingQueryHandler serves live tracking for customers.
type GetTrackingQueryHandler struct {
	db *gorm.DB
}

// NewGetTrackingQueryHandler creates a handler reading from db.
func NewGetTrackingQueryHandler(db *gorm.DB) GetTrackingQueryHandler {
	return GetTrackingQueryHandler{db: db}
}

// Handle returns the tracking view. The ETA targets the dropoff address and
// falls back to the vendor when the address has no coordinates.
func (h GetTrackingQueryHandler) Handle(ctx context.Context, query GetTrackingQuery) (Tracking, error) {
	if err := query.Validate(); err != nil {
		return Tracking{}, err
	}

	view, err := loadAssignmentView(ctx, h.db, query.AssignmentID())
	if err != nil {
		return Tracking{}, err
	}
	if err = query.Actor().CanTrack(view.CustomerID, view.VendorID); err != nil {
		return Tracking{}, err
	}

	trail, err := h.recentPoints(ctx, view.ID)
	if err != nil {
		return Tracking{}, err
	}

	tracking := Tracking{
		AssignmentID: view.ID,
		OrderID:      view.OrderID,
		Status:       view.Status,
		Trail:        trail,
	}
	if len(trail) == 0 {
		return tracking, nil
	}

	latest := trail[0]
	tracking.LatestPoint = &latest

	target := view.AddressLocation
	if target == nil {
		target = view.VendorLocation
	}
	if target != nil {
		eta := assignment.EstimateETAMinutes(latest.Location, *target)
		tracking.ETAMinutes = &eta
	}
	return tracking, nil
}

func (h GetTrackingQueryHandler) recentPoints(
	ctx context.Context,
	assignmentID kernel.UUID,
) ([]assignment.TrackingPoint, error) {
	points := make([]assignment.TrackingPoint, 0, assignment.TrailLength)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			lat::float8,
			lng::float8,
			captured_at
		FROM tracking_points
		WHERE assignment_id = ?
		ORDER BY captured_at DESC, id
		LIMIT ?
	`, assignmentID.Bytes(), assignment.TrailLength).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id         uuid.UUID
			lat, lng   float64
			capturedAt time.Time
		)
		if err = rows.Scan(&id, &lat, &lng, &capturedAt); err != nil {
			return nil, err
		}

		location, locErr := kernel.NewGeoPoint(lat, lng)
		if locErr != nil {
			return nil, locErr
		}
		points = append(points, assignment.TrackingPoint{
			ID:           kernel.FromGoogle(id),
			AssignmentID: assignmentID,
			Location:     location,
			CapturedAt:   capturedAt.UTC(),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}
