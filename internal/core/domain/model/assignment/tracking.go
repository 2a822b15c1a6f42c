package assignment

import (
	"errors"
	"math"
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

const (
	// TrailLength is how many recent points tracking views return.
	TrailLength = 20

	// AverageSpeedKmh is the assumed driver speed for ETA estimates.
	AverageSpeedKmh = 30.0
)

// TrackingPoint is one recorded driver position.
// Points are append-only and belong to a single assignment.
type TrackingPoint struct {
	ID           kernel.UUID
	AssignmentID kernel.UUID
	Location     kernel.GeoPoint
	CapturedAt   time.Time
}

// NewTrackingPoint creates a point with a fresh identifier.
//
// Returns a validation error when the assignment id is missing or location was
// not built through kernel.NewGeoPoint.
func NewTrackingPoint(assignmentID kernel.UUID, location kernel.GeoPoint, capturedAt time.Time) (TrackingPoint, error) {
	if err := errors.Join(assignmentID.Validate(), location.Validate()); err != nil {
		return TrackingPoint{}, err
	}
	return TrackingPoint{
		ID:           kernel.NewUUID(),
		AssignmentID: assignmentID,
		Location:     location,
		CapturedAt:   capturedAt,
	}, nil
}

// EstimateETAMinutes returns whole minutes, rounded up, to cover the great-circle
// distance between from and to at AverageSpeedKmh.
func EstimateETAMinutes(from, to kernel.GeoPoint) int {
	hours := from.DistanceKm(to) / AverageSpeedKmh
	return int(math.Ceil(hours * 60))
}
