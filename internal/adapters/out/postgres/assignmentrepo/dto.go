// Package assignmentrepo persists driver assignments and their location trail.
package assignmentrepo

import (
	"time"

	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO is the database row of an assignment.
// order_id is unique, so an order is awarded at most once.
type AssignmentDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	DriverID    uuid.UUID `gorm:"type:uuid;index"`
	AcceptedAt  time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time
}

// TableName maps AssignmentDTO to the "assignments" table.
func (AssignmentDTO) TableName() string {
	return "assignments"
}

// TrackingPointDTO is one reported driver position.
type TrackingPointDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	AssignmentID uuid.UUID `gorm:"type:uuid;index"`
	Lat          float64   `gorm:"type:numeric(10,7)"`
	Lng          float64   `gorm:"type:numeric(10,7)"`
	CapturedAt   time.Time
}

// TableName maps TrackingPointDTO to the "tracking_points" table.
func (TrackingPointDTO) TableName() string {
	return "tracking_points"
}

// fromDomain converts an assignment to its row.
func fromDomain(a *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:          a.ID().Bytes(),
		OrderID:     a.OrderID().Bytes(),
		DriverID:    a.DriverID().Bytes(),
		AcceptedAt:  a.AcceptedAt(),
		PickedUpAt:  a.PickedUpAt(),
		DeliveredAt: a.DeliveredAt(),
	}
}

// toDomain restores an assignment from its row.
func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	return assignment.Restore(
		kernel.FromGoogle(dto.ID),
		kernel.FromGoogle(dto.OrderID),
		kernel.FromGoogle(dto.DriverID),
		dto.AcceptedAt,
		dto.PickedUpAt,
		dto.DeliveredAt,
	)
}

// pointFromDomain converts a tracking point to its row.
func pointFromDomain(p assignment.TrackingPoint) TrackingPointDTO {
	return TrackingPointDTO{
		ID:           p.ID.Bytes(),
		AssignmentID: p.AssignmentID.Bytes(),
		Lat:          p.Location.Lat(),
		Lng:          p.Location.Lng(),
		CapturedAt:   p.CapturedAt,
	}
}

// pointToDomain restores a tracking point, validating its coordinates.
func pointToDomain(dto TrackingPointDTO) (assignment.TrackingPoint, error) {
	loc, err := kernel.NewGeoPoint(dto.Lat, dto.Lng)
	if err != nil {
		return assignment.TrackingPoint{}, err
	}
	return assignment.TrackingPoint{
		ID:           kernel.FromGoogle(dto.ID),
		AssignmentID: kernel.FromGoogle(dto.AssignmentID),
		Location:     loc,
		CapturedAt:   dto.CapturedAt,
	}, nil
}
