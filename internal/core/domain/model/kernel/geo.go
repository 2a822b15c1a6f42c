package kernel

import (
	"errors"
	"fmt"
	"math"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	// EarthRadiusKm is the mean Earth radius used by HaversineKm.
	EarthRadiusKm = 6371.0

	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// ErrGeoPointIsNotConstructed is returned by Validate on a zero-value GeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError("geo point must be created via NewGeoPoint")

// GeoPoint is a WGS84 coordinate with latitude in [-90, 90] and longitude in [-180, 180].
//
// GeoPoint is used for vendor and address positions, tracking points reported by
// drivers and the location sent with a delivery verification. Distances between
// points are great-circle distances computed with HaversineKm.
//
// Example:
//
//	dropoff, err := kernel.NewGeoPoint(40.7128, -74.0060)
//	if err != nil {
//	    return err
//	}
//	driver, _ := kernel.NewGeoPoint(40.7130, -74.0055)
//	if driver.DistanceKm(dropoff) <= verification.DropoffRadiusKm {
//	    // close enough to hand over
//	}
type GeoPoint struct {
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a validated coordinate.
//
// Parameters:
//   - lat: latitude in degrees, between MinLatitude and MaxLatitude
//   - lng: longitude in degrees, between MinLongitude and MaxLongitude
//
// Returns:
//   - GeoPoint: the coordinate if both values are in range
//   - error: ValueIsOutOfRangeError for "lat" and/or "lng", joined
func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	if err := errors.Join(validateLatitude(lat), validateLongitude(lng)); err != nil {
		return GeoPoint{}, err
	}
	return GeoPoint{lat: lat, lng: lng, guard: guard.NewConstructorGuard()}, nil
}

// NewGeoPointPtr builds a point from nullable columns; nil when either side is missing.
func NewGeoPointPtr(lat, lng *float64) (*GeoPoint, error) {
	if lat == nil || lng == nil {
		return nil, nil //nolint:nilnil // absent coordinates are a valid state
	}
	p, err := NewGeoPoint(*lat, *lng)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate ensures the point was created through NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lng returns the longitude in degrees.
func (p GeoPoint) Lng() float64 {
	return p.lng
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.7f,%.7f)", p.lat, p.lng)
}

// DistanceKm is the great-circle distance to other.
func (p GeoPoint) DistanceKm(other GeoPoint) float64 {
	return HaversineKm(p.lat, p.lng, other.lat, other.lng)
}

// HaversineKm returns the great-circle distance in kilometres between two coordinates.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const degToRad = math.Pi / 180
	dLat := (lat2 - lat1) * degToRad
	dLng := (lng2 - lng1) * degToRad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

func validateLatitude(lat float64) error {
	if math.IsNaN(lat) || lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("lat", lat, MinLatitude, MaxLatitude)
	}
	return nil
}

func validateLongitude(lng float64) error {
	if math.IsNaN(lng) || lng < MinLongitude || lng > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("lng", lng, MinLongitude, MaxLongitude)
	}
	return nil
}
