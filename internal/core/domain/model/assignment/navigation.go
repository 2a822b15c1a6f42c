package assignment

import (
	"fmt"
	"net/url"
	"strconv"

	"marketplace/internal/core/domain/model/kernel"
)

// DefaultDropoffLabel labels a dropoff whose address has no formatted text.
const DefaultDropoffLabel = "Dropoff"

// NavigationURL builds a driving-directions link to p.
//
// Parameters:
//   - p: the destination coordinate
//   - label: shown as the destination query, URL-escaped
//
// Example:
//
//	u := assignment.NavigationURL(dropoff, "221B Baker Street")
//	// https://www.google.com/maps/dir/?api=1&destination=51.5237,-0.1585&...&query=221B+Baker+Street
func NavigationURL(p kernel.GeoPoint, label string) string {
	return fmt.Sprintf(
		"https://www.google.com/maps/dir/?api=1&destination=%s,%s&destination_place_id=&travelmode=driving&query=%s",
		formatCoordinate(p.Lat()), formatCoordinate(p.Lng()), url.QueryEscape(label),
	)
}

// NavigationURLPtr returns nil when p is nil.
func NavigationURLPtr(p *kernel.GeoPoint, label string) *string {
	if p == nil {
		return nil
	}
	u := NavigationURL(*p, label)
	return &u
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
