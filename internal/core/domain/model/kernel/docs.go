// Package kernel provides the shared value objects of the marketplace domain.
//
// The package includes:
//   - UUID: identifier value object wrapping google/uuid with validation
//   - GeoPoint: a latitude/longitude pair with haversine distance
//   - FulfillmentType: pickup or delivery, shared by carts, pricing and orders
//
// Values are immutable and validated at construction.
package kernel
