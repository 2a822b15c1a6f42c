package queries

import (
	"context"
	"math"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListOpenOrdersQueryHandler serves the driver marketplace feed.
type ListOpenOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOpenOrdersQueryHandler creates a handler reading from db.
func NewListOpenOrdersQueryHandler(db *gorm.DB) ListOpenOrdersQueryHandler {
	return ListOpenOrdersQueryHandler{db: db}
}

// Handle returns open orders, oldest first.
func (h ListOpenOrdersQueryHandler) Handle(ctx context.Context, query ListOpenOrdersQuery) ([]OpenOrder, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := query.Actor().CanBid(); err != nil {
		return nil, err
	}

	orders := make([]OpenOrder, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			v.id,
			v.name,
			a.formatted_address,
			o.total,
			v.lat::float8,
			v.lng::float8,
			a.lat::float8,
			a.lng::float8
		FROM orders o
		JOIN vendors v ON v.id = o.vendor_id
		LEFT JOIN addresses a ON a.id = o.address_id
		WHERE o.status = ?
			AND NOT EXISTS (SELECT 1 FROM assignments s WHERE s.order_id = o.id)
		ORDER BY o.placed_at, o.id
	`, string(order.ReadyForDelivery)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, vendorID           uuid.UUID
			vendorName             string
			address                *string
			total                  decimal.Decimal
			vendorLat, vendorLng   *float64
			addressLat, addressLng *float64
		)
		if err = rows.Scan(
			&id,
			&vendorID,
			&vendorName,
			&address,
			&total,
			&vendorLat,
			&vendorLng,
			&addressLat,
			&addressLng,
		); err != nil {
			return nil, err
		}

		openOrder := OpenOrder{
			ID:         kernel.FromGoogle(id),
			VendorID:   kernel.FromGoogle(vendorID),
			VendorName: vendorName,
			Address:    address,
			Total:      total,
		}
		if openOrder.Pickup, err = kernel.NewGeoPointPtr(vendorLat, vendorLng); err != nil {
			return nil, err
		}
		if openOrder.Destination, err = kernel.NewGeoPointPtr(addressLat, addressLng); err != nil {
			return nil, err
		}
		if openOrder.Pickup != nil && openOrder.Destination != nil {
			km := math.Round(openOrder.Pickup.DistanceKm(*openOrder.Destination)*100) / 100
			openOrder.DistanceKm = &km
		}
		orders = append(orders, openOrder)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
