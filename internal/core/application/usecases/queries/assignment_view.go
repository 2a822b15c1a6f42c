package queries

import (
	"context"
	"database/sql"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// assignmentView joins an assignment with its order and the order's endpoints.
type assignmentView struct {
	ID         kernel.UUID
	DriverID   kernel.UUID
	OrderID    kernel.UUID
	CustomerID kernel.UUID
	VendorID   kernel.UUID
	Status     order.Status

	VendorName      string
	VendorLocation  *kernel.GeoPoint
	Address         *string
	AddressLocation *kernel.GeoPoint
}

func loadAssignmentView(ctx context.Context, db *gorm.DB, assignmentID kernel.UUID) (assignmentView, error) {
	var (
		id, driverID, orderID  uuid.UUID
		customerID, vendorID   uuid.UUID
		status                 order.Status
		vendorName             string
		address                *string
		vendorLat, vendorLng   *float64
		addressLat, addressLng *float64
	)
	err := db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.driver_id,
			o.id,
			o.customer_id,
			o.vendor_id,
			o.status,
			v.name,
			a.formatted_address,
			v.lat::float8,
			v.lng::float8,
			a.lat::float8,
			a.lng::float8
		FROM assignments s
		JOIN orders o ON o.id = s.order_id
		JOIN vendors v ON v.id = o.vendor_id
		LEFT JOIN addresses a ON a.id = o.address_id
		WHERE s.id = ?
	`, assignmentID.Bytes()).
		Row().
		Scan(
			&id,
			&driverID,
			&orderID,
			&customerID,
			&vendorID,
			&status,
			&vendorName,
			&address,
			&vendorLat,
			&vendorLng,
			&addressLat,
			&addressLng,
		)
	if errors.Is(err, sql.ErrNoRows) {
		return assignmentView{}, errs.NewObjectNotFoundError("assignment", assignmentID)
	}
	if err != nil {
		return assignmentView{}, err
	}

	view := assignmentView{
		ID:         kernel.FromGoogle(id),
		DriverID:   kernel.FromGoogle(driverID),
		OrderID:    kernel.FromGoogle(orderID),
		CustomerID: kernel.FromGoogle(customerID),
		VendorID:   kernel.FromGoogle(vendorID),
		Status:     status,
		VendorName: vendorName,
		Address:    address,
	}
	if view.VendorLocation, err = kernel.NewGeoPointPtr(vendorLat, vendorLng); err != nil {
		return assignmentView{}, err
	}
	if view.AddressLocation, err = kernel.NewGeoPointPtr(addressLat, addressLng); err != nil {
		return assignmentView{}, err
	}
	return view, nil
}
