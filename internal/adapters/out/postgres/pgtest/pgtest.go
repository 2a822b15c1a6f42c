// Package pgtest starts a disposable PostgreSQL with the production schema for
// integration tests.
package pgtest

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/adapters/out/postgres/migrations"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/pricing"

	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Tables lists every table of the schema in truncation order.
var Tables = []string{
	"notification_outbox",
	"payments",
	"verifications",
	"tracking_points",
	"assignments",
	"bids",
	"order_status_events",
	"order_items",
	"orders",
	"cart_items",
	"carts",
	"addresses",
	"products",
	"vendors",
}

// Database is a migrated Postgres container shared by a test package.
type Database struct {
	Container *postgres.PostgresContainer
	DB        *gorm.DB
	URL       string
}

// Start runs a postgres container and applies all migrations.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	if err = migrations.Up(url); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, err := gorm.Open(gorm_postgres.Open(url), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Database{Container: container, DB: db, URL: url}, nil
}

// Truncate empties every table.
func (d *Database) Truncate() error {
	sql := "TRUNCATE TABLE "
	for i, t := range Tables {
		if i > 0 {
			sql += ", "
		}
		sql += t
	}
	return d.DB.Exec(sql + " CASCADE").Error
}

// Terminate closes the pool and stops the container.
func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}

// Vendor seeds a vendor. fee and coordinates may be nil.
func (d *Database) Vendor(id, ownerID kernel.UUID, fee *decimal.Decimal, lat, lng *float64) error {
	return d.DB.Exec(
		`INSERT INTO vendors (id, owner_id, name, base_delivery_fee, lat, lng) VALUES (?, ?, ?, ?, ?, ?)`,
		id.Bytes(), ownerID.Bytes(), "Vendor "+id.String()[:8], fee, lat, lng,
	).Error
}

// Product seeds an active product.
func (d *Database) Product(id, vendorID kernel.UUID, name string, price decimal.Decimal, feeOverride *decimal.Decimal) error {
	return d.DB.Exec(
		`INSERT INTO products (id, vendor_id, name, price, delivery_fee_override) VALUES (?, ?, ?, ?, ?)`,
		id.Bytes(), vendorID.Bytes(), name, price, feeOverride,
	).Error
}

// Address seeds an address. userID and coordinates may be nil.
func (d *Database) Address(id kernel.UUID, userID *kernel.UUID, lat, lng *float64) error {
	return d.DB.Exec(
		`INSERT INTO addresses (id, user_id, formatted_address, lat, lng) VALUES (?, ?, ?, ?, ?)`,
		id.Bytes(), kernel.BytesPtr(userID), "1 Test Street", lat, lng,
	).Error
}

// Catalog is a seeded vendor with one product and one customer address.
type Catalog struct {
	OwnerID    kernel.UUID
	VendorID   kernel.UUID
	ProductID  kernel.UUID
	CustomerID kernel.UUID
	AddressID  kernel.UUID

	VendorLocation  kernel.GeoPoint
	AddressLocation kernel.GeoPoint
}

// SeedCatalog inserts a vendor in central Berlin with a 2.50 base fee, a 10.00
// product and a customer address about 1.3 km away.
func (d *Database) SeedCatalog() (Catalog, error) {
	c := Catalog{
		OwnerID:    kernel.NewUUID(),
		VendorID:   kernel.NewUUID(),
		ProductID:  kernel.NewUUID(),
		CustomerID: kernel.NewUUID(),
		AddressID:  kernel.NewUUID(),
	}

	vendorLat, vendorLng := 52.5200, 13.4050
	addrLat, addrLng := 52.5300, 13.4170
	var err error
	if c.VendorLocation, err = kernel.NewGeoPoint(vendorLat, vendorLng); err != nil {
		return Catalog{}, err
	}
	if c.AddressLocation, err = kernel.NewGeoPoint(addrLat, addrLng); err != nil {
		return Catalog{}, err
	}

	fee := decimal.RequireFromString("2.50")
	if err = d.Vendor(c.VendorID, c.OwnerID, &fee, &vendorLat, &vendorLng); err != nil {
		return Catalog{}, err
	}
	if err = d.Product(c.ProductID, c.VendorID, "Falafel wrap", decimal.RequireFromString("10.00"), nil); err != nil {
		return Catalog{}, err
	}
	if err = d.Address(c.AddressID, &c.CustomerID, &addrLat, &addrLng); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Order builds a delivery order for the seeded catalog in the given status
// with one line of two products. It is not persisted.
func (c Catalog) Order(status order.Status, placedAt time.Time) (*order.Order, error) {
	productID := c.ProductID
	addressID := c.AddressID
	price := decimal.RequireFromString("10.00")
	fee := decimal.RequireFromString("2.50")

	return order.Restore(
		kernel.NewUUID(),
		c.CustomerID,
		c.VendorID,
		&addressID,
		kernel.FulfillmentDelivery,
		status,
		pricing.Compute(kernel.FulfillmentDelivery, []pricing.Line{{Quantity: 2, UnitPrice: price, DeliveryFee: fee}}),
		[]order.Item{{
			ID:          kernel.NewUUID(),
			ProductID:   &productID,
			Name:        "Falafel wrap",
			Quantity:    2,
			UnitPrice:   price,
			DeliveryFee: fee,
		}},
		placedAt,
		nil,
	)
}
