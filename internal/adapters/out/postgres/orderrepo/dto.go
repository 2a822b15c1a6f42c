// Package orderrepo persists order aggregates: the order row, its frozen items
// and the append-only status trail.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for order aggregates.
// Money columns are frozen at placement and never updated.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;index"`
	VendorID        uuid.UUID       `gorm:"type:uuid;index"`
	AddressID       *uuid.UUID      `gorm:"type:uuid"`
	FulfillmentType string          `gorm:"column:fulfillment_type"`
	Status          string          `gorm:"index"`
	Subtotal        decimal.Decimal `gorm:"type:numeric(10,2)"`
	DeliveryFee     decimal.Decimal `gorm:"type:numeric(10,2)"`
	ServiceFee      decimal.Decimal `gorm:"type:numeric(10,2)"`
	Tax             decimal.Decimal `gorm:"type:numeric(10,2)"`
	Discount        decimal.Decimal `gorm:"type:numeric(10,2)"`
	Total           decimal.Decimal `gorm:"type:numeric(10,2)"`
	PlacedAt        time.Time
	LockedAt        *time.Time
	Items           []OrderItemDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName maps OrderDTO to the "orders" table.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one frozen order line. Position keeps cart order.
type OrderItemDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID  `gorm:"type:uuid;index"`
	ProductID   *uuid.UUID `gorm:"type:uuid"`
	Position    int
	Name        string
	Quantity    int
	UnitPrice   decimal.Decimal `gorm:"type:numeric(10,2)"`
	DeliveryFee decimal.Decimal `gorm:"type:numeric(10,2)"`
}

// TableName maps OrderItemDTO to the "order_items" table.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// StatusEventDTO is one row of the status audit trail.
type StatusEventDTO struct {
	ID        int64      `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID  `gorm:"type:uuid;index"`
	Status    string
	CausedBy  *uuid.UUID `gorm:"type:uuid"`
	Note      string
	CreatedAt time.Time
}

// TableName maps StatusEventDTO to the "order_status_events" table.
func (StatusEventDTO) TableName() string {
	return "order_status_events"
}

// fromDomain converts an order and its items to rows. Events are written separately.
func fromDomain(o *order.Order) OrderDTO {
	totals := o.Totals()
	dto := OrderDTO{
		ID:              o.ID().Bytes(),
		CustomerID:      o.CustomerID().Bytes(),
		VendorID:        o.VendorID().Bytes(),
		AddressID:       kernel.BytesPtr(o.AddressID()),
		FulfillmentType: o.Fulfillment().String(),
		Status:          o.Status().String(),
		Subtotal:        totals.Subtotal,
		DeliveryFee:     totals.DeliveryFee,
		ServiceFee:      totals.ServiceFee,
		Tax:             totals.Tax,
		Discount:        totals.Discount,
		Total:           totals.Total,
		PlacedAt:        o.PlacedAt(),
		LockedAt:        o.LockedAt(),
	}

	dto.Items = make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:          item.ID.Bytes(),
			OrderID:     dto.ID,
			ProductID:   kernel.BytesPtr(item.ProductID),
			Position:    i,
			Name:        item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			DeliveryFee: item.DeliveryFee,
		})
	}
	return dto
}

// eventsFromDomain converts pulled status events to rows of orderID.
func eventsFromDomain(orderID kernel.UUID, events []order.StatusEvent) []StatusEventDTO {
	dtos := make([]StatusEventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, StatusEventDTO{
			OrderID:   orderID.Bytes(),
			Status:    e.Status.String(),
			CausedBy:  kernel.BytesPtr(e.CausedBy),
			Note:      e.Note,
			CreatedAt: e.At,
		})
	}
	return dtos
}

// toDomain restores an order with its items.
func toDomain(dto OrderDTO) (*order.Order, error) {
	items := make([]order.Item, 0, len(dto.Items))
	for _, it := range dto.Items {
		items = append(items, order.Item{
			ID:          kernel.FromGoogle(it.ID),
			ProductID:   kernel.FromGooglePtr(it.ProductID),
			Name:        it.Name,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			DeliveryFee: it.DeliveryFee,
		})
	}

	return order.Restore(
		kernel.FromGoogle(dto.ID),
		kernel.FromGoogle(dto.CustomerID),
		kernel.FromGoogle(dto.VendorID),
		kernel.FromGooglePtr(dto.AddressID),
		kernel.FulfillmentType(dto.FulfillmentType),
		order.Status(dto.Status),
		pricing.Breakdown{
			Subtotal:    dto.Subtotal,
			DeliveryFee: dto.DeliveryFee,
			ServiceFee:  dto.ServiceFee,
			Tax:         dto.Tax,
			Discount:    dto.Discount,
			Total:       dto.Total,
		},
		items,
		dto.PlacedAt,
		dto.LockedAt,
	)
}
