// Package paymentrepo persists payment records of orders.
package paymentrepo

import (
	"encoding/json"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentDTO is the database row of a payment.
type PaymentDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID       `gorm:"type:uuid;index"`
	Method          string
	Amount          decimal.Decimal `gorm:"type:numeric(10,2)"`
	Status          string
	ProviderPayload *string `gorm:"type:jsonb"`
	PaidAt          *time.Time
}

// TableName maps PaymentDTO to the "payments" table.
func (PaymentDTO) TableName() string {
	return "payments"
}

// fromDomain converts a payment to its row.
func fromDomain(p *payment.Payment) PaymentDTO {
	var payload *string
	if raw := p.ProviderPayload(); len(raw) > 0 {
		s := string(raw)
		payload = &s
	}
	return PaymentDTO{
		ID:              p.ID().Bytes(),
		OrderID:         p.OrderID().Bytes(),
		Method:          string(p.Method()),
		Amount:          p.Amount(),
		Status:          string(p.Status()),
		ProviderPayload: payload,
		PaidAt:          p.PaidAt(),
	}
}

// toDomain restores a payment from its row.
func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	var payload json.RawMessage
	if dto.ProviderPayload != nil {
		payload = json.RawMessage(*dto.ProviderPayload)
	}
	return payment.Restore(
		kernel.FromGoogle(dto.ID),
		kernel.FromGoogle(dto.OrderID),
		payment.Method(dto.Method),
		dto.Amount,
		payment.Status(dto.Status),
		payload,
		dto.PaidAt,
	)
}
