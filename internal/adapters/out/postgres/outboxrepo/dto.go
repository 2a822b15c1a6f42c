// Package outboxrepo is the transactional outbox of notification intents.
// Rows move from pending to dispatched, or to failed once the attempt budget
// is spent.
package outboxrepo

import (
	"encoding/json"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// Delivery states of an outbox row.
const (
	StatusPending    = "pending"
	StatusDispatched = "dispatched"
	StatusFailed     = "failed"
)

// OutboxDTO is one stored notification intent. Data holds the JSON payload.
type OutboxDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Recipient    uuid.UUID `gorm:"type:uuid"`
	Title        string
	Body         string
	Data         string `gorm:"type:jsonb"`
	Status       string
	Attempts     int
	LastError    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DispatchedAt *time.Time
}

// TableName maps OutboxDTO to the "notification_outbox" table.
func (OutboxDTO) TableName() string {
	return "notification_outbox"
}

// fromDomain converts an intent to a pending row.
func fromDomain(intent notification.Intent) (OutboxDTO, error) {
	data := intent.Data
	if data == nil {
		data = map[string]string{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return OutboxDTO{}, err
	}
	return OutboxDTO{
		ID:        intent.ID.Bytes(),
		Recipient: intent.Recipient.Bytes(),
		Title:     intent.Title,
		Body:      intent.Body,
		Data:      string(raw),
		Status:    StatusPending,
		CreatedAt: intent.CreatedAt,
		UpdatedAt: intent.CreatedAt,
	}, nil
}

// toDomain restores an intent from its row.
func toDomain(dto OutboxDTO) (notification.Intent, error) {
	data := map[string]string{}
	if dto.Data != "" {
		if err := json.Unmarshal([]byte(dto.Data), &data); err != nil {
			return notification.Intent{}, err
		}
	}
	return notification.Intent{
		ID:        kernel.FromGoogle(dto.ID),
		Recipient: kernel.FromGoogle(dto.Recipient),
		Title:     dto.Title,
		Body:      dto.Body,
		Data:      data,
		CreatedAt: dto.CreatedAt,
	}, nil
}
