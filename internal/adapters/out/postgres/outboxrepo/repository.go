package outboxrepo

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Enqueue inserts the intents as pending rows.
func (r *GormOutboxRepository) Enqueue(ctx context.Context, intents ...notification.Intent) error {
	if len(intents) == 0 {
		return nil
	}

	dtos := make([]OutboxDTO, 0, len(intents))
	for _, intent := range intents {
		dto, err := fromDomain(intent)
		if err != nil {
			return err
		}
		dtos = append(dtos, dto)
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// ClaimBatch selects pending rows FOR UPDATE SKIP LOCKED so concurrent
// dispatchers never claim the same intent.
func (r *GormOutboxRepository) ClaimBatch(ctx context.Context, limit int) ([]notification.Intent, error) {
	var dtos []OutboxDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ?", StatusPending).
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	intents := make([]notification.Intent, 0, len(dtos))
	for _, dto := range dtos {
		intent, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		intents = append(intents, intent)
	}
	return intents, nil
}

// MarkDispatched moves the row to dispatched.
func (r *GormOutboxRepository) MarkDispatched(ctx context.Context, id kernel.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&OutboxDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"status":        StatusDispatched,
			"attempts":      gorm.Expr("attempts + 1"),
			"dispatched_at": at,
			"updated_at":    at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkFailed counts the attempt and keeps cause. The row fails once maxAttempts is reached.
func (r *GormOutboxRepository) MarkFailed(
	ctx context.Context,
	id kernel.UUID,
	cause string,
	maxAttempts int,
	at time.Time,
) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE notification_outbox
		SET attempts   = attempts + 1,
		    last_error = ?,
		    updated_at = ?,
		    status     = CASE WHEN attempts + 1 >= ? THEN ? ELSE ? END
		WHERE id = ?`,
		cause, at, maxAttempts, StatusFailed, StatusPending, id.Bytes(),
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
