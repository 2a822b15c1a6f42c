// Package kafka publishes notification intents to the topic read by the
// service that delivers them to users.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/notification"

	"github.com/IBM/sarama"
)

// NotificationMessage is the wire format of one notification.
type NotificationMessage struct {
	ID        string            `json:"id"`
	Recipient string            `json:"recipient"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data"`
	CreatedAt string            `json:"created_at"`
}

// NewSyncProducer connects a producer that waits for all in-sync replicas.
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return producer, nil
}

// NotificationProducer implements ports.Notifier on top of a SyncProducer.
// Messages are keyed by recipient so one recipient's notifications keep their order.
type NotificationProducer struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewNotificationProducer creates a notifier publishing to topic.
func NewNotificationProducer(producer sarama.SyncProducer, topic string, logger *slog.Logger) *NotificationProducer {
	return &NotificationProducer{
		producer: producer,
		topic:    topic,
		logger:   logger.With("component", "notification_producer"),
	}
}

// Notify publishes the intent and waits for the broker acknowledgement.
// A returned error leaves the intent in the outbox for a retry.
func (p *NotificationProducer) Notify(ctx context.Context, intent notification.Intent) error {
	payload, err := json.Marshal(toMessage(intent))
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(intent.Recipient.String()),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("notification_id"), Value: []byte(intent.ID.String())},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	p.logger.DebugContext(ctx, "Notification published",
		"notification_id", intent.ID.String(),
		"topic", p.topic,
		"partition", partition,
		"offset", offset,
	)
	return nil
}

// Close flushes and closes the underlying producer.
func (p *NotificationProducer) Close() error {
	return p.producer.Close()
}

// toMessage converts an intent to its wire format. Nil data becomes an empty object.
func toMessage(intent notification.Intent) NotificationMessage {
	data := intent.Data
	if data == nil {
		data = map[string]string{}
	}
	return NotificationMessage{
		ID:        intent.ID.String(),
		Recipient: intent.Recipient.String(),
		Title:     intent.Title,
		Body:      intent.Body,
		Data:      data,
		CreatedAt: intent.CreatedAt.UTC().Format(time.RFC3339),
	}
}
