// Package kafka publishes status-change notifications to a Kafka topic.
// Delivery is fire-and-forget from the engine's point of view: a publish
// failure is returned to the caller for logging but never fails the
// mutation that produced the event. Retry and consumption are the
// downstream consumer's responsibility.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"orderdesk/internal/core/ports"

	"github.com/IBM/sarama"
)

// statusChangedMessage is the wire shape of one notification.
type statusChangedMessage struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	OldStatus   string    `json:"old_status"`
	NewStatus   string    `json:"new_status"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Publisher sends StatusChangedEvents to a Kafka topic using a synchronous
// producer, keyed by order id so per-order ordering is preserved.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewPublisher connects a synchronous producer to the given brokers.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   logger.With("component", "kafka_publisher"),
	}, nil
}

// PublishStatusChanged sends one notification. Events are keyed by order id
// so all notifications for one order land in the same partition, in order.
func (p *Publisher) PublishStatusChanged(ctx context.Context, event ports.StatusChangedEvent) error {
	payload, err := json.Marshal(statusChangedMessage{
		OrderID:     event.OrderID.String(),
		OrderNumber: event.OrderNumber,
		OldStatus:   event.OldStatus.String(),
		NewStatus:   event.NewStatus.String(),
		OccurredAt:  event.OccurredAt,
	})
	if err != nil {
		return err
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.OrderID.String()),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "status change published",
		"order_id", event.OrderID.String(),
		"partition", partition,
		"offset", offset,
	)
	return nil
}

// Close shuts down the underlying producer.
func (p *Publisher) Close() error {
	return p.producer.Close()
}
