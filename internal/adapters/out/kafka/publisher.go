// Package kafka publishes order lifecycle events to the order-changed
// topic. Events are keyed by order id so all changes of one order land in
// the same partition, in order.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"orderflow/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

const writeTimeout = 5 * time.Second

// orderChangedMessage is the wire format of one order-changed event.
type orderChangedMessage struct {
	OrderID    string    `json:"order_id"`
	UserID     string    `json:"user_id"`
	CourierID  string    `json:"courier_id"`
	Status     string    `json:"status"`
	Rating     *int      `json:"rating,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher implements ports.OrderEventPublisher on a kafka-go writer.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a publisher for the given broker and topic.
func NewPublisher(broker, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(broker),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			WriteTimeout: writeTimeout,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// PublishOrderChanged writes one event to the topic, keyed by order id.
func (p *Publisher) PublishOrderChanged(ctx context.Context, event ports.OrderChangedEvent) error {
	payload, err := json.Marshal(orderChangedMessage{
		OrderID:    event.OrderID.String(),
		UserID:     event.UserID.String(),
		CourierID:  event.CourierID.String(),
		Status:     event.Status.String(),
		Rating:     event.Rating,
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("kafka: encode event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("kafka: write event: %w", err)
	}

	return nil
}

// Close flushes buffered messages and releases the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
