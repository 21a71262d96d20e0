package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const sourceService = "reservations"

// KafkaPublisher writes reservation events to a single topic, keyed by
// suite id so all events for one suite stay ordered on one partition.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Compression:  kafka.Snappy,
		BatchTimeout: 10 * time.Millisecond,
	}

	return &KafkaPublisher{writer: writer}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, event ReservationEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode reservation event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.SuiteID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: HeaderEventID, Value: []byte(uuid.New().String())},
			{Key: HeaderEventType, Value: []byte(event.Type)},
			{Key: HeaderSource, Value: []byte(sourceService)},
			{Key: HeaderTimestamp, Value: []byte(event.OccurredAt.Format(time.RFC3339))},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
