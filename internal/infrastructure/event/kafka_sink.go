package event

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/antaeus/billing/internal/domain/shared"
	"github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of kafka.Writer the handler needs
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaHandler publishes every event as an envelope keyed by resource id,
// so events of one invoice stay ordered within a partition.
type KafkaHandler struct {
	writer     MessageWriter
	serializer *EventSerializer
}

// NewKafkaHandler creates a handler writing through writer
func NewKafkaHandler(writer MessageWriter, serializer *EventSerializer) *KafkaHandler {
	return &KafkaHandler{writer: writer, serializer: serializer}
}

// NewKafkaWriter creates a kafka.Writer for the topic
func NewKafkaWriter(brokers []string, topic string, batchTimeout time.Duration) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: batchTimeout,
		RequiredAcks: kafka.RequireOne,
	}
}

// Handle implements shared.EventHandler
func (h *KafkaHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	value, err := h.serializer.SerializeEnvelope(event)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", event.EventType(), err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.AggregateID(), 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType())},
			{Key: "resource_type", Value: []byte(event.AggregateType())},
		},
		Time: event.OccurredAt(),
	}
	if err := h.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

// EventTypes returns nil; the handler receives every event
func (h *KafkaHandler) EventTypes() []string { return nil }

// Close closes the underlying writer
func (h *KafkaHandler) Close() error {
	return h.writer.Close()
}
