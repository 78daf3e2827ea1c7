package event

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/antaeus/billing/internal/domain/billing"
	"github.com/antaeus/billing/internal/domain/shared"
	"github.com/google/uuid"
)

// Envelope is the wire form of an event published to external sinks
type Envelope struct {
	EventID      uuid.UUID       `json:"event_id"`
	EventType    string          `json:"event_type"`
	OccurredAt   time.Time       `json:"occurred_at"`
	ResourceType string          `json:"resource_type"`
	ResourceID   int64           `json:"resource_id"`
	Payload      json.RawMessage `json:"payload"`
}

// EventSerializer encodes the registered domain event types for external sinks
type EventSerializer struct {
	mu       sync.RWMutex
	registry map[string]struct{}
}

// NewEventSerializer creates a new event serializer
func NewEventSerializer() *EventSerializer {
	return &EventSerializer{
		registry: make(map[string]struct{}),
	}
}

// NewBillingEventSerializer creates a serializer with every billing event type registered
func NewBillingEventSerializer() *EventSerializer {
	s := NewEventSerializer()
	s.Register(billing.EventTypeStatusChanged)
	s.Register(billing.EventTypeBusinessError)
	s.Register(billing.EventTypeApplicationError)
	return s
}

// Register allows eventType to leave the process.
// The eventType should match what EventType() returns on the event
func (s *EventSerializer) Register(eventType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry[eventType] = struct{}{}
}

// Serialize serializes a domain event to JSON bytes
func (s *EventSerializer) Serialize(event shared.DomainEvent) ([]byte, error) {
	return json.Marshal(event)
}

// SerializeEnvelope wraps the serialized event with its routing metadata.
// Unregistered event types are rejected.
func (s *EventSerializer) SerializeEnvelope(event shared.DomainEvent) ([]byte, error) {
	if !s.IsRegistered(event.EventType()) {
		return nil, fmt.Errorf("unregistered event type: %s", event.EventType())
	}
	payload, err := s.Serialize(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	return json.Marshal(Envelope{
		EventID:      event.EventID(),
		EventType:    event.EventType(),
		OccurredAt:   event.OccurredAt(),
		ResourceType: event.AggregateType(),
		ResourceID:   event.AggregateID(),
		Payload:      payload,
	})
}

// IsRegistered checks if an event type is registered
func (s *EventSerializer) IsRegistered(eventType string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.registry[eventType]
	return ok
}
