package event

import (
	"context"
	"fmt"
	"strconv"

	"github.com/antaeus/billing/internal/domain/shared"
	"github.com/redis/go-redis/v9"
)

// StreamWriter is the subset of the go-redis client used to append to a stream
type StreamWriter interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisStreamHandler appends every event to a Redis stream
type RedisStreamHandler struct {
	client     StreamWriter
	serializer *EventSerializer
	stream     string
	maxLen     int64
}

// NewRedisStreamHandler creates a handler writing to stream.
// maxLen caps the stream approximately; zero leaves it unbounded.
func NewRedisStreamHandler(client StreamWriter, serializer *EventSerializer, stream string, maxLen int64) *RedisStreamHandler {
	return &RedisStreamHandler{
		client:     client,
		serializer: serializer,
		stream:     stream,
		maxLen:     maxLen,
	}
}

// Handle implements shared.EventHandler
func (h *RedisStreamHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	payload, err := h.serializer.Serialize(event)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", event.EventType(), err)
	}

	args := &redis.XAddArgs{
		Stream: h.stream,
		Values: map[string]any{
			"event_id":      event.EventID().String(),
			"event_type":    event.EventType(),
			"resource_type": event.AggregateType(),
			"resource_id":   strconv.FormatInt(event.AggregateID(), 10),
			"payload":       string(payload),
		},
	}
	if h.maxLen > 0 {
		args.MaxLen = h.maxLen
		args.Approx = true
	}

	if err := h.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("xadd %s: %w", h.stream, err)
	}
	return nil
}

// EventTypes returns nil; the handler receives every event
func (h *RedisStreamHandler) EventTypes() []string { return nil }

// NewRedisClient opens a Redis client and verifies the connection
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}
