package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/antaeus/billing/internal/domain/billing"
	"github.com/antaeus/billing/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testHandler records the events it receives
type testHandler struct {
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
	panicWith  any
	mu         sync.Mutex
}

func newTestHandler(eventTypes ...string) *testHandler {
	return &testHandler{eventTypes: eventTypes}
}

func (h *testHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	if h.panicWith != nil {
		panic(h.panicWith)
	}
	return h.err
}

func (h *testHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *testHandler) getHandled() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.handled...)
}

func paidEvent(invoiceID int64) *billing.StatusChangedEvent {
	return billing.NewStatusChangedEvent(invoiceID, billing.InvoiceStatusPending, billing.InvoiceStatusPaid)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := newTestHandler(billing.EventTypeStatusChanged)
	bus.Subscribe(handler)

	event := paidEvent(1)
	require.NoError(t, bus.Publish(context.Background(), event))

	require.Len(t, handler.getHandled(), 1)
	assert.Equal(t, event, handler.getHandled()[0])
}

func TestInMemoryEventBus_Publish_FiltersByType(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	statusHandler := newTestHandler()
	failureHandler := newTestHandler()
	bus.Subscribe(statusHandler, billing.EventTypeStatusChanged)
	bus.Subscribe(failureHandler, billing.EventTypeBusinessError, billing.EventTypeApplicationError)

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx,
		paidEvent(1),
		billing.NewDeclinedEvent(2, billing.DeclineReason(9)),
		billing.NewApplicationErrorEvent(3, &billing.NetworkError{}),
	))

	assert.Len(t, statusHandler.getHandled(), 1)
	assert.Len(t, failureHandler.getHandled(), 2)
}

func TestInMemoryEventBus_Publish_WildcardHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	wildcard := newTestHandler() // No event types = wildcard
	bus.Subscribe(wildcard)

	require.NoError(t, bus.Publish(context.Background(), paidEvent(1), billing.NewDeclinedEvent(1, "no funds")))
	assert.Len(t, wildcard.getHandled(), 2)
}

func TestInMemoryEventBus_Publish_HandlerError(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	failing := newTestHandler()
	failing.err = errors.New("sink unavailable")
	healthy := newTestHandler()
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), paidEvent(1))

	// The error is reported but delivery continues to the other handlers
	assert.ErrorIs(t, err, failing.err)
	assert.Len(t, failing.getHandled(), 1)
	assert.Len(t, healthy.getHandled(), 1)
}

func TestInMemoryEventBus_Publish_HandlerPanic(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	panicking := newTestHandler()
	panicking.panicWith = "boom"
	healthy := newTestHandler()
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), paidEvent(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Len(t, healthy.getHandled(), 1)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := newTestHandler()
	bus.Subscribe(handler)
	_ = bus.Publish(context.Background(), paidEvent(1))
	assert.Len(t, handler.getHandled(), 1)

	bus.Unsubscribe(handler)
	_ = bus.Publish(context.Background(), paidEvent(2))
	assert.Len(t, handler.getHandled(), 1) // Still 1, not 2
}

func TestInMemoryEventBus_StartStop(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	ctx := context.Background()

	require.NoError(t, bus.Start(ctx))

	handler := newTestHandler()
	bus.Subscribe(handler)
	require.NoError(t, bus.Publish(ctx, paidEvent(1)))

	require.NoError(t, bus.Stop(ctx))
	assert.ErrorIs(t, bus.Publish(ctx, paidEvent(2)), ErrBusStopped)
	assert.Len(t, handler.getHandled(), 1)
}
