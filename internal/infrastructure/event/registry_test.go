package event

import (
	"testing"

	"github.com/antaeus/billing/internal/domain/billing"
	"github.com/stretchr/testify/assert"
)

func TestHandlerRegistry_Register_SpecificTypes(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newTestHandler()

	registry.Register(handler, billing.EventTypeStatusChanged, billing.EventTypeBusinessError)

	assert.Equal(t, []any{handler}, toAny(registry.GetHandlers(billing.EventTypeStatusChanged)))
	assert.Len(t, registry.GetHandlers(billing.EventTypeBusinessError), 1)
	assert.Empty(t, registry.GetHandlers(billing.EventTypeApplicationError))
	assert.Equal(t, 1, registry.Len())
}

func TestHandlerRegistry_GetHandlers_WildcardLast(t *testing.T) {
	registry := NewHandlerRegistry()
	wildcard := newTestHandler()
	specific := newTestHandler()

	registry.Register(wildcard)
	registry.Register(specific, billing.EventTypeStatusChanged)

	handlers := registry.GetHandlers(billing.EventTypeStatusChanged)
	assert.Len(t, handlers, 2)
	assert.Same(t, specific, handlers[0])
	assert.Same(t, wildcard, handlers[1])

	assert.Len(t, registry.GetHandlers("Other"), 1)
}

func TestHandlerRegistry_Unregister(t *testing.T) {
	registry := NewHandlerRegistry()
	h1 := newTestHandler()
	h2 := newTestHandler()

	registry.Register(h1, billing.EventTypeStatusChanged, billing.EventTypeBusinessError)
	registry.Register(h2, billing.EventTypeStatusChanged)
	registry.Register(h1)

	registry.Unregister(h1)

	handlers := registry.GetHandlers(billing.EventTypeStatusChanged)
	assert.Len(t, handlers, 1)
	assert.Same(t, h2, handlers[0])
	assert.Empty(t, registry.GetHandlers(billing.EventTypeBusinessError))
	assert.Equal(t, 1, registry.Len())
}

func toAny[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
