package shared

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewBaseDomainEvent(t *testing.T) {
	e := NewBaseDomainEvent("InvoiceStatusChanged", "Invoice", 42)

	assert.NotEqual(t, uuid.Nil, e.EventID())
	assert.Equal(t, "InvoiceStatusChanged", e.EventType())
	assert.Equal(t, int64(42), e.AggregateID())
	assert.Equal(t, "Invoice", e.AggregateType())
	assert.False(t, e.OccurredAt().IsZero())
}
