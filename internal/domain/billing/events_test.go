package billing

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusChangedEvent(t *testing.T) {
	e := NewStatusChangedEvent(5, InvoiceStatusPending, InvoiceStatusPaid)

	assert.Equal(t, EventTypeStatusChanged, e.EventType())
	assert.Equal(t, int64(5), e.ResourceID())
	assert.Equal(t, ResourceTypeInvoice, e.ResourceType())
	assert.Equal(t, "Invoice '5' had a status change. was: PENDING, now: PAID", e.String())
}

func TestBusinessErrorEvent_Message(t *testing.T) {
	declined := NewDeclinedEvent(1, DeclineReason(9))
	assert.Equal(t, "Invoice charge declined due lack of account balance of customer '9'", declined.Message())

	caused := NewBusinessErrorEvent(1, &CustomerNotFoundError{CustomerID: 9})
	assert.Equal(t, "customer '9' was not found", caused.Message())
}

func TestBusinessErrorEvent_MarshalJSON(t *testing.T) {
	e := NewBusinessErrorEvent(3, errors.New("no such customer"))

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "no such customer", decoded["cause"])
	assert.Equal(t, "BusinessError", decoded["type"])
	assert.Equal(t, float64(3), decoded["resource_id"])
	assert.NotContains(t, decoded, "reason")
}

func TestApplicationErrorEvent_MarshalJSON(t *testing.T) {
	e := NewApplicationErrorEvent(4, &NetworkError{})

	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"cause":"a network error happened please try again"`)
	assert.Contains(t, string(data), `"resource_type":"Invoice"`)
}
