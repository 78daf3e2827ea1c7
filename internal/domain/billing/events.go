package billing

import (
	"encoding/json"
	"fmt"

	"github.com/antaeus/billing/internal/domain/shared"
)

// ResourceTypeInvoice is the resource type carried by invoice events
const ResourceTypeInvoice = "Invoice"

// Event type names
const (
	EventTypeStatusChanged    = "StatusChanged"
	EventTypeBusinessError    = "BusinessError"
	EventTypeApplicationError = "ApplicationError"
)

// Event is the closed set of notifications raised by the billing domain.
// Only StatusChangedEvent, BusinessErrorEvent and ApplicationErrorEvent implement it.
type Event interface {
	shared.DomainEvent
	ResourceID() int64
	ResourceType() string
	billingEvent()
}

// StatusChangedEvent is raised when an invoice moves to a new status
type StatusChangedEvent struct {
	shared.BaseDomainEvent
	OldStatus InvoiceStatus `json:"old_status"`
	NewStatus InvoiceStatus `json:"new_status"`
}

// NewStatusChangedEvent creates a StatusChangedEvent for an invoice
func NewStatusChangedEvent(invoiceID int64, oldStatus, newStatus InvoiceStatus) *StatusChangedEvent {
	return &StatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStatusChanged, ResourceTypeInvoice, invoiceID),
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

func (e *StatusChangedEvent) ResourceID() int64    { return e.AggID }
func (e *StatusChangedEvent) ResourceType() string { return e.AggType }
func (e *StatusChangedEvent) billingEvent()        {}

func (e *StatusChangedEvent) String() string {
	return fmt.Sprintf("%s '%d' had a status change. was: %s, now: %s", e.AggType, e.AggID, e.OldStatus, e.NewStatus)
}

// BusinessErrorEvent is raised for domain-expected failures such as a declined
// charge or an uncollectible invoice. At least one of Reason or Cause is set.
type BusinessErrorEvent struct {
	shared.BaseDomainEvent
	Reason string `json:"reason,omitempty"`
	Cause  error  `json:"-"`
}

// NewDeclinedEvent creates a BusinessErrorEvent carrying a reason
func NewDeclinedEvent(invoiceID int64, reason string) *BusinessErrorEvent {
	return &BusinessErrorEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBusinessError, ResourceTypeInvoice, invoiceID),
		Reason:          reason,
	}
}

// NewBusinessErrorEvent creates a BusinessErrorEvent carrying a cause
func NewBusinessErrorEvent(invoiceID int64, cause error) *BusinessErrorEvent {
	return &BusinessErrorEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBusinessError, ResourceTypeInvoice, invoiceID),
		Cause:           cause,
	}
}

func (e *BusinessErrorEvent) ResourceID() int64    { return e.AggID }
func (e *BusinessErrorEvent) ResourceType() string { return e.AggType }
func (e *BusinessErrorEvent) billingEvent()        {}

// Message returns the reason, falling back to the cause's message
func (e *BusinessErrorEvent) Message() string {
	if e.Reason != "" {
		return e.Reason
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return ""
}

// MarshalJSON implements json.Marshaler, rendering Cause as its message
func (e *BusinessErrorEvent) MarshalJSON() ([]byte, error) {
	type alias BusinessErrorEvent
	return json.Marshal(struct {
		*alias
		Cause string `json:"cause,omitempty"`
	}{
		alias: (*alias)(e),
		Cause: errorMessage(e.Cause),
	})
}

// ApplicationErrorEvent is raised for transient infrastructure failures.
// The invoice status is left unchanged.
type ApplicationErrorEvent struct {
	shared.BaseDomainEvent
	Cause error `json:"-"`
}

// NewApplicationErrorEvent creates an ApplicationErrorEvent
func NewApplicationErrorEvent(invoiceID int64, cause error) *ApplicationErrorEvent {
	return &ApplicationErrorEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeApplicationError, ResourceTypeInvoice, invoiceID),
		Cause:           cause,
	}
}

func (e *ApplicationErrorEvent) ResourceID() int64    { return e.AggID }
func (e *ApplicationErrorEvent) ResourceType() string { return e.AggType }
func (e *ApplicationErrorEvent) billingEvent()        {}

// Message returns the cause's message
func (e *ApplicationErrorEvent) Message() string {
	return errorMessage(e.Cause)
}

// MarshalJSON implements json.Marshaler, rendering Cause as its message
func (e *ApplicationErrorEvent) MarshalJSON() ([]byte, error) {
	type alias ApplicationErrorEvent
	return json.Marshal(struct {
		*alias
		Cause string `json:"cause,omitempty"`
	}{
		alias: (*alias)(e),
		Cause: errorMessage(e.Cause),
	})
}

func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
