package billing

import (
	"errors"
	"fmt"

	"github.com/antaeus/billing/internal/domain/shared/valueobject"
)

var (
	ErrInvalidTransition    = errors.New("invoice: invalid status transition")
	ErrInvalidInvoiceStatus = errors.New("invoice: invalid status")
	ErrInvalidInvoiceAmount = errors.New("invoice: amount must be positive")
)

// InvoiceStatus represents the lifecycle status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending       InvoiceStatus = "PENDING"
	InvoiceStatusPaid          InvoiceStatus = "PAID"
	InvoiceStatusOverdue       InvoiceStatus = "OVERDUE"
	InvoiceStatusUncollectible InvoiceStatus = "UNCOLLECTIBLE"
)

// IsValid returns true if the status is a known invoice status
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusUncollectible:
		return true
	default:
		return false
	}
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsTerminal returns true if no transition leaves this status
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusUncollectible
}

// IsProcessable returns true if a charge may still be attempted
func (s InvoiceStatus) IsProcessable() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusOverdue
}

// ParseInvoiceStatus parses a status name
func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	status := InvoiceStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidInvoiceStatus, s)
	}
	return status, nil
}

// Invoice is a billable record for one customer charge attempt.
// It is a value: transitions return an updated copy and leave the receiver untouched.
type Invoice struct {
	ID         int64
	CustomerID int64
	Amount     valueobject.Money
	status     InvoiceStatus
}

// NewInvoice creates an invoice in the given status
func NewInvoice(id, customerID int64, amount valueobject.Money, status InvoiceStatus) (Invoice, error) {
	if !status.IsValid() {
		return Invoice{}, fmt.Errorf("%w: %q", ErrInvalidInvoiceStatus, status)
	}
	if !amount.IsPositive() {
		return Invoice{}, ErrInvalidInvoiceAmount
	}
	return Invoice{
		ID:         id,
		CustomerID: customerID,
		Amount:     amount,
		status:     status,
	}, nil
}

// Status returns the current status
func (i Invoice) Status() InvoiceStatus {
	return i.status
}

// Pay moves a processable invoice to PAID
func (i Invoice) Pay() (Invoice, error) {
	if !i.status.IsProcessable() {
		return i, i.transitionError(InvoiceStatusPaid)
	}
	return i.withStatus(InvoiceStatusPaid), nil
}

// Uncollect moves a processable invoice to UNCOLLECTIBLE
func (i Invoice) Uncollect() (Invoice, error) {
	if !i.status.IsProcessable() {
		return i, i.transitionError(InvoiceStatusUncollectible)
	}
	return i.withStatus(InvoiceStatusUncollectible), nil
}

// MarkOverdue moves a PENDING invoice to OVERDUE
func (i Invoice) MarkOverdue() (Invoice, error) {
	if i.status != InvoiceStatusPending {
		return i, i.transitionError(InvoiceStatusOverdue)
	}
	return i.withStatus(InvoiceStatusOverdue), nil
}

func (i Invoice) withStatus(status InvoiceStatus) Invoice {
	i.status = status
	return i
}

func (i Invoice) transitionError(to InvoiceStatus) error {
	return fmt.Errorf("%w: invoice %d from %s to %s", ErrInvalidTransition, i.ID, i.status, to)
}
