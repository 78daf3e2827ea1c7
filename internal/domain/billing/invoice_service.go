package billing

import (
	"context"
	"fmt"
)

// InvoiceDomainService owns invoice state transitions and the events that
// accompany them. It never persists; callers store the returned invoice.
type InvoiceDomainService struct {
	notifier Notifier
}

// NewInvoiceDomainService creates a new InvoiceDomainService
func NewInvoiceDomainService(notifier Notifier) *InvoiceDomainService {
	return &InvoiceDomainService{notifier: notifier}
}

// Pay marks the invoice PAID and raises a StatusChangedEvent
func (s *InvoiceDomainService) Pay(ctx context.Context, invoice Invoice) (Invoice, error) {
	paid, err := invoice.Pay()
	if err != nil {
		return invoice, err
	}
	s.notifier.Notify(ctx, NewStatusChangedEvent(invoice.ID, invoice.Status(), paid.Status()))
	return paid, nil
}

// Decline leaves the invoice unchanged and raises a BusinessErrorEvent naming the customer
func (s *InvoiceDomainService) Decline(ctx context.Context, invoice Invoice) Invoice {
	s.notifier.Notify(ctx, NewDeclinedEvent(invoice.ID, DeclineReason(invoice.CustomerID)))
	return invoice
}

// Uncollect marks the invoice UNCOLLECTIBLE. The BusinessErrorEvent carrying
// cause is raised before the StatusChangedEvent.
func (s *InvoiceDomainService) Uncollect(ctx context.Context, invoice Invoice, cause error) (Invoice, error) {
	uncollectible, err := invoice.Uncollect()
	if err != nil {
		return invoice, err
	}
	s.notifier.Notify(ctx, NewBusinessErrorEvent(invoice.ID, cause))
	s.notifier.Notify(ctx, NewStatusChangedEvent(invoice.ID, invoice.Status(), uncollectible.Status()))
	return uncollectible, nil
}

// Overdue marks a PENDING invoice OVERDUE and raises a StatusChangedEvent
func (s *InvoiceDomainService) Overdue(ctx context.Context, invoice Invoice) (Invoice, error) {
	overdue, err := invoice.MarkOverdue()
	if err != nil {
		return invoice, err
	}
	s.notifier.Notify(ctx, NewStatusChangedEvent(invoice.ID, invoice.Status(), overdue.Status()))
	return overdue, nil
}

// Fail raises an ApplicationErrorEvent for the invoice without changing its status
func (s *InvoiceDomainService) Fail(ctx context.Context, invoiceID int64, cause error) {
	s.notifier.Notify(ctx, NewApplicationErrorEvent(invoiceID, cause))
}

// DeclineReason is the BusinessErrorEvent reason for a declined charge
func DeclineReason(customerID int64) string {
	return fmt.Sprintf("Invoice charge declined due lack of account balance of customer '%d'", customerID)
}
