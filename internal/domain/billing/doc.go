// Package billing provides the domain model for charging customer invoices.
//
// This package implements the invoice billing bounded context, which is responsible for:
//   - The invoice state machine (PENDING, PAID, OVERDUE, UNCOLLECTIBLE)
//   - Classifying payment provider failures into business and application errors
//   - Raising the status-change and failure events that accompany every transition
//
// Key Types:
//   - Invoice: value describing one customer charge and its current status
//   - Customer: owner of invoices, settled in a single currency
//   - Event: closed set of notifications (StatusChanged, BusinessError, ApplicationError)
//
// Ports:
//   - InvoiceRepository, CustomerRepository: storage
//   - PaymentProvider: external charge execution
//   - Notifier: sink for billing events
package billing
