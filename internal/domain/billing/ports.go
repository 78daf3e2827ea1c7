package billing

import "context"

// PaymentProvider charges invoices against an external payment system.
//
// Charge returns true when the customer's account was debited and false when
// the charge was declined. Failures are reported as *CurrencyMismatchError,
// *CustomerNotFoundError or *NetworkError; any other error is unclassified.
type PaymentProvider interface {
	Charge(ctx context.Context, invoice Invoice) (bool, error)
}

// Notifier delivers billing events to observers.
// Delivery is fire-and-forget: implementations log their own failures.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}
