package billing

import (
	"errors"
	"fmt"

	"github.com/antaeus/billing/internal/domain/shared"
)

var (
	ErrInvoiceNotFound  = shared.NewDomainError("INVOICE_NOT_FOUND", "Invoice not found")
	ErrCustomerNotFound = shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found")
)

// CurrencyMismatchError is returned by a payment provider when the invoice
// currency differs from the customer's settlement currency
type CurrencyMismatchError struct {
	InvoiceID  int64
	CustomerID int64
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("currency of invoice '%d' does not match currency of customer '%d'", e.InvoiceID, e.CustomerID)
}

// CustomerNotFoundError is returned by a payment provider when the invoice's
// customer is unknown to it
type CustomerNotFoundError struct {
	CustomerID int64
}

func (e *CustomerNotFoundError) Error() string {
	return fmt.Sprintf("customer '%d' was not found", e.CustomerID)
}

// NetworkError is returned by a payment provider when the charge could not be
// attempted because of a transport failure
type NetworkError struct {
	Cause error
}

func (e *NetworkError) Error() string {
	if e.Cause == nil {
		return "a network error happened please try again"
	}
	return fmt.Sprintf("network error: %v", e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// ChargeFailure is the classification of a payment provider error
type ChargeFailure int

const (
	// ChargeFailureUnclassified is any error outside the provider contract
	ChargeFailureUnclassified ChargeFailure = iota
	// ChargeFailureUncollectible covers currency mismatch and unknown customer
	ChargeFailureUncollectible
	// ChargeFailureTransient covers network failures
	ChargeFailureTransient
)

func (f ChargeFailure) String() string {
	switch f {
	case ChargeFailureUncollectible:
		return "uncollectible"
	case ChargeFailureTransient:
		return "transient"
	default:
		return "unclassified"
	}
}

// ClassifyChargeError maps a payment provider error onto a ChargeFailure.
// Wrapped errors are unwrapped before matching.
func ClassifyChargeError(err error) ChargeFailure {
	var (
		mismatch *CurrencyMismatchError
		notFound *CustomerNotFoundError
		network  *NetworkError
	)
	switch {
	case errors.As(err, &mismatch), errors.As(err, &notFound):
		return ChargeFailureUncollectible
	case errors.As(err, &network):
		return ChargeFailureTransient
	default:
		return ChargeFailureUnclassified
	}
}
