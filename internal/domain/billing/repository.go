package billing

import (
	"context"

	"github.com/antaeus/billing/internal/domain/shared"
)

// InvoiceRepository defines the storage operations for invoices
type InvoiceRepository interface {
	// FetchPageByStatus returns up to limit invoices in the given status, ordered by id,
	// skipping the first offset matches. An empty result signals exhaustion.
	FetchPageByStatus(ctx context.Context, status InvoiceStatus, limit, offset int) ([]Invoice, error)
	// Update persists the invoice's current status
	Update(ctx context.Context, invoice Invoice) error
	// FindByID returns ErrInvoiceNotFound when no invoice matches
	FindByID(ctx context.Context, id int64) (Invoice, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, error)
	Count(ctx context.Context) (int64, error)
	// Create stores a new invoice and returns it with its assigned id
	Create(ctx context.Context, invoice Invoice) (Invoice, error)
}

// CustomerRepository defines the storage operations for customers
type CustomerRepository interface {
	// FindByID returns ErrCustomerNotFound when no customer matches
	FindByID(ctx context.Context, id int64) (Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)
	Count(ctx context.Context) (int64, error)
	// Create stores a new customer and returns it with its assigned id
	Create(ctx context.Context, customer Customer) (Customer, error)
}
