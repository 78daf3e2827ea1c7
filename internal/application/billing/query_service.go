package billing

import (
	"context"

	"github.com/antaeus/billing/internal/domain/billing"
	"github.com/antaeus/billing/internal/domain/shared"
)

// InvoiceService answers invoice read queries
type InvoiceService struct {
	invoiceRepo billing.InvoiceRepository
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo billing.InvoiceRepository) *InvoiceService {
	return &InvoiceService{invoiceRepo: invoiceRepo}
}

// Fetch returns one invoice or billing.ErrInvoiceNotFound
func (s *InvoiceService) Fetch(ctx context.Context, id int64) (billing.Invoice, error) {
	return s.invoiceRepo.FindByID(ctx, id)
}

// FetchAll returns one page of invoices ordered by filter
func (s *InvoiceService) FetchAll(ctx context.Context, filter shared.Filter) (shared.Paginated[billing.Invoice], error) {
	filter = normalizeFilter(filter)
	invoices, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[billing.Invoice]{}, err
	}
	total, err := s.invoiceRepo.Count(ctx)
	if err != nil {
		return shared.Paginated[billing.Invoice]{}, err
	}
	return shared.NewPaginated(invoices, total, filter.Page, filter.PageSize), nil
}

// CustomerService answers customer read queries
type CustomerService struct {
	customerRepo billing.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo billing.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// Fetch returns one customer or billing.ErrCustomerNotFound
func (s *CustomerService) Fetch(ctx context.Context, id int64) (billing.Customer, error) {
	return s.customerRepo.FindByID(ctx, id)
}

// FetchAll returns one page of customers ordered by filter
func (s *CustomerService) FetchAll(ctx context.Context, filter shared.Filter) (shared.Paginated[billing.Customer], error) {
	filter = normalizeFilter(filter)
	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[billing.Customer]{}, err
	}
	total, err := s.customerRepo.Count(ctx)
	if err != nil {
		return shared.Paginated[billing.Customer]{}, err
	}
	return shared.NewPaginated(customers, total, filter.Page, filter.PageSize), nil
}

const maxPageSize = 1000

func normalizeFilter(filter shared.Filter) shared.Filter {
	defaults := shared.DefaultFilter()
	if filter.Page < 1 {
		filter.Page = defaults.Page
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaults.PageSize
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}
	if filter.OrderBy == "" {
		filter.OrderBy = defaults.OrderBy
	}
	if filter.OrderDir != "desc" {
		filter.OrderDir = "asc"
	}
	return filter
}
