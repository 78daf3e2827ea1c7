package dto

import "github.com/antaeus/billing/internal/domain/billing"

// InvoiceResponse is the API representation of an invoice
type InvoiceResponse struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customer_id"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	Status     string `json:"status"`
}

// CustomerResponse is the API representation of a customer
type CustomerResponse struct {
	ID       int64  `json:"id"`
	Currency string `json:"currency"`
}

// ToInvoiceResponse converts a domain invoice
func ToInvoiceResponse(inv billing.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     inv.Amount.StringFixed(2),
		Currency:   inv.Amount.Currency().String(),
		Status:     inv.Status().String(),
	}
}

// ToInvoiceResponses converts a slice of domain invoices
func ToInvoiceResponses(invoices []billing.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		out[i] = ToInvoiceResponse(inv)
	}
	return out
}

// ToCustomerResponse converts a domain customer
func ToCustomerResponse(c billing.Customer) CustomerResponse {
	return CustomerResponse{
		ID:       c.ID,
		Currency: c.Currency.String(),
	}
}

// ToCustomerResponses converts a slice of domain customers
func ToCustomerResponses(customers []billing.Customer) []CustomerResponse {
	out := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		out[i] = ToCustomerResponse(c)
	}
	return out
}
