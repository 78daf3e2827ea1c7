package billing

import (
	"fmt"

	"github.com/antaeus/billing/internal/domain/shared/valueobject"
)

// Customer owns invoices and settles them in a single currency
type Customer struct {
	ID       int64                `json:"id"`
	Currency valueobject.Currency `json:"currency"`
}

// NewCustomer creates a customer settled in the given currency
func NewCustomer(id int64, currency valueobject.Currency) (Customer, error) {
	if !currency.IsValid() {
		return Customer{}, fmt.Errorf("customer: unsupported currency %q", currency)
	}
	return Customer{ID: id, Currency: currency}, nil
}
