package models

import (
	"time"

	"github.com/antaeus/billing/internal/domain/billing"
	"github.com/antaeus/billing/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CustomerModel is the persistence model for billing.Customer
type CustomerModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Currency  string    `gorm:"type:varchar(3);not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() (billing.Customer, error) {
	currency, err := valueobject.ParseCurrency(m.Currency)
	if err != nil {
		return billing.Customer{}, err
	}
	return billing.NewCustomer(m.ID, currency)
}

// CustomerModelFromDomain converts a domain Customer to its persistence model
func CustomerModelFromDomain(c billing.Customer) *CustomerModel {
	return &CustomerModel{
		ID:       c.ID,
		Currency: c.Currency.String(),
	}
}

// InvoiceModel is the persistence model for billing.Invoice
type InvoiceModel struct {
	ID         int64           `gorm:"primaryKey;autoIncrement"`
	CustomerID int64           `gorm:"not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Currency   string          `gorm:"type:varchar(3);not null"`
	Status     string          `gorm:"type:varchar(16);not null;index"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() (billing.Invoice, error) {
	currency, err := valueobject.ParseCurrency(m.Currency)
	if err != nil {
		return billing.Invoice{}, err
	}
	amount, err := valueobject.NewMoney(m.Amount, currency)
	if err != nil {
		return billing.Invoice{}, err
	}
	status, err := billing.ParseInvoiceStatus(m.Status)
	if err != nil {
		return billing.Invoice{}, err
	}
	return billing.NewInvoice(m.ID, m.CustomerID, amount, status)
}

// InvoiceModelFromDomain converts a domain Invoice to its persistence model
func InvoiceModelFromDomain(inv billing.Invoice) *InvoiceModel {
	return &InvoiceModel{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     inv.Amount.Amount(),
		Currency:   inv.Amount.Currency().String(),
		Status:     inv.Status().String(),
	}
}

// AllModels returns every model managed by the billing schema
func AllModels() []any {
	return []any{&CustomerModel{}, &InvoiceModel{}}
}
