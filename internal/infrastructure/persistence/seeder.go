package persistence

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/antaeus/billing/internal/domain/billing"
	"github.com/antaeus/billing/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DemoSeederConfig sizes the demo data set
type DemoSeederConfig struct {
	Customers           int
	InvoicesPerCustomer int
	MinAmount           int64
	MaxAmount           int64
}

// DefaultDemoSeederConfig returns 100 customers with 10 invoices each
func DefaultDemoSeederConfig() DemoSeederConfig {
	return DemoSeederConfig{
		Customers:           100,
		InvoicesPerCustomer: 10,
		MinAmount:           10,
		MaxAmount:           500,
	}
}

// DemoSeeder fills an empty database with customers and invoices.
// Each customer's first invoice is PENDING; the rest are PAID.
type DemoSeeder struct {
	db     *gorm.DB
	logger *zap.Logger
	rng    *rand.Rand
	config DemoSeederConfig
}

// NewDemoSeeder creates a seeder drawing currencies and amounts from rng
func NewDemoSeeder(db *gorm.DB, logger *zap.Logger, rng *rand.Rand, config DemoSeederConfig) *DemoSeeder {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &DemoSeeder{db: db, logger: logger, rng: rng, config: config}
}

// Seed inserts the demo data unless customers already exist.
// It reports whether anything was inserted.
func (s *DemoSeeder) Seed(ctx context.Context) (bool, error) {
	var existing int64
	if err := s.db.WithContext(ctx).Table("customers").Count(&existing).Error; err != nil {
		return false, fmt.Errorf("count customers: %w", err)
	}
	if existing > 0 {
		s.logger.Info("Skipping demo data, customers already present", zap.Int64("customers", existing))
		return false, nil
	}

	currencies := valueobject.AllCurrencies()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customerRepo := NewGormCustomerRepository(tx)
		invoiceRepo := NewGormInvoiceRepository(tx)

		for i := 0; i < s.config.Customers; i++ {
			currency := currencies[s.rng.IntN(len(currencies))]
			customer, err := customerRepo.Create(ctx, billing.Customer{Currency: currency})
			if err != nil {
				return fmt.Errorf("create customer: %w", err)
			}

			for j := 0; j < s.config.InvoicesPerCustomer; j++ {
				status := billing.InvoiceStatusPaid
				if j == 0 {
					status = billing.InvoiceStatusPending
				}
				amount, err := valueobject.NewMoney(s.randomAmount(), currency)
				if err != nil {
					return err
				}
				invoice, err := billing.NewInvoice(0, customer.ID, amount, status)
				if err != nil {
					return err
				}
				if _, err := invoiceRepo.Create(ctx, invoice); err != nil {
					return fmt.Errorf("create invoice for customer %d: %w", customer.ID, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	s.logger.Info("Seeded demo data",
		zap.Int("customers", s.config.Customers),
		zap.Int("invoices", s.config.Customers*s.config.InvoicesPerCustomer),
	)
	return true, nil
}

// randomAmount returns a whole-cent amount in [MinAmount, MaxAmount]
func (s *DemoSeeder) randomAmount() decimal.Decimal {
	spanCents := (s.config.MaxAmount - s.config.MinAmount) * 100
	cents := s.config.MinAmount*100 + s.rng.Int64N(spanCents+1)
	return decimal.New(cents, -2)
}
