package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/antaeus/billing/internal/domain/billing"
	"github.com/antaeus/billing/internal/domain/shared/valueobject"
	"github.com/antaeus/billing/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupBillingTestDB opens an in-memory SQLite database with the billing tables
func setupBillingTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

// newMockGormDB returns a postgres-dialect GORM handle backed by sqlmock
func newMockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func createTestCustomer(t *testing.T, db *gorm.DB, currency valueobject.Currency) billing.Customer {
	t.Helper()
	customer, err := NewGormCustomerRepository(db).Create(context.Background(), billing.Customer{Currency: currency})
	require.NoError(t, err)
	return customer
}

func createTestInvoice(t *testing.T, db *gorm.DB, customer billing.Customer, amount string, status billing.InvoiceStatus) billing.Invoice {
	t.Helper()
	money, err := valueobject.NewMoney(decimal.RequireFromString(amount), customer.Currency)
	require.NoError(t, err)
	invoice, err := billing.NewInvoice(0, customer.ID, money, status)
	require.NoError(t, err)
	created, err := NewGormInvoiceRepository(db).Create(context.Background(), invoice)
	require.NoError(t, err)
	return created
}
