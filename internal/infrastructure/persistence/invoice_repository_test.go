package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/antaeus/billing/internal/domain/billing"
	"github.com/antaeus/billing/internal/domain/shared"
	"github.com/antaeus/billing/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormInvoiceRepository_FetchPageByStatus(t *testing.T) {
	db := setupBillingTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	customer := createTestCustomer(t, db, valueobject.EUR)
	var pendingIDs []int64
	for i := 0; i < 7; i++ {
		status := billing.InvoiceStatusPending
		if i%3 == 2 {
			status = billing.InvoiceStatusPaid
		}
		inv := createTestInvoice(t, db, customer, "12.50", status)
		if status == billing.InvoiceStatusPending {
			pendingIDs = append(pendingIDs, inv.ID)
		}
	}
	require.Len(t, pendingIDs, 5)

	t.Run("pages are disjoint and ordered by id", func(t *testing.T) {
		var seen []int64
		for offset := 0; ; offset += 2 {
			page, err := repo.FetchPageByStatus(ctx, billing.InvoiceStatusPending, 2, offset)
			require.NoError(t, err)
			if len(page) == 0 {
				break
			}
			assert.LessOrEqual(t, len(page), 2)
			for _, inv := range page {
				assert.Equal(t, billing.InvoiceStatusPending, inv.Status())
				seen = append(seen, inv.ID)
			}
		}
		assert.Equal(t, pendingIDs, seen)
	})

	t.Run("offset past the end returns an empty page", func(t *testing.T) {
		page, err := repo.FetchPageByStatus(ctx, billing.InvoiceStatusPending, 2, 100)
		require.NoError(t, err)
		assert.Empty(t, page)
	})

	t.Run("maps amount and currency", func(t *testing.T) {
		page, err := repo.FetchPageByStatus(ctx, billing.InvoiceStatusPaid, 1, 0)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, customer.ID, page[0].CustomerID)
		assert.Equal(t, valueobject.EUR, page[0].Amount.Currency())
		assert.Equal(t, "12.50", page[0].Amount.Amount().StringFixed(2))
	})
}

func TestGormInvoiceRepository_Update(t *testing.T) {
	db := setupBillingTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	customer := createTestCustomer(t, db, valueobject.DKK)
	invoice := createTestInvoice(t, db, customer, "99.99", billing.InvoiceStatusPending)

	t.Run("persists the new status", func(t *testing.T) {
		paid, err := invoice.Pay()
		require.NoError(t, err)
		require.NoError(t, repo.Update(ctx, paid))

		found, err := repo.FindByID(ctx, invoice.ID)
		require.NoError(t, err)
		assert.Equal(t, billing.InvoiceStatusPaid, found.Status())

		page, err := repo.FetchPageByStatus(ctx, billing.InvoiceStatusPending, 10, 0)
		require.NoError(t, err)
		assert.Empty(t, page)
	})

	t.Run("unknown invoice", func(t *testing.T) {
		ghost := invoice
		ghost.ID = 4242
		err := repo.Update(ctx, ghost)
		assert.ErrorIs(t, err, billing.ErrInvoiceNotFound)
	})
}

func TestGormInvoiceRepository_FindByID(t *testing.T) {
	db := setupBillingTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	customer := createTestCustomer(t, db, valueobject.USD)
	invoice := createTestInvoice(t, db, customer, "10", billing.InvoiceStatusPending)

	found, err := repo.FindByID(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, invoice.ID, found.ID)
	assert.True(t, invoice.Amount.Equals(found.Amount))

	_, err = repo.FindByID(ctx, invoice.ID+1)
	assert.ErrorIs(t, err, billing.ErrInvoiceNotFound)
}

func TestGormInvoiceRepository_FindAllAndCount(t *testing.T) {
	db := setupBillingTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	customer := createTestCustomer(t, db, valueobject.GBP)
	for i := 0; i < 5; i++ {
		createTestInvoice(t, db, customer, "20", billing.InvoiceStatusPending)
	}

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)

	t.Run("second page descending", func(t *testing.T) {
		invoices, err := repo.FindAll(ctx, shared.Filter{Page: 2, PageSize: 2, OrderBy: "id", OrderDir: "desc"})
		require.NoError(t, err)
		require.Len(t, invoices, 2)
		assert.Greater(t, invoices[0].ID, invoices[1].ID)
	})

	t.Run("unknown sort field falls back to id", func(t *testing.T) {
		invoices, err := repo.FindAll(ctx, shared.Filter{OrderBy: "amount; DROP TABLE invoices"})
		require.NoError(t, err)
		assert.Len(t, invoices, 5)
		assert.Less(t, invoices[0].ID, invoices[4].ID)
	})
}

func TestGormInvoiceRepository_QueryShape(t *testing.T) {
	t.Run("fetch page binds status, limit and offset", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormInvoiceRepository(db)

		rows := sqlmock.NewRows([]string{"id", "customer_id", "amount", "currency", "status"}).
			AddRow(9, 3, "200.00", "SEK", "PENDING")
		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE status = \$1 ORDER BY id ASC LIMIT \$2 OFFSET \$3`).
			WithArgs("PENDING", 4, 8).
			WillReturnRows(rows)

		page, err := repo.FetchPageByStatus(context.Background(), billing.InvoiceStatusPending, 4, 8)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, int64(9), page[0].ID)
		assert.Equal(t, valueobject.SEK, page[0].Amount.Currency())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fetch error is returned", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormInvoiceRepository(db)

		dbErr := errors.New("connection reset")
		mock.ExpectQuery(`SELECT \* FROM "invoices"`).WillReturnError(dbErr)

		_, err := repo.FetchPageByStatus(context.Background(), billing.InvoiceStatusPending, 4, 0)
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("corrupt row status is reported", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormInvoiceRepository(db)

		rows := sqlmock.NewRows([]string{"id", "customer_id", "amount", "currency", "status"}).
			AddRow(1, 1, "5.00", "EUR", "LOST")
		mock.ExpectQuery(`SELECT \* FROM "invoices"`).WillReturnRows(rows)

		_, err := repo.FetchPageByStatus(context.Background(), billing.InvoiceStatusPending, 4, 0)
		assert.ErrorIs(t, err, billing.ErrInvalidInvoiceStatus)
	})

	t.Run("update without matching row", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormInvoiceRepository(db)

		mock.ExpectExec(`UPDATE "invoices" SET .* WHERE id = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		money := valueobject.MustNewMoney(decimalOf(t, "1.00"), valueobject.EUR)
		invoice, err := billing.NewInvoice(77, 1, money, billing.InvoiceStatusPaid)
		require.NoError(t, err)

		err = repo.Update(context.Background(), invoice)
		assert.ErrorIs(t, err, billing.ErrInvoiceNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
