package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/antaeus/billing/internal/domain/billing"
	"github.com/antaeus/billing/internal/domain/shared"
	"github.com/antaeus/billing/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalOf(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestGormCustomerRepository_CreateAndFind(t *testing.T) {
	db := setupBillingTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, billing.Customer{Currency: valueobject.SEK})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)

	_, err = repo.FindByID(ctx, created.ID+100)
	assert.ErrorIs(t, err, billing.ErrCustomerNotFound)
}

func TestGormCustomerRepository_FindAll(t *testing.T) {
	db := setupBillingTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()

	for _, c := range []valueobject.Currency{valueobject.EUR, valueobject.USD, valueobject.DKK} {
		createTestCustomer(t, db, c)
	}

	all, err := repo.FindAll(ctx, shared.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, valueobject.EUR, all[0].Currency)

	page, err := repo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 2, OrderBy: "currency", OrderDir: "asc"})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, valueobject.DKK, page[0].Currency)
	assert.Equal(t, valueobject.EUR, page[1].Currency)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestGormCustomerRepository_QueryShape(t *testing.T) {
	t.Run("find by id", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db)

		rows := sqlmock.NewRows([]string{"id", "currency"}).AddRow(5, "GBP")
		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(int64(5), 1).
			WillReturnRows(rows)

		customer, err := repo.FindByID(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, billing.Customer{ID: 5, Currency: valueobject.GBP}, customer)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows maps to not found", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "currency"}))

		_, err := repo.FindByID(context.Background(), 5)
		assert.ErrorIs(t, err, billing.ErrCustomerNotFound)
	})

	t.Run("count error", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db)

		dbErr := errors.New("too many connections")
		mock.ExpectQuery(`SELECT count\(\*\) FROM "customers"`).WillReturnError(dbErr)

		_, err := repo.Count(context.Background())
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("unsupported stored currency", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "customers"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "currency"}).AddRow(1, "XYZ"))

		_, err := repo.FindAll(context.Background(), shared.Filter{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "customer 1")
	})
}
