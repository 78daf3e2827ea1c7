package persistence

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/antaeus/billing/internal/infrastructure/config"
	"github.com/antaeus/billing/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func sqliteConfig(path string) *config.DatabaseConfig {
	return &config.DatabaseConfig{
		Driver:       "sqlite",
		SQLitePath:   path,
		MaxOpenConns: 10,
		MaxIdleConns: 5,
	}
}

func TestNewDatabase(t *testing.T) {
	t.Run("sqlite uses a single connection", func(t *testing.T) {
		db, err := NewDatabase(sqliteConfig(":memory:"))
		require.NoError(t, err)
		defer db.Close()

		require.NoError(t, db.Ping())

		stats, err := db.Stats()
		require.NoError(t, err)
		assert.Equal(t, 1, stats.MaxOpenConnections)
	})

	t.Run("unsupported driver", func(t *testing.T) {
		_, err := NewDatabase(&config.DatabaseConfig{Driver: "mysql"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported database driver")
	})
}

func TestDatabase_AutoMigrate(t *testing.T) {
	db, err := NewDatabase(sqliteConfig(filepath.Join(t.TempDir(), "billing.db")))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.AutoMigrate())
	for _, model := range models.AllModels() {
		assert.True(t, db.DB.Migrator().HasTable(model))
	}

	// Running twice is a no-op.
	require.NoError(t, db.AutoMigrate())
}

func TestDatabase_Transaction(t *testing.T) {
	db, err := NewDatabase(sqliteConfig(":memory:"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.AutoMigrate())

	rollback := errors.New("rollback")
	err = db.Transaction(func(tx *gorm.DB) error {
		require.NoError(t, tx.Create(&models.CustomerModel{Currency: "EUR"}).Error)
		return rollback
	})
	assert.ErrorIs(t, err, rollback)

	var count int64
	require.NoError(t, db.DB.Model(&models.CustomerModel{}).Count(&count).Error)
	assert.Zero(t, count)

	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&models.CustomerModel{Currency: "EUR"}).Error
	})
	require.NoError(t, err)
	require.NoError(t, db.DB.Model(&models.CustomerModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
