package migration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/antaeus/billing/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add invoice index", "add_invoice_index"},
		{"Add-Invoice-Index", "add_invoice_index"},
		{"ADD__INVOICE__INDEX", "add_invoice_index"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"_leading and trailing_", "leading_and_trailing"},
		{"währung", "whrung"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

	mf, err := createMigrationAt(dir, "add invoice due date", "Invoices get a due date", now)
	require.NoError(t, err)

	assert.Equal(t, "20261017093000", mf.Version)
	assert.Equal(t, filepath.Join(dir, "20261017093000_add_invoice_due_date.up.sql"), mf.UpPath)
	assert.Equal(t, filepath.Join(dir, "20261017093000_add_invoice_due_date.down.sql"), mf.DownPath)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- Migration: add invoice due date")
	assert.Contains(t, string(up), "Invoices get a due date")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(Rollback)")

	t.Run("refuses to overwrite an existing migration", func(t *testing.T) {
		_, err := createMigrationAt(dir, "add invoice due date", "", now)
		assert.Error(t, err)
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		_, err := CreateMigration(dir, "!!!", "")
		assert.Error(t, err)
	})
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"20261002000000_b.up.sql", "20261002000000_b.down.sql",
		"20261001000000_a.up.sql", "20261001000000_a.down.sql",
		"README.md",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	names, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"20261001000000_a", "20261002000000_b"}, names)

	names, err = ListMigrations(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := migrations.FS.ReadDir(".")
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case filepath.Ext(name) != ".sql":
		case len(name) > 7 && name[len(name)-7:] == ".up.sql":
			ups[name[:len(name)-7]] = true
		case len(name) > 9 && name[len(name)-9:] == ".down.sql":
			downs[name[:len(name)-9]] = true
		}
	}
	require.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)
}
