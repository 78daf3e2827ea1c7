package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns ASC", "", "ASC"},
		{"asc lowercase returns ASC", "asc", "ASC"},
		{"desc lowercase returns DESC", "desc", "DESC"},
		{"whitespace around DESC returns DESC", "  DESC ", "DESC"},
		{"invalid value returns ASC", "sideways", "ASC"},
		{"sql injection attempt returns ASC", "DESC; DROP TABLE invoices;--", "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns default", "", "id"},
		{"valid field returns field", "customer_id", "customer_id"},
		{"whitespace around valid field returns field", " status ", "status"},
		{"unknown field returns default", "tenant_id", "id"},
		{"case sensitive", "AMOUNT", "id"},
		{"sql injection attempt returns default", "id; DROP TABLE invoices;--", "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, InvoiceSortFields, "id"))
		})
	}
}
