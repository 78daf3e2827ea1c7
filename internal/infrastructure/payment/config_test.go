package payment

import (
	"testing"
	"time"

	"github.com/antaeus/billing/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHTTPProviderConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr error
	}{
		{"valid", "https://payments.example.com", nil},
		{"missing", "", ErrMissingBaseURL},
		{"relative", "/v1", ErrInvalidBaseURL},
		{"wrong scheme", "ftp://payments.example.com", ErrInvalidBaseURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &HTTPProviderConfig{BaseURL: tt.baseURL}
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHTTPProviderConfig_Timeout(t *testing.T) {
	assert.Equal(t, defaultHTTPTimeout, (&HTTPProviderConfig{}).timeout())
	assert.Equal(t, 5*time.Second, (&HTTPProviderConfig{Timeout: 5 * time.Second}).timeout())
}

func TestNewProvider(t *testing.T) {
	logger := zap.NewNop()

	t.Run("simulated", func(t *testing.T) {
		p, err := NewProvider(&config.PaymentConfig{Provider: ProviderSimulated, SimulatedSuccessRate: 1}, logger)
		require.NoError(t, err)
		assert.IsType(t, &SimulatedProvider{}, p)
	})

	t.Run("http", func(t *testing.T) {
		p, err := NewProvider(&config.PaymentConfig{Provider: ProviderHTTP, BaseURL: "http://localhost:9000"}, logger)
		require.NoError(t, err)
		assert.IsType(t, &HTTPProvider{}, p)
	})

	t.Run("http without base url", func(t *testing.T) {
		_, err := NewProvider(&config.PaymentConfig{Provider: ProviderHTTP}, logger)
		assert.ErrorIs(t, err, ErrMissingBaseURL)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := NewProvider(&config.PaymentConfig{Provider: "stripe"}, logger)
		assert.Error(t, err)
	})
}
