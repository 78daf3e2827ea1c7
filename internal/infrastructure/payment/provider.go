package payment

import (
	"fmt"

	"github.com/antaeus/billing/internal/domain/billing"
	"github.com/antaeus/billing/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Provider kinds accepted by payment.provider
const (
	ProviderSimulated = "simulated"
	ProviderHTTP      = "http"
)

// NewProvider builds the payment provider selected by configuration
func NewProvider(cfg *config.PaymentConfig, logger *zap.Logger) (billing.PaymentProvider, error) {
	switch cfg.Provider {
	case "", ProviderSimulated:
		logger.Warn("Using simulated payment provider",
			zap.Duration("min_delay", cfg.SimulatedMinDelay),
			zap.Duration("max_delay", cfg.SimulatedMaxDelay),
			zap.Float64("success_rate", cfg.SimulatedSuccessRate),
		)
		return NewSimulatedProvider(SimulatedProviderConfig{
			MinDelay:    cfg.SimulatedMinDelay,
			MaxDelay:    cfg.SimulatedMaxDelay,
			SuccessRate: cfg.SimulatedSuccessRate,
		}, nil), nil
	case ProviderHTTP:
		logger.Info("Using HTTP payment provider", zap.String("base_url", cfg.BaseURL))
		return NewHTTPProvider(&HTTPProviderConfig{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Timeout: cfg.Timeout,
		})
	default:
		return nil, fmt.Errorf("payment: unsupported provider %q", cfg.Provider)
	}
}
