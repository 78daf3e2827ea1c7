package payment

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

const defaultHTTPTimeout = 30 * time.Second

// HTTPProviderConfig configures the REST payment provider client
type HTTPProviderConfig struct {
	// BaseURL is the provider root, e.g. https://payments.example.com
	BaseURL string
	// APIKey is sent as a bearer token when set
	APIKey string
	// Timeout bounds a single charge request
	Timeout time.Duration
}

// Errors for configuration validation
var (
	ErrMissingBaseURL = errors.New("payment: missing base URL")
	ErrInvalidBaseURL = errors.New("payment: base URL must be an absolute http(s) URL")
)

// Validate validates the configuration
func (c *HTTPProviderConfig) Validate() error {
	if c.BaseURL == "" {
		return ErrMissingBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}
	return nil
}

func (c *HTTPProviderConfig) timeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultHTTPTimeout
	}
	return c.Timeout
}

// SimulatedProviderConfig configures the demo provider
type SimulatedProviderConfig struct {
	MinDelay    time.Duration
	MaxDelay    time.Duration
	SuccessRate float64
}

// DefaultSimulatedProviderConfig waits 300ms to 2s and succeeds half the time
func DefaultSimulatedProviderConfig() SimulatedProviderConfig {
	return SimulatedProviderConfig{
		MinDelay:    300 * time.Millisecond,
		MaxDelay:    2 * time.Second,
		SuccessRate: 0.5,
	}
}
