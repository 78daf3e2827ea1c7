package payment

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/antaeus/billing/internal/domain/billing"
)

// SimulatedProvider stands in for a real provider in demos and local runs.
// Every charge waits a random delay and then succeeds with the configured probability.
type SimulatedProvider struct {
	config SimulatedProviderConfig

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedProvider creates a simulated provider. A nil rng is seeded randomly.
func NewSimulatedProvider(config SimulatedProviderConfig, rng *rand.Rand) *SimulatedProvider {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if config.MaxDelay < config.MinDelay {
		config.MaxDelay = config.MinDelay
	}
	return &SimulatedProvider{config: config, rng: rng}
}

// Charge waits for the simulated latency and reports a random outcome
func (p *SimulatedProvider) Charge(ctx context.Context, _ billing.Invoice) (bool, error) {
	delay, charged := p.draw()

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-timer.C:
		}
	}
	return charged, nil
}

// draw picks the delay and outcome of one charge; *rand.Rand is not safe for concurrent use
func (p *SimulatedProvider) draw() (time.Duration, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delay := p.config.MinDelay
	if span := p.config.MaxDelay - p.config.MinDelay; span > 0 {
		delay += time.Duration(p.rng.Int64N(int64(span)))
	}
	return delay, p.rng.Float64() < p.config.SuccessRate
}

var _ billing.PaymentProvider = (*SimulatedProvider)(nil)
