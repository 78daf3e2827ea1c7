package payment

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedProvider_SuccessRate(t *testing.T) {
	inv := testInvoice(t)

	always := NewSimulatedProvider(SimulatedProviderConfig{SuccessRate: 1}, rand.New(rand.NewPCG(1, 1)))
	never := NewSimulatedProvider(SimulatedProviderConfig{SuccessRate: 0}, rand.New(rand.NewPCG(1, 1)))
	for i := 0; i < 50; i++ {
		charged, err := always.Charge(context.Background(), inv)
		require.NoError(t, err)
		assert.True(t, charged)

		charged, err = never.Charge(context.Background(), inv)
		require.NoError(t, err)
		assert.False(t, charged)
	}
}

func TestSimulatedProvider_Delay(t *testing.T) {
	p := NewSimulatedProvider(SimulatedProviderConfig{MinDelay: time.Millisecond, MaxDelay: 3 * time.Millisecond}, rand.New(rand.NewPCG(3, 4)))
	for i := 0; i < 100; i++ {
		delay, _ := p.draw()
		assert.GreaterOrEqual(t, delay, time.Millisecond)
		assert.Less(t, delay, 3*time.Millisecond)
	}

	t.Run("max below min is clamped", func(t *testing.T) {
		p := NewSimulatedProvider(SimulatedProviderConfig{MinDelay: 5 * time.Millisecond, MaxDelay: time.Millisecond}, nil)
		delay, _ := p.draw()
		assert.Equal(t, 5*time.Millisecond, delay)
	})
}

func TestSimulatedProvider_Cancelled(t *testing.T) {
	p := NewSimulatedProvider(SimulatedProviderConfig{MinDelay: time.Hour, MaxDelay: time.Hour, SuccessRate: 1}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	charged, err := p.Charge(ctx, testInvoice(t))
	assert.False(t, charged)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulatedProvider_ConcurrentCharges(t *testing.T) {
	p := NewSimulatedProvider(SimulatedProviderConfig{SuccessRate: 0.5}, rand.New(rand.NewPCG(9, 9)))
	inv := testInvoice(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, err := p.Charge(context.Background(), inv)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}
