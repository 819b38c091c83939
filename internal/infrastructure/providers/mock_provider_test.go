package providers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"insurance_quotes/internal/provider"
)

func TestMockProvider_DeterministicPrice(t *testing.T) {
	factory, err := NewRegistry(Deps{}).Build("demo-a", VariantMock, map[string]string{"base_price": "1500"})
	require.NoError(t, err)

	ctx := context.Background()
	payload := map[string]any{"plate": "34ABC123", "year": 2019}

	first, err := factory().FetchQuote(ctx, "traffic", payload)
	require.NoError(t, err)
	second, err := factory().FetchQuote(ctx, "traffic", payload)
	require.NoError(t, err)

	require.Equal(t, first.Price, second.Price)
	require.GreaterOrEqual(t, first.Price, 1200.0)
	require.Less(t, first.Price, 1800.0)
	require.Equal(t, "TRY", first.Currency)
	require.NoError(t, first.Validate())

	other, err := factory().FetchQuote(ctx, "kasko", payload)
	require.NoError(t, err)
	require.NotEqual(t, first.Price, other.Price)
}

func TestMockProvider_FailureRatio(t *testing.T) {
	p := &MockProvider{code: "flaky", cfg: mockConfig{BasePrice: 100, Currency: "TRY", FailureRatio: 0.5}, sleep: sleepCtx}

	p.roll = func() float64 { return 0.2 }
	_, err := p.FetchQuote(context.Background(), "traffic", nil)
	require.True(t, provider.IsRetryable(err))
	require.Error(t, err)

	p.roll = func() float64 { return 0.7 }
	_, err = p.FetchQuote(context.Background(), "traffic", nil)
	require.NoError(t, err)
}

func TestMockProvider_LatencyHonoursContext(t *testing.T) {
	p := &MockProvider{code: "slow", cfg: mockConfig{BasePrice: 100, Currency: "TRY", Latency: time.Minute}, sleep: sleepCtx}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := p.FetchQuote(ctx, "traffic", nil)
	require.Error(t, err)
	require.Less(t, time.Since(start), time.Second)
}
