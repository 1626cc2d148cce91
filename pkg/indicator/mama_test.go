package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMAMAWarmUp(t *testing.T) {
	mama, fama, err := CalculateMAMA(cycleMix(100), 0, 0)
	require.NoError(t, err)
	require.Len(t, mama, 100)
	require.Len(t, fama, 100)

	for i := 0; i < MAMALookback; i++ {
		assert.True(t, math.IsNaN(mama[i]), "mama index %d must be NaN", i)
		assert.True(t, math.IsNaN(fama[i]), "fama index %d must be NaN", i)
	}
	for i := MAMALookback; i < len(mama); i++ {
		require.False(t, math.IsNaN(mama[i]), "mama index %d", i)
		require.False(t, math.IsNaN(fama[i]), "fama index %d", i)
	}
}

func TestMAMAConstantSeries(t *testing.T) {
	mama, fama, err := CalculateMAMA(constSeries(100, 42.0), 0, 0)
	require.NoError(t, err)

	for i := MAMALookback; i < len(mama); i++ {
		assert.InDelta(t, 42.0, mama[i], 1e-9, "mama index %d", i)
		assert.InDelta(t, 42.0, fama[i], 1e-9, "fama index %d", i)
	}
}

func TestMAMAFollowsTrend(t *testing.T) {
	prices := trendSeries(200, 100, 0.5)

	mama, fama, err := CalculateMAMA(prices, 0, 0)
	require.NoError(t, err)

	// On a steady uptrend MAMA trails price and FAMA trails MAMA.
	last := len(prices) - 1
	assert.Less(t, mama[last], prices[last])
	assert.Less(t, fama[last], mama[last])
	assert.Greater(t, mama[last], mama[last-20])
	assert.Greater(t, fama[last], fama[last-20])
}

func TestMAMABoundedByLimits(t *testing.T) {
	prices := cycleMix(300)

	mama, _, err := CalculateMAMA(prices, 0, 0)
	require.NoError(t, err)

	// Each MAMA step is a convex blend of price and the previous value, so
	// every output stays inside the running price envelope.
	lo, hi := prices[0], prices[0]
	for _, p := range prices {
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	for i := MAMALookback; i < len(mama); i++ {
		assert.GreaterOrEqual(t, mama[i], lo, "index %d", i)
		assert.LessOrEqual(t, mama[i], hi, "index %d", i)
	}
}

func TestMAMACustomLimits(t *testing.T) {
	prices := cycleMix(300)

	fast, _, err := CalculateMAMA(prices, 0.9, 0.05)
	require.NoError(t, err)
	slow, _, err := CalculateMAMA(prices, 0.1, 0.01)
	require.NoError(t, err)

	// A wider limit band lets MAMA hug price tighter on average.
	var fastErr, slowErr float64
	for i := 50; i < len(prices); i++ {
		fastErr += math.Abs(fast[i] - prices[i])
		slowErr += math.Abs(slow[i] - prices[i])
	}
	assert.Less(t, fastErr, slowErr)
}

func TestMAMAIdempotent(t *testing.T) {
	prices := cycleMix(150)

	mama1, fama1, err := CalculateMAMA(prices, 0, 0)
	require.NoError(t, err)
	mama2, fama2, err := CalculateMAMA(prices, 0, 0)
	require.NoError(t, err)

	for i := MAMALookback; i < len(mama1); i++ {
		assert.Equal(t, mama1[i], mama2[i], "mama index %d", i)
		assert.Equal(t, fama1[i], fama2[i], "fama index %d", i)
	}
}

func TestMAMAErrors(t *testing.T) {
	prices := cycleMix(100)

	cases := []struct {
		name       string
		fast, slow float64
	}{
		{"fast below slow", 0.05, 0.5},
		{"equal limits", 0.3, 0.3},
		{"fast above one", 1.5, 0.05},
		{"negative slow", 0.5, -0.1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := CalculateMAMA(prices, tc.fast, tc.slow)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}

	_, _, err := CalculateMAMA(cycleMix(10), 0, 0)
	assert.ErrorIs(t, err, ErrInsufficientData)

	bad := cycleMix(100)
	bad[10] = math.Inf(-1)
	_, _, err = CalculateMAMA(bad, 0, 0)
	assert.ErrorIs(t, err, ErrDegenerateInput)
}
