package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTrendlineWarmUp(t *testing.T) {
	out, err := HTTrendline(cycleMix(100), 0, 0)
	require.NoError(t, err)
	require.Len(t, out, 100)

	for i := 0; i < TrendlineLookback; i++ {
		assert.True(t, math.IsNaN(out[i]), "index %d must be NaN", i)
	}
	for i := TrendlineLookback; i < len(out); i++ {
		require.False(t, math.IsNaN(out[i]), "index %d", i)
	}
}

func TestHTTrendlineConstantSeries(t *testing.T) {
	out, err := HTTrendline(constSeries(100, 42.0), 0, 0)
	require.NoError(t, err)

	// Averaging a constant over any window returns the constant.
	for i := TrendlineLookback; i < len(out); i++ {
		assert.InDelta(t, 42.0, out[i], 1e-9, "index %d", i)
	}
}

func TestHTTrendlineCentersCycle(t *testing.T) {
	// A sine around 100 averages out: the trendline hugs the midline far
	// closer than the raw price swings.
	prices := sineSeries(300, 100, 5, 20)

	out, err := HTTrendline(prices, 0, 0)
	require.NoError(t, err)

	for i := 100; i < len(out); i++ {
		assert.InDelta(t, 100.0, out[i], 2.5, "index %d", i)
	}
}

func TestHTTrendlineFollowsTrend(t *testing.T) {
	prices := trendSeries(200, 100, 1.0)

	out, err := HTTrendline(prices, 0, 0)
	require.NoError(t, err)

	// The trendline lags a ramp but keeps rising with it.
	for i := 50; i < len(out); i++ {
		assert.Greater(t, out[i], out[i-1], "index %d", i)
		assert.Less(t, out[i], prices[i], "index %d", i)
	}
}

func TestHTTrendlineErrors(t *testing.T) {
	_, err := HTTrendline(cycleMix(5), 0, 0)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = HTTrendline(cycleMix(100), 30, 10)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
