package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedLookback int

func (f fixedLookback) Lookback() int { return int(f) }

func TestCombinedLookback(t *testing.T) {
	assert.Equal(t, 0, CombinedLookback())
	assert.Equal(t, 13, CombinedLookback(fixedLookback(3), fixedLookback(13), fixedLookback(1)))
	assert.Equal(t, CyclePeriodLookback, CombinedLookback(
		&WMA4{}, &CyclePeriod{}, &DCPhase{}, &MAMA{}, &Trendline{}, &TrendMode{}, &SAR{},
	))
}

func TestPipelineRun(t *testing.T) {
	prices := cycleMix(300)

	p := &Pipeline{}
	report, err := p.Run(prices)
	require.NoError(t, err)

	assert.Equal(t, CyclePeriodLookback, report.FirstValid)

	outputs := map[string][]float64{
		"smoothed":  report.SmoothedPrice,
		"period":    report.Period,
		"phase":     report.Phase,
		"unwrapped": report.Unwrapped,
		"sine":      report.Sine,
		"lead sine": report.LeadSine,
		"mama":      report.MAMA,
		"fama":      report.FAMA,
		"trendline": report.Trendline,
		"trendmode": report.TrendMode,
	}
	for name, out := range outputs {
		require.Len(t, out, len(prices), name)
		for i := report.FirstValid; i < len(out); i++ {
			assert.False(t, math.IsNaN(out[i]), "%s index %d", name, i)
		}
	}

	// Outputs with a shorter warm-up still carry NaN only before their own
	// lookback; the slowest indicator defines the common FirstValid.
	for i := 0; i < report.FirstValid; i++ {
		assert.True(t, math.IsNaN(report.Period[i]), "period index %d", i)
		assert.True(t, math.IsNaN(report.MAMA[i]), "mama index %d", i)
	}
}

func TestPipelineRunIdempotent(t *testing.T) {
	prices := cycleMix(200)

	p := &Pipeline{FastLimit: 0.6, SlowLimit: 0.04}
	r1, err := p.Run(prices)
	require.NoError(t, err)
	r2, err := p.Run(prices)
	require.NoError(t, err)

	for i := r1.FirstValid; i < len(prices); i++ {
		assert.Equal(t, r1.Period[i], r2.Period[i], "period index %d", i)
		assert.Equal(t, r1.MAMA[i], r2.MAMA[i], "mama index %d", i)
		assert.Equal(t, r1.TrendMode[i], r2.TrendMode[i], "trendmode index %d", i)
	}
}

func TestPipelineRunCustomBounds(t *testing.T) {
	p := &Pipeline{MinPeriod: 10, MaxPeriod: 30}
	report, err := p.Run(cycleMix(300))
	require.NoError(t, err)

	for i := report.FirstValid; i < len(report.Period); i++ {
		assert.GreaterOrEqual(t, report.Period[i], 10.0, "index %d", i)
		assert.LessOrEqual(t, report.Period[i], 30.0, "index %d", i)
	}
}

func TestPipelineRunErrors(t *testing.T) {
	p := &Pipeline{}

	_, err := p.Run(nil)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = p.Run(cycleMix(10))
	assert.ErrorIs(t, err, ErrInsufficientData)

	p = &Pipeline{FastLimit: 0.01, SlowLimit: 0.5}
	_, err = p.Run(cycleMix(100))
	assert.ErrorIs(t, err, ErrInvalidParameter)

	p = &Pipeline{MinPeriod: 50, MaxPeriod: 6}
	_, err = p.Run(cycleMix(100))
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestPipelineRunBars(t *testing.T) {
	high := []float64{10, 11, 12, 13, 14, 13.5, 12, 11, 10.5, 11.5}
	low := []float64{9, 10, 11, 12, 13, 12.5, 11, 9.5, 9, 10.5}

	p := &Pipeline{}
	report, err := p.RunBars(high, low)
	require.NoError(t, err)

	require.Len(t, report.SAR, len(high))
	require.Len(t, report.SARTrend, len(high))
	assert.Equal(t, SARLookback, report.FirstValid)

	for i := range report.SAR {
		assert.False(t, math.IsNaN(report.SAR[i]), "sar index %d", i)
	}
	for i, v := range report.SARTrend {
		assert.True(t, v == 1.0 || v == -1.0 || v == 0.0, "trend index %d got %v", i, v)
	}
}

func TestPipelineRunBarsErrors(t *testing.T) {
	p := &Pipeline{}

	_, err := p.RunBars([]float64{10, 9}, []float64{11, 8})
	assert.ErrorIs(t, err, ErrDegenerateInput)

	_, err = p.RunBars([]float64{10}, []float64{9})
	assert.ErrorIs(t, err, ErrInsufficientData)

	p = &Pipeline{SARAcceleration: 0.5, SARMaxAcceleration: 0.1}
	_, err = p.RunBars([]float64{10, 11, 12}, []float64{9, 10, 11})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
