package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSARExtDefaultsMatchStandardSAR(t *testing.T) {
	high := []float64{10, 12, 11, 13, 12.5, 14, 13, 11, 10.5, 12}
	low := []float64{9, 10, 10, 11.5, 11, 12.5, 11, 9.5, 9, 10.5}

	std, err := CalculateSAR(high, low, 0, 0)
	require.NoError(t, err)

	ext, err := CalculateSARExt(high, low, 0, 0)
	require.NoError(t, err)

	// With the standard schedule on both legs, no start value and no offset,
	// the extended machine reproduces the standard one.
	require.Equal(t, len(std), len(ext))
	for i := range std {
		assert.InDelta(t, std[i], ext[i], 1e-12, "index %d", i)
	}
}

func TestSARExtStartValueLong(t *testing.T) {
	high := []float64{10, 11, 12}
	low := []float64{9, 10, 11}

	out, err := CalculateSARExt(high, low, 8.5, 0)
	require.NoError(t, err)

	// A start value below the first bar midpoint opens a long leg from that
	// exact stop on bar 0.
	assert.InDelta(t, 8.5, out[0], 1e-9)
	assert.InDelta(t, 8.53, out[1], 1e-9)
	assert.InDelta(t, 8.6288, out[2], 1e-9)
}

func TestSARExtStartValueShort(t *testing.T) {
	high := []float64{10, 9, 8}
	low := []float64{9, 8, 7}

	out, err := CalculateSARExt(high, low, 12, 0)
	require.NoError(t, err)

	assert.InDelta(t, 12.0, out[0], 1e-9)
	for i := 1; i < len(out); i++ {
		assert.Greater(t, out[i], high[i], "index %d", i)
	}
}

func TestSARExtOffsetOnReverse(t *testing.T) {
	inc := &SARExt{StartValue: 12, OffsetOnReverse: 0.5}
	require.NoError(t, inc.Update(10, 9)) // short from 12, EP = 9
	require.NoError(t, inc.Update(13, 12))

	// The reversal stop is pushed below the old extreme point by the offset.
	assert.InDelta(t, 8.5, inc.Last(0), 1e-9)
	assert.Equal(t, 1.0, inc.Trend.Last(0))
}

func TestSARExtAsymmetricSchedule(t *testing.T) {
	high := []float64{10, 11, 12, 13}
	low := []float64{9, 10, 11, 12}

	inc := &SARExt{AFInitLong: 0.02, AFStepLong: 0.1, AFMaxLong: 0.2}
	out, err := inc.Calculate(high, low)
	require.NoError(t, err)

	// The long leg accelerates by AFStepLong per new extreme.
	assert.InDelta(t, 9.0, out[0], 1e-9)
	assert.InDelta(t, 9.0, out[1], 1e-9)
	assert.InDelta(t, 9.04, out[2], 1e-9)
	assert.InDelta(t, 9.3952, out[3], 1e-9)
	assert.InDelta(t, 0.2, inc.AF, 1e-12)
}

func TestSARExtErrors(t *testing.T) {
	high := []float64{10, 11, 12}
	low := []float64{9, 10, 11}

	inc := &SARExt{AFInitLong: 0.5, AFMaxLong: 0.2}
	_, err := inc.Calculate(high, low)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	inc = &SARExt{AFStepShort: -0.02}
	_, err = inc.Calculate(high, low)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = CalculateSARExt([]float64{10, 9}, []float64{11, 8}, 0, 0)
	assert.ErrorIs(t, err, ErrDegenerateInput)

	s := &SARExt{}
	err = s.Update(10, math.Inf(1))
	assert.ErrorIs(t, err, ErrDegenerateInput)
}
