package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWMA4Weights(t *testing.T) {
	var inc WMA4
	for _, p := range []float64{1, 2, 3, 4} {
		inc.Update(p)
	}

	require.Equal(t, 4, inc.Length())
	for i := 0; i < SmootherLookback; i++ {
		assert.True(t, math.IsNaN(inc.Values[i]), "index %d must be NaN", i)
	}

	// (4*4 + 3*3 + 2*2 + 1) / 10
	assert.InDelta(t, 3.0, inc.Last(0), 1e-12)

	inc.Update(5)
	// (4*5 + 3*4 + 2*3 + 2) / 10
	assert.InDelta(t, 4.0, inc.Last(0), 1e-12)
}

func TestWMA4ConstantPassThrough(t *testing.T) {
	var inc WMA4
	for _, p := range constSeries(10, 42.0) {
		inc.Update(p)
	}
	assert.InDelta(t, 42.0, inc.Last(0), 1e-12)
}

func TestSmoothPrice(t *testing.T) {
	out, err := SmoothPrice([]float64{1, 2, 3, 4, 5})
	require.NoError(t, err)
	require.Len(t, out, 5)
	assert.True(t, math.IsNaN(out[2]))
	assert.InDelta(t, 3.0, out[3], 1e-12)
	assert.InDelta(t, 4.0, out[4], 1e-12)
}

func TestSmoothPriceErrors(t *testing.T) {
	_, err := SmoothPrice(nil)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = SmoothPrice([]float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = SmoothPrice([]float64{1, 2, math.NaN(), 4})
	assert.ErrorIs(t, err, ErrDegenerateInput)

	_, err = SmoothPrice([]float64{1, 2, math.Inf(1), 4})
	assert.ErrorIs(t, err, ErrDegenerateInput)
}
