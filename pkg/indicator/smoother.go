package indicator

import (
	"math"

	"github.com/c9s/mesa/pkg/datatype/floats"
)

// SmootherLookback is the number of leading indices the 4-bar weighted
// smoother leaves undefined.
const SmootherLookback = 3

// WMA4 is the 4-bar triangular-weighted smoother applied to raw price before
// any phase analysis. Weights are {4,3,2,1}/10 with the heaviest weight on
// the most recent bar, which keeps the smoother responsive while damping
// single-bar noise.
//
// Values is index-aligned with the input: the first SmootherLookback entries
// are NaN.
type WMA4 struct {
	Values floats.Slice

	raw floats.Slice
}

func (inc *WMA4) Update(price float64) {
	inc.raw.Push(price)
	if len(inc.raw) > 4 {
		inc.raw = inc.raw[len(inc.raw)-4:]
	}

	if len(inc.raw) < 4 {
		inc.Values.Push(math.NaN())
		return
	}

	v := (4.0*inc.raw.Last(0) + 3.0*inc.raw.Last(1) + 2.0*inc.raw.Last(2) + inc.raw.Last(3)) / 10.0
	inc.Values.Push(v)
}

func (inc *WMA4) Last(i int) float64 {
	return inc.Values.Last(i)
}

func (inc *WMA4) Length() int {
	return len(inc.Values)
}

func (inc *WMA4) Lookback() int {
	return SmootherLookback
}

// SmoothPrice computes the 4-bar weighted smoother over a whole series.
// The output has the same length as the input with NaN before index 3.
func SmoothPrice(prices []float64) (floats.Slice, error) {
	if err := validatePrices(prices, "prices"); err != nil {
		return nil, err
	}
	if err := validateMinLen(prices, SmootherLookback, "smoothed price"); err != nil {
		return nil, err
	}

	var inc WMA4
	for _, p := range prices {
		inc.Update(p)
	}
	return inc.Values, nil
}
