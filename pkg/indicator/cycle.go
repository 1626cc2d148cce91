package indicator

import (
	"math"

	"github.com/c9s/mesa/pkg/datatype/floats"
)

// Dominant Cycle Period
// Refer: https://www.mesasoftware.com/papers/MESAAdaptiveMovingAverage.pdf
// The homodyne discriminator measures the phase rotation between consecutive
// in-phase/quadrature pairs and converts it into the length, in bars, of the
// single periodicity that best explains recent price oscillation.
//
// Values is index-aligned with the input; entries before the warm-up are NaN.
type CyclePeriod struct {
	// MinPeriod, MaxPeriod and PeriodSmoothing override the estimator
	// defaults (6, 50, 0.2) when non-zero.
	MinPeriod, MaxPeriod float64
	PeriodSmoothing      float64

	Values floats.Slice

	ht *HilbertTransform
}

func (inc *CyclePeriod) Update(price float64) {
	if inc.ht == nil {
		inc.ht = &HilbertTransform{
			MinPeriod:       inc.MinPeriod,
			MaxPeriod:       inc.MaxPeriod,
			PeriodSmoothing: inc.PeriodSmoothing,
		}
	}

	inc.ht.Update(price)
	if inc.ht.Length() <= CyclePeriodLookback {
		inc.Values.Push(math.NaN())
		return
	}

	inc.Values.Push(inc.ht.Period.Last(0))
}

func (inc *CyclePeriod) Last(i int) float64 {
	return inc.Values.Last(i)
}

func (inc *CyclePeriod) Length() int {
	return len(inc.Values)
}

func (inc *CyclePeriod) Lookback() int {
	return CyclePeriodLookback
}

func validatePeriodBounds(minPeriod, maxPeriod float64) error {
	if minPeriod < 0 || maxPeriod < 0 {
		return wrapParamErr("period bounds must not be negative")
	}
	if minPeriod != 0 && maxPeriod != 0 && maxPeriod <= minPeriod {
		return wrapParamErr("max period must be greater than min period")
	}
	return nil
}

// HTDCPeriod computes the dominant cycle period over a whole price series.
// Pass zero bounds to use the [6, 50] defaults.
func HTDCPeriod(prices []float64, minPeriod, maxPeriod float64) (floats.Slice, error) {
	if err := validatePeriodBounds(minPeriod, maxPeriod); err != nil {
		return nil, err
	}
	if err := validatePrices(prices, "prices"); err != nil {
		return nil, err
	}
	if err := validateMinLen(prices, CyclePeriodLookback, "HTDCPeriod"); err != nil {
		return nil, err
	}

	inc := &CyclePeriod{MinPeriod: minPeriod, MaxPeriod: maxPeriod}
	for _, p := range prices {
		inc.Update(p)
	}
	return inc.Values, nil
}
