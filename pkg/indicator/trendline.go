package indicator

import (
	"math"

	"github.com/c9s/mesa/pkg/datatype/floats"
)

// TrendlineLookback matches the cycle estimator warm-up: the averaging
// window tracks the smoothed dominant cycle period, so the trendline is only
// as valid as the period behind it.
const TrendlineLookback = CyclePeriodLookback

// Trendline is the instantaneous trendline: a moving average of price whose
// window is the current smoothed dominant cycle period, finished with the
// same 4-bar weighted smoothing the price filter uses. In cycle mode price
// oscillates around it; a sustained departure is the trend-mode signal the
// classifier keys on.
type Trendline struct {
	MinPeriod, MaxPeriod float64
	PeriodSmoothing      float64

	Values floats.Slice

	ht     *HilbertTransform
	itrend WMA4
}

func (inc *Trendline) Update(price float64) {
	if inc.ht == nil {
		inc.ht = &HilbertTransform{
			MinPeriod:       inc.MinPeriod,
			MaxPeriod:       inc.MaxPeriod,
			PeriodSmoothing: inc.PeriodSmoothing,
		}
	}

	inc.ht.Update(price)
	raw := cycleAverage(inc.ht)
	inc.itrend.Update(raw)

	if inc.ht.Length() <= TrendlineLookback {
		inc.Values.Push(math.NaN())
		return
	}

	v := inc.itrend.Last(0)
	if math.IsNaN(v) {
		v = raw
	}
	inc.Values.Push(v)
}

// cycleAverage averages the raw price over the current smoothed dominant
// cycle period, clamped to the available history.
func cycleAverage(ht *HilbertTransform) float64 {
	window := int(ht.SmoothPeriod.Last(0) + 0.5)
	if window < 1 {
		window = 1
	}
	if window > ht.prices.Length() {
		window = ht.prices.Length()
	}
	return ht.prices.Tail(window).Mean()
}

func (inc *Trendline) Last(i int) float64 {
	return inc.Values.Last(i)
}

func (inc *Trendline) Length() int {
	return len(inc.Values)
}

func (inc *Trendline) Lookback() int {
	return TrendlineLookback
}

// HTTrendline computes the instantaneous trendline over a whole price
// series.
func HTTrendline(prices []float64, minPeriod, maxPeriod float64) (floats.Slice, error) {
	if err := validatePeriodBounds(minPeriod, maxPeriod); err != nil {
		return nil, err
	}
	if err := validatePrices(prices, "prices"); err != nil {
		return nil, err
	}
	if err := validateMinLen(prices, TrendlineLookback, "HTTrendline"); err != nil {
		return nil, err
	}

	inc := &Trendline{MinPeriod: minPeriod, MaxPeriod: maxPeriod}
	for _, p := range prices {
		inc.Update(p)
	}
	return inc.Values, nil
}
