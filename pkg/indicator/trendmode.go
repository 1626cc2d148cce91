package indicator

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/c9s/mesa/pkg/datatype/floats"
)

// TrendModeLookback equals the phase lookback: the classifier consumes the
// sine pair, the unwrapped phase and the trendline, all valid from there.
const TrendModeLookback = DCPhaseLookback

// Default thresholds of the trend/cycle rule. Published formulations of the
// rule differ; these are deliberate knobs rather than constants.
const (
	DefaultTrendlineDeviation = 0.015
	DefaultPhaseRateFloor     = 0.67
)

// TrendMode classifies each bar as trending (1) or cycling (0).
//
// The rule: every sine/lead-sine crossing opens a cycle-mode hold of half
// the smoothed dominant cycle period. The hold is overridden back to trend
// mode when price departs from the instantaneous trendline by more than
// TrendlineDeviation, or when the unwrapped phase advances at less than
// PhaseRateFloor of the rate a full cycle would imply (a stalling phase is
// the signature of a trend). Outside a hold the bar is trending.
type TrendMode struct {
	// TrendlineDeviation is the relative price departure from the
	// trendline that forces trend mode, default 0.015.
	TrendlineDeviation float64

	// PhaseRateFloor is the fraction of the expected phase rate below
	// which the cycle is considered stalled, default 0.67.
	PhaseRateFloor float64

	// TrendHoldBars, when non-zero, fixes the cycle-mode hold length after a
	// crossing instead of tracking half the smoothed period.
	TrendHoldBars int

	MinPeriod, MaxPeriod float64
	PeriodSmoothing      float64

	Values floats.Slice // 1 = trend, 0 = cycle

	ht       *HilbertTransform
	unwrap   PhaseUnwrapper
	itrend   WMA4
	sine     floats.Slice
	leadSine floats.Slice

	barsSinceCross int
}

func (inc *TrendMode) Update(price float64) {
	if inc.ht == nil {
		if inc.TrendlineDeviation == 0 {
			inc.TrendlineDeviation = DefaultTrendlineDeviation
		}
		if inc.PhaseRateFloor == 0 {
			inc.PhaseRateFloor = DefaultPhaseRateFloor
		}
		inc.ht = &HilbertTransform{
			MinPeriod:       inc.MinPeriod,
			MaxPeriod:       inc.MaxPeriod,
			PeriodSmoothing: inc.PeriodSmoothing,
		}
		inc.barsSinceCross = math.MaxInt32
	}

	inc.ht.Update(price)

	phase := inc.ht.Phase.Last(0)
	rad := phase * math.Pi / 180.0
	inc.unwrap.Update(phase)
	inc.sine.Push(math.Sin(rad))
	inc.leadSine.Push(math.Sin(rad + math.Pi/4.0))
	inc.itrend.Update(cycleAverage(inc.ht))

	if inc.ht.Length() <= TrendModeLookback {
		inc.Values.Push(math.NaN())
		return
	}

	if floats.Crossed(inc.sine, inc.leadSine) {
		inc.barsSinceCross = 0
	} else if inc.barsSinceCross < math.MaxInt32 {
		inc.barsSinceCross++
	}

	smoothPeriod := inc.ht.SmoothPeriod.Last(0)

	hold := 0.5 * smoothPeriod
	if inc.TrendHoldBars > 0 {
		hold = float64(inc.TrendHoldBars)
	}

	trend := 1.0
	if float64(inc.barsSinceCross) < hold {
		trend = 0.0
	}

	if trendline := inc.itrend.Last(0); !math.IsNaN(trendline) && trendline != 0 {
		if math.Abs(price/trendline-1.0) >= inc.TrendlineDeviation {
			trend = 1.0
		}
	}

	if inc.phaseStalled(smoothPeriod) {
		trend = 1.0
	}

	inc.Values.Push(trend)
}

// phaseStalled regresses the unwrapped phase over the last half cycle and
// compares the fitted advance per bar against the rate the dominant cycle
// implies.
func (inc *TrendMode) phaseStalled(smoothPeriod float64) bool {
	if smoothPeriod <= 0 {
		return false
	}

	n := int(smoothPeriod / 2.0)
	if n < 4 {
		n = 4
	}
	window := inc.unwrap.Values.Tail(n)
	if len(window) < n {
		return false
	}

	xs := make([]float64, len(window))
	for i := range xs {
		xs[i] = float64(i)
	}

	_, slope := stat.LinearRegression(xs, window, nil, false)
	expected := 360.0 / smoothPeriod
	return math.Abs(slope) < inc.PhaseRateFloor*expected
}

func (inc *TrendMode) Last(i int) float64 {
	return inc.Values.Last(i)
}

func (inc *TrendMode) Length() int {
	return len(inc.Values)
}

func (inc *TrendMode) Lookback() int {
	return TrendModeLookback
}

// HTTrendMode classifies a whole price series into trend (1) and cycle (0)
// bars with the default thresholds.
func HTTrendMode(prices []float64, minPeriod, maxPeriod float64) (floats.Slice, error) {
	if err := validatePeriodBounds(minPeriod, maxPeriod); err != nil {
		return nil, err
	}
	if err := validatePrices(prices, "prices"); err != nil {
		return nil, err
	}
	if err := validateMinLen(prices, TrendModeLookback, "HTTrendMode"); err != nil {
		return nil, err
	}

	inc := &TrendMode{MinPeriod: minPeriod, MaxPeriod: maxPeriod}
	for _, p := range prices {
		inc.Update(p)
	}
	return inc.Values, nil
}
