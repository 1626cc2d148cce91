package indicator

import (
	"math"

	"github.com/c9s/mesa/pkg/datatype/floats"
	"github.com/c9s/mesa/pkg/types"
)

// Parabolic SAR (Stop and Reverse)
// Refer: https://www.investopedia.com/terms/p/parabolicindicator.asp
// A trailing stop that accelerates toward the extreme point of the current
// trend leg. While long the stop rises by AF*(EP-SAR) each bar but may never
// enter the range of the last two bars; when price crosses the stop the
// machine reverses, the stop jumps to the old extreme point and the
// acceleration factor resets.
const (
	DefaultSARAcceleration    = 0.02
	DefaultSARMaxAcceleration = 0.20

	// SARLookback: direction is inferred from the first two bars.
	SARLookback = 1
)

// SAR carries the stop-and-reverse state machine over (high, low) pairs.
// Values is index-aligned with the input; Values[0] is NaN in streaming use
// because the initial direction needs two bars. Trend holds +1 while long
// and -1 while short.
type SAR struct {
	// Acceleration is both the initial AF and the per-extreme increment,
	// default 0.02. MaxAcceleration caps the AF, default 0.20.
	Acceleration    float64
	MaxAcceleration float64

	Values floats.Slice
	Trend  floats.Slice

	AF      float64
	EP      float64
	Falling bool

	sar  float64
	high *types.Queue
	low  *types.Queue
}

func (inc *SAR) init() error {
	if inc.Acceleration == 0 {
		inc.Acceleration = DefaultSARAcceleration
	}
	if inc.MaxAcceleration == 0 {
		inc.MaxAcceleration = DefaultSARMaxAcceleration
	}
	if err := validateSARParams(inc.Acceleration, inc.MaxAcceleration); err != nil {
		return err
	}
	inc.high = types.NewQueue(3)
	inc.low = types.NewQueue(3)
	return nil
}

// Update advances the state machine by one bar. A bar with high < low or a
// non-finite value breaks the recurrence and is rejected.
func (inc *SAR) Update(high, low float64) error {
	if inc.high == nil {
		if err := inc.init(); err != nil {
			return err
		}
	}

	if !isFinite(high) || !isFinite(low) || high < low {
		return wrapBarErr(high, low)
	}

	inc.high.Update(high)
	inc.low.Update(low)

	switch inc.high.Length() {
	case 1:
		inc.Values.Push(math.NaN())
		inc.Trend.Push(math.NaN())
		return nil

	case 2:
		// Two bars settle the starting leg: rising highs open long with the
		// stop under the first bar, otherwise short above it.
		if inc.high.Last(0) > inc.high.Last(1) {
			inc.Falling = false
			inc.sar = inc.low.Last(1)
			inc.EP = inc.high.Last(0)
		} else {
			inc.Falling = true
			inc.sar = inc.high.Last(1)
			inc.EP = inc.low.Last(0)
		}
		inc.AF = inc.Acceleration
		inc.Values.Push(inc.sar)
		inc.Trend.Push(inc.trend())
		return nil
	}

	sar := inc.sar + inc.AF*(inc.EP-inc.sar)

	if inc.Falling {
		// The stop may not drop below the prior two highs.
		sar = math.Max(sar, math.Max(inc.high.Last(0), inc.high.Last(1)))

		if high >= sar {
			inc.Falling = false
			sar = inc.EP
			inc.EP = high
			inc.AF = inc.Acceleration
		} else if low < inc.EP {
			inc.EP = low
			inc.AF = math.Min(inc.AF+inc.Acceleration, inc.MaxAcceleration)
		}
	} else {
		// The stop may not rise above the prior two lows.
		sar = math.Min(sar, math.Min(inc.low.Last(0), inc.low.Last(1)))

		if low <= sar {
			inc.Falling = true
			sar = inc.EP
			inc.EP = low
			inc.AF = inc.Acceleration
		} else if high > inc.EP {
			inc.EP = high
			inc.AF = math.Min(inc.AF+inc.Acceleration, inc.MaxAcceleration)
		}
	}

	inc.sar = sar
	inc.Values.Push(sar)
	inc.Trend.Push(inc.trend())
	return nil
}

func (inc *SAR) trend() float64 {
	if inc.Falling {
		return -1.0
	}
	return 1.0
}

func (inc *SAR) Last(i int) float64 {
	return inc.Values.Last(i)
}

func (inc *SAR) Length() int {
	return len(inc.Values)
}

func (inc *SAR) Lookback() int {
	return SARLookback
}

func validateSARParams(acceleration, maxAcceleration float64) error {
	if acceleration <= 0 || maxAcceleration <= 0 {
		return wrapParamErr("acceleration factors must be greater than 0")
	}
	if acceleration > maxAcceleration {
		return wrapParamErr("acceleration cannot be greater than max acceleration")
	}
	return nil
}

// CalculateSAR computes the parabolic SAR over a whole (high, low) series.
// Pass zero parameters to use the 0.02/0.20 defaults. The first output is
// backfilled with the initial stop once the second bar settles direction.
func CalculateSAR(high, low []float64, acceleration, maxAcceleration float64) (floats.Slice, error) {
	if acceleration == 0 {
		acceleration = DefaultSARAcceleration
	}
	if maxAcceleration == 0 {
		maxAcceleration = DefaultSARMaxAcceleration
	}
	if err := validateSARParams(acceleration, maxAcceleration); err != nil {
		return nil, err
	}
	if err := validateHighLow(high, low); err != nil {
		return nil, err
	}
	if err := validateMinLen(high, SARLookback, "SAR"); err != nil {
		return nil, err
	}

	inc := &SAR{Acceleration: acceleration, MaxAcceleration: maxAcceleration}
	for i := range high {
		if err := inc.Update(high[i], low[i]); err != nil {
			return nil, err
		}
	}

	out := inc.Values
	out[0] = out[1]
	return out, nil
}

// SARTrend labels each bar +1 when the stop sits below the bar range, -1
// when above, and 0 while the stop is inside the range (reversal bar).
func SARTrend(high, low []float64, sar floats.Slice) (floats.Slice, error) {
	if err := validateHighLow(high, low); err != nil {
		return nil, err
	}
	if len(sar) != len(high) {
		return nil, wrapParamErr("sar series length must match the bar series")
	}

	trend := make(floats.Slice, len(sar))
	for i, v := range sar {
		switch {
		case math.IsNaN(v):
			trend[i] = math.NaN()
		case v < low[i]:
			trend[i] = 1.0
		case v > high[i]:
			trend[i] = -1.0
		default:
			trend[i] = 0.0
		}
	}
	return trend, nil
}
