package indicator

import (
	"math"

	"github.com/c9s/mesa/pkg/datatype/floats"
	"github.com/c9s/mesa/pkg/types"
)

// Parabolic SAR Extended (SAREXT)
// Generalizes SAR with independent acceleration schedules for the long and
// short legs, an optional explicit starting stop, and an offset applied to
// the stop on each reversal.
type SARExt struct {
	// StartValue, when non-zero, is used as the first stop; the starting
	// leg is then chosen by comparing it against the midpoint of the first
	// bar. When zero, direction is inferred from the first two bars.
	StartValue float64

	// OffsetOnReverse widens the stop away from price on each reversal.
	OffsetOnReverse float64

	AFInitLong, AFStepLong, AFMaxLong    float64
	AFInitShort, AFStepShort, AFMaxShort float64

	Values floats.Slice
	Trend  floats.Slice

	AF      float64
	EP      float64
	Falling bool

	sar        float64
	initialSAR float64
	high       *types.Queue
	low        *types.Queue
	started    bool
}

func (inc *SARExt) init() error {
	if inc.AFInitLong == 0 {
		inc.AFInitLong = DefaultSARAcceleration
	}
	if inc.AFStepLong == 0 {
		inc.AFStepLong = DefaultSARAcceleration
	}
	if inc.AFMaxLong == 0 {
		inc.AFMaxLong = DefaultSARMaxAcceleration
	}
	if inc.AFInitShort == 0 {
		inc.AFInitShort = DefaultSARAcceleration
	}
	if inc.AFStepShort == 0 {
		inc.AFStepShort = DefaultSARAcceleration
	}
	if inc.AFMaxShort == 0 {
		inc.AFMaxShort = DefaultSARMaxAcceleration
	}
	if err := inc.validate(); err != nil {
		return err
	}
	inc.high = types.NewQueue(3)
	inc.low = types.NewQueue(3)
	return nil
}

func (inc *SARExt) validate() error {
	if inc.AFInitLong <= 0 || inc.AFStepLong <= 0 || inc.AFMaxLong <= 0 ||
		inc.AFInitShort <= 0 || inc.AFStepShort <= 0 || inc.AFMaxShort <= 0 {
		return wrapParamErr("acceleration factors must be greater than 0")
	}
	if inc.AFInitLong > inc.AFMaxLong || inc.AFInitShort > inc.AFMaxShort {
		return wrapParamErr("initial AF cannot be greater than max AF")
	}
	return nil
}

func (inc *SARExt) Update(high, low float64) error {
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

	if !inc.started {
		if inc.StartValue != 0 {
			// An explicit stop starts the machine on the very first bar.
			inc.start(inc.StartValue, inc.StartValue >= (high+low)/2.0, high, low)
			inc.Values.Push(inc.sar)
			inc.Trend.Push(inc.trend())
			return nil
		}

		if inc.high.Length() < 2 {
			inc.Values.Push(math.NaN())
			inc.Trend.Push(math.NaN())
			return nil
		}

		if inc.high.Last(0) > inc.high.Last(1) {
			inc.start(inc.low.Last(1), false, inc.high.Last(0), inc.low.Last(0))
		} else {
			inc.start(inc.high.Last(1), true, inc.high.Last(0), inc.low.Last(0))
		}
		// Fall through: the bar that settled direction is also the first
		// bar the recurrence runs on.
	}

	sar := inc.sar + inc.AF*(inc.EP-inc.sar)

	if inc.Falling {
		sar = math.Max(sar, math.Max(inc.high.Last(0), inc.high.Last(1)))

		if high >= sar {
			inc.Falling = false
			sar = inc.EP - inc.OffsetOnReverse
			inc.EP = high
			inc.AF = inc.AFInitLong
		} else if low < inc.EP {
			inc.EP = low
			inc.AF = math.Min(inc.AF+inc.AFStepShort, inc.AFMaxShort)
		}
	} else {
		sar = math.Min(sar, math.Min(inc.low.Last(0), inc.low.Last(1)))

		if low <= sar {
			inc.Falling = true
			sar = inc.EP + inc.OffsetOnReverse
			inc.EP = low
			inc.AF = inc.AFInitShort
		} else if high > inc.EP {
			inc.EP = high
			inc.AF = math.Min(inc.AF+inc.AFStepLong, inc.AFMaxLong)
		}
	}

	inc.sar = sar
	inc.Values.Push(sar)
	inc.Trend.Push(inc.trend())
	return nil
}

// start seeds the machine: stop, direction and the first extreme point.
func (inc *SARExt) start(sar float64, falling bool, high, low float64) {
	inc.started = true
	inc.sar = sar
	inc.initialSAR = sar
	inc.Falling = falling
	if falling {
		inc.EP = low
		inc.AF = inc.AFInitShort
	} else {
		inc.EP = high
		inc.AF = inc.AFInitLong
	}
}

func (inc *SARExt) trend() float64 {
	if inc.Falling {
		return -1.0
	}
	return 1.0
}

func (inc *SARExt) Last(i int) float64 {
	return inc.Values.Last(i)
}

func (inc *SARExt) Length() int {
	return len(inc.Values)
}

func (inc *SARExt) Lookback() int {
	return SARLookback
}

// Calculate runs the machine over a whole (high, low) series. Zero-valued
// parameter fields select the standard 0.02/0.02/0.20 schedule for both legs.
func (inc *SARExt) Calculate(high, low []float64) (floats.Slice, error) {
	if err := validateHighLow(high, low); err != nil {
		return nil, err
	}
	if err := validateMinLen(high, SARLookback, "SAREXT"); err != nil {
		return nil, err
	}

	for i := range high {
		if err := inc.Update(high[i], low[i]); err != nil {
			return nil, err
		}
	}

	out := inc.Values
	if math.IsNaN(out[0]) {
		out[0] = inc.initialSAR
	}
	return out, nil
}

// CalculateSARExt runs the extended SAR with the standard schedule and an
// inferred starting direction.
func CalculateSARExt(high, low []float64, startValue, offsetOnReverse float64) (floats.Slice, error) {
	inc := &SARExt{
		StartValue:      startValue,
		OffsetOnReverse: offsetOnReverse,
	}
	return inc.Calculate(high, low)
}
