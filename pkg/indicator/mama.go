package indicator

import (
	"math"

	"github.com/c9s/mesa/pkg/datatype/floats"
)

// MESA Adaptive Moving Average / MAMA
// Refer: https://www.mesasoftware.com/papers/MESAAdaptiveMovingAverage.pdf
// MAMA ties its smoothing constant to the measured rate of phase change of
// the dominant cycle: the faster the phase advances, the closer alpha moves
// to FastLimit. FAMA is a half-alpha follower of MAMA; the pair crossing is
// the classic entry/exit signal.
const (
	DefaultFastLimit = 0.5
	DefaultSlowLimit = 0.05

	MAMALookback = CyclePeriodLookback
)

// MAMA is index-aligned with its input; Values and FAMA hold NaN before the
// upstream Hilbert warm-up has elapsed.
type MAMA struct {
	// FastLimit and SlowLimit bound the adaptive alpha, defaults 0.5 and
	// 0.05.
	FastLimit, SlowLimit float64

	MinPeriod, MaxPeriod float64
	PeriodSmoothing      float64

	Values floats.Slice // MAMA
	FAMA   floats.Slice

	ht     *HilbertTransform
	seeded bool
}

func (inc *MAMA) Update(price float64) {
	if inc.ht == nil {
		if inc.FastLimit == 0 {
			inc.FastLimit = DefaultFastLimit
		}
		if inc.SlowLimit == 0 {
			inc.SlowLimit = DefaultSlowLimit
		}
		inc.ht = &HilbertTransform{
			MinPeriod:       inc.MinPeriod,
			MaxPeriod:       inc.MaxPeriod,
			PeriodSmoothing: inc.PeriodSmoothing,
		}
	}

	inc.ht.Update(price)
	if inc.ht.Length() <= MAMALookback {
		inc.Values.Push(math.NaN())
		inc.FAMA.Push(math.NaN())
		return
	}

	if !inc.seeded {
		// Seed both averages with the first valid smoothed price so the
		// recurrence starts on the filtered series, not on raw noise.
		inc.seeded = true
		seed := inc.ht.Smooth.Last(0)
		inc.Values.Push(seed)
		inc.FAMA.Push(seed)
		return
	}

	inc.Values.Push(alphaBlend(inc.alpha(), price, inc.Values.Last(0)))
	inc.FAMA.Push(alphaBlend(0.5*inc.alpha(), inc.Values.Last(0), inc.FAMA.Last(0)))
}

// alpha derives the smoothing constant from the per-bar phase advance,
// clamped into [SlowLimit, FastLimit].
func (inc *MAMA) alpha() float64 {
	deltaPhase := inc.ht.Phase.Last(1) - inc.ht.Phase.Last(0)
	if deltaPhase < 1.0 {
		deltaPhase = 1.0
	}

	alpha := inc.FastLimit / deltaPhase
	if alpha < inc.SlowLimit {
		alpha = inc.SlowLimit
	}
	if alpha > inc.FastLimit {
		alpha = inc.FastLimit
	}
	return alpha
}

func alphaBlend(alpha, value, prev float64) float64 {
	return alpha*value + (1.0-alpha)*prev
}

func (inc *MAMA) Last(i int) float64 {
	return inc.Values.Last(i)
}

func (inc *MAMA) Length() int {
	return len(inc.Values)
}

func (inc *MAMA) Lookback() int {
	return MAMALookback
}

func validateLimits(fastLimit, slowLimit float64) error {
	if fastLimit <= 0 || slowLimit <= 0 {
		return wrapParamErr("limits must be greater than 0")
	}
	if fastLimit > 1.0 || slowLimit > 1.0 {
		return wrapParamErr("limits must be less than or equal to 1")
	}
	if fastLimit <= slowLimit {
		return wrapParamErr("fast limit must be greater than slow limit")
	}
	return nil
}

// CalculateMAMA computes the MAMA/FAMA pair over a whole price series. Pass
// zero limits to use the 0.5/0.05 defaults.
func CalculateMAMA(prices []float64, fastLimit, slowLimit float64) (mama, fama floats.Slice, err error) {
	if fastLimit == 0 {
		fastLimit = DefaultFastLimit
	}
	if slowLimit == 0 {
		slowLimit = DefaultSlowLimit
	}
	if err := validateLimits(fastLimit, slowLimit); err != nil {
		return nil, nil, err
	}
	if err := validatePrices(prices, "prices"); err != nil {
		return nil, nil, err
	}
	if err := validateMinLen(prices, MAMALookback, "MAMA"); err != nil {
		return nil, nil, err
	}

	inc := &MAMA{FastLimit: fastLimit, SlowLimit: slowLimit}
	for _, p := range prices {
		inc.Update(p)
	}
	return inc.Values, inc.FAMA, nil
}
