package indicator

import (
	"math"

	"github.com/c9s/mesa/pkg/datatype/floats"
)

// Default tuning for the dominant cycle estimator. The FIR coefficients are
// the standard Hilbert transformer approximation values.
const (
	DefaultMinPeriod       = 6.0
	DefaultMaxPeriod       = 50.0
	DefaultPeriodSmoothing = 0.2

	hilbertCoeffA = 0.0962
	hilbertCoeffB = 0.5769
)

// HilbertLookback is the compounded warm-up of the two cascaded 7-tap FIR
// stages: outputs before this index are dominated by the zero-seeded rings.
const HilbertLookback = 12

// CyclePeriodLookback adds the one extra bar the homodyne discriminator
// needs for a previous I/Q pair.
const CyclePeriodLookback = HilbertLookback + 1

// HilbertTransform decomposes a price series into in-phase and quadrature
// components and estimates the dominant cycle period from them.
//
// The filter coefficients are scaled by the previous period estimate
// (0.075*prevPeriod + 0.54), so the effective lag of the transformer adapts
// to the last known cycle length. The feedback is kept stable by a
// three-stage policy on each raw period estimate: a step clamp to
// [0.67, 1.5] x prevPeriod, an absolute clamp to [MinPeriod, MaxPeriod], and
// an exponential smoothing pass at PeriodSmoothing weight. Dropping any of
// the three stages makes the estimator either unstable or unresponsive.
//
// All internal series advance strictly one bar at a time; an instance must
// never be shared across two price series.
type HilbertTransform struct {
	// MinPeriod and MaxPeriod bound the published period estimate,
	// defaults 6 and 50 bars.
	MinPeriod, MaxPeriod float64

	// PeriodSmoothing is the exponential smoothing weight applied to the
	// clamped period estimate, default 0.2.
	PeriodSmoothing float64

	// Period is the published dominant cycle period per bar.
	Period floats.Slice

	// SmoothPeriod is the slower 0.33/0.67 second smoothing pass over
	// Period, used by the trendline window and the trend-mode rule.
	SmoothPeriod floats.Slice

	// Phase is the raw instantaneous phase atan2(Q1, I1) in degrees.
	Phase floats.Slice

	// Smooth is the 4-bar weighted price smoothing feeding the detrender.
	Smooth floats.Slice

	// I and Q are the smoothed in-phase/quadrature pair after phasor
	// addition (the homodyne inputs).
	I, Q floats.Slice

	prices    floats.Slice
	detrender floats.Slice
	i1, q1    floats.Slice
	re, im    floats.Slice
}

func (ht *HilbertTransform) init() {
	if ht.MinPeriod == 0 {
		ht.MinPeriod = DefaultMinPeriod
	}
	if ht.MaxPeriod == 0 {
		ht.MaxPeriod = DefaultMaxPeriod
	}
	if ht.PeriodSmoothing == 0 {
		ht.PeriodSmoothing = DefaultPeriodSmoothing
	}
}

// fir applies the 7-tap Hilbert transformer to the tail of s, scaled by the
// period-derived adjustment.
func fir(s floats.Slice, adjust float64) float64 {
	return (hilbertCoeffA*s.Last(0) + hilbertCoeffB*s.Last(2) -
		hilbertCoeffB*s.Last(4) - hilbertCoeffA*s.Last(6)) * adjust
}

func (ht *HilbertTransform) Update(price float64) {
	if ht.prices == nil {
		ht.init()
	}

	ht.prices.Push(price)

	// The rings are zero-seeded: the first 6 bars only accumulate history.
	if len(ht.prices) <= 6 {
		ht.Smooth.Push(0)
		ht.detrender.Push(0)
		ht.i1.Push(0)
		ht.q1.Push(0)
		ht.I.Push(0)
		ht.Q.Push(0)
		ht.re.Push(0)
		ht.im.Push(0)
		// Seeding the feedback at the lower band keeps every published
		// period inside [MinPeriod, MaxPeriod], warm-up included.
		ht.Period.Push(ht.MinPeriod)
		ht.SmoothPeriod.Push(ht.MinPeriod)
		ht.Phase.Push(0)
		return
	}

	prevPeriod := ht.Period.Last(0)
	adjust := 0.075*prevPeriod + 0.54

	ht.Smooth.Push((4.0*ht.prices.Last(0) + 3.0*ht.prices.Last(1) +
		2.0*ht.prices.Last(2) + ht.prices.Last(3)) / 10.0)

	ht.detrender.Push(fir(ht.Smooth, adjust))

	// Quadrature from the detrender, in-phase is the detrender delayed by
	// a quarter of the nominal cycle.
	q1 := fir(ht.detrender, adjust)
	i1 := ht.detrender.Last(3)
	ht.q1.Push(q1)
	ht.i1.Push(i1)

	// Advance the phase of I1 and Q1 by 90 degrees, then phasor-add.
	ji := fir(ht.i1, adjust)
	jq := fir(ht.q1, adjust)

	i2 := i1 - jq
	q2 := q1 + ji

	// Smooth I/Q before the discriminator sees them.
	i2 = 0.2*i2 + 0.8*ht.I.Last(0)
	q2 = 0.2*q2 + 0.8*ht.Q.Last(0)

	// Homodyne discriminator: complex multiply of the current pair with the
	// conjugate of the previous one.
	re := i2*ht.I.Last(0) + q2*ht.Q.Last(0)
	im := i2*ht.Q.Last(0) - q2*ht.I.Last(0)
	re = 0.2*re + 0.8*ht.re.Last(0)
	im = 0.2*im + 0.8*ht.im.Last(0)

	ht.I.Push(i2)
	ht.Q.Push(q2)
	ht.re.Push(re)
	ht.im.Push(im)

	// A zero denominator means no measurable rotation this bar; reuse the
	// previous estimate instead of failing.
	period := prevPeriod
	if im != 0 && re != 0 {
		period = 2.0 * math.Pi / math.Atan2(im, re)
	}

	if period > 1.5*prevPeriod {
		period = 1.5 * prevPeriod
	}
	if period < 0.67*prevPeriod {
		period = 0.67 * prevPeriod
	}
	if period < ht.MinPeriod {
		period = ht.MinPeriod
	}
	if period > ht.MaxPeriod {
		period = ht.MaxPeriod
	}

	period = ht.PeriodSmoothing*period + (1-ht.PeriodSmoothing)*prevPeriod
	ht.Period.Push(period)
	ht.SmoothPeriod.Push(0.33*period + 0.67*ht.SmoothPeriod.Last(0))

	phase := ht.Phase.Last(0)
	if i1 != 0 {
		phase = math.Atan2(q1, i1) * 180.0 / math.Pi
	}
	ht.Phase.Push(phase)
}

func (ht *HilbertTransform) Length() int {
	return len(ht.prices)
}

func (ht *HilbertTransform) Lookback() int {
	return HilbertLookback
}
