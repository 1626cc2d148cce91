package indicator

import (
	"math"

	"github.com/c9s/mesa/pkg/datatype/floats"
)

// DCPhaseLookback covers the Hilbert warm-up plus the previous-phase sample
// the unwrapping and the sine outputs depend on.
const DCPhaseLookback = HilbertLookback + 1

// PhaseUnwrapper turns a sawtooth instantaneous phase stream (degrees,
// wrapping at +/-180) into a continuously accumulating phase. A raw delta
// larger than 180 degrees in magnitude is treated as a wraparound and
// corrected by 360.
type PhaseUnwrapper struct {
	Values floats.Slice // unwrapped phase in degrees

	prevRaw float64
	seeded  bool
}

func (u *PhaseUnwrapper) Update(phase float64) {
	if math.IsNaN(phase) {
		u.Values.Push(math.NaN())
		return
	}

	if !u.seeded {
		u.seeded = true
		u.prevRaw = phase
		u.Values.Push(phase)
		return
	}

	delta := phase - u.prevRaw
	for delta > 180.0 {
		delta -= 360.0
	}
	for delta < -180.0 {
		delta += 360.0
	}

	base := u.Values.Last(0)
	if math.IsNaN(base) {
		base = u.prevRaw
	}

	u.prevRaw = phase
	u.Values.Push(base + delta)
}

func (u *PhaseUnwrapper) Last(i int) float64 {
	return u.Values.Last(i)
}

func (u *PhaseUnwrapper) Length() int {
	return len(u.Values)
}

// DCPhase publishes the instantaneous phase of the dominant cycle in
// degrees, both raw (sawtooth) and unwrapped, plus the derived sine-wave
// pair. LeadSine leads the sine output by 45 degrees; their crossings mark
// cycle turns.
type DCPhase struct {
	MinPeriod, MaxPeriod float64
	PeriodSmoothing      float64

	Values   floats.Slice // raw phase, degrees
	Unwrap   PhaseUnwrapper
	Sine     floats.Slice
	LeadSine floats.Slice

	ht *HilbertTransform
}

func (inc *DCPhase) Update(price float64) {
	if inc.ht == nil {
		inc.ht = &HilbertTransform{
			MinPeriod:       inc.MinPeriod,
			MaxPeriod:       inc.MaxPeriod,
			PeriodSmoothing: inc.PeriodSmoothing,
		}
	}

	inc.ht.Update(price)
	if inc.ht.Length() <= DCPhaseLookback {
		inc.Values.Push(math.NaN())
		inc.Unwrap.Update(math.NaN())
		inc.Sine.Push(math.NaN())
		inc.LeadSine.Push(math.NaN())
		return
	}

	phase := inc.ht.Phase.Last(0)
	inc.Values.Push(phase)
	inc.Unwrap.Update(phase)

	rad := phase * math.Pi / 180.0
	inc.Sine.Push(math.Sin(rad))
	inc.LeadSine.Push(math.Sin(rad + math.Pi/4.0))
}

func (inc *DCPhase) Last(i int) float64 {
	return inc.Values.Last(i)
}

func (inc *DCPhase) Length() int {
	return len(inc.Values)
}

func (inc *DCPhase) Lookback() int {
	return DCPhaseLookback
}

// HTDCPhase computes the raw dominant cycle phase in degrees over a whole
// price series.
func HTDCPhase(prices []float64, minPeriod, maxPeriod float64) (floats.Slice, error) {
	inc, err := runDCPhase(prices, minPeriod, maxPeriod)
	if err != nil {
		return nil, err
	}
	return inc.Values, nil
}

// HTSine computes the sine and lead-sine pair of the dominant cycle phase
// over a whole price series.
func HTSine(prices []float64, minPeriod, maxPeriod float64) (sine, leadSine floats.Slice, err error) {
	inc, err := runDCPhase(prices, minPeriod, maxPeriod)
	if err != nil {
		return nil, nil, err
	}
	return inc.Sine, inc.LeadSine, nil
}

func runDCPhase(prices []float64, minPeriod, maxPeriod float64) (*DCPhase, error) {
	if err := validatePeriodBounds(minPeriod, maxPeriod); err != nil {
		return nil, err
	}
	if err := validatePrices(prices, "prices"); err != nil {
		return nil, err
	}
	if err := validateMinLen(prices, DCPhaseLookback, "HTDCPhase"); err != nil {
		return nil, err
	}

	inc := &DCPhase{MinPeriod: minPeriod, MaxPeriod: maxPeriod}
	for _, p := range prices {
		inc.Update(p)
	}
	return inc, nil
}
