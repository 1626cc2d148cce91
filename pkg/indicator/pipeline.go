package indicator

import (
	"github.com/c9s/mesa/pkg/datatype/floats"
)

// Lookbacker is implemented by every indicator in this package: Lookback
// reports how many leading outputs are undefined for lack of history.
type Lookbacker interface {
	Lookback() int
}

// CombinedLookback returns the warm-up requirement of a chain of
// indicators: the largest individual lookback wins.
func CombinedLookback(incs ...Lookbacker) int {
	max := 0
	for _, inc := range incs {
		if lb := inc.Lookback(); lb > max {
			max = lb
		}
	}
	return max
}

// Pipeline runs the whole cycle-adaptive family over one series with
// uniform warm-up handling: every output is index-aligned with the input
// and NaN-filled before its first valid index. A Pipeline value holds
// configuration only; each Run owns fresh state, so independent series can
// run concurrently from the same Pipeline.
type Pipeline struct {
	FastLimit, SlowLimit float64
	MinPeriod, MaxPeriod float64
	PeriodSmoothing      float64

	TrendlineDeviation float64
	PhaseRateFloor     float64
	TrendHoldBars      int

	SARAcceleration    float64
	SARMaxAcceleration float64
}

// Report carries the per-index outputs of the price-driven indicators.
type Report struct {
	SmoothedPrice floats.Slice
	Period        floats.Slice
	Phase         floats.Slice
	Unwrapped     floats.Slice
	Sine          floats.Slice
	LeadSine      floats.Slice
	MAMA          floats.Slice
	FAMA          floats.Slice
	Trendline     floats.Slice
	TrendMode     floats.Slice

	// FirstValid is the first index at which every output above is
	// defined.
	FirstValid int
}

// BarReport carries the outputs of the (high, low) driven indicators.
type BarReport struct {
	SAR      floats.Slice
	SARTrend floats.Slice

	FirstValid int
}

// Run computes the price-driven indicator family.
func (p *Pipeline) Run(prices []float64) (*Report, error) {
	fastLimit, slowLimit := p.FastLimit, p.SlowLimit
	if fastLimit == 0 {
		fastLimit = DefaultFastLimit
	}
	if slowLimit == 0 {
		slowLimit = DefaultSlowLimit
	}
	if err := validateLimits(fastLimit, slowLimit); err != nil {
		return nil, err
	}
	if err := validatePeriodBounds(p.MinPeriod, p.MaxPeriod); err != nil {
		return nil, err
	}
	if err := validatePrices(prices, "prices"); err != nil {
		return nil, err
	}

	smoother := &WMA4{}
	period := &CyclePeriod{
		MinPeriod:       p.MinPeriod,
		MaxPeriod:       p.MaxPeriod,
		PeriodSmoothing: p.PeriodSmoothing,
	}
	phase := &DCPhase{
		MinPeriod:       p.MinPeriod,
		MaxPeriod:       p.MaxPeriod,
		PeriodSmoothing: p.PeriodSmoothing,
	}
	mama := &MAMA{
		FastLimit:       fastLimit,
		SlowLimit:       slowLimit,
		MinPeriod:       p.MinPeriod,
		MaxPeriod:       p.MaxPeriod,
		PeriodSmoothing: p.PeriodSmoothing,
	}
	trendline := &Trendline{
		MinPeriod:       p.MinPeriod,
		MaxPeriod:       p.MaxPeriod,
		PeriodSmoothing: p.PeriodSmoothing,
	}
	trendMode := &TrendMode{
		TrendlineDeviation: p.TrendlineDeviation,
		PhaseRateFloor:     p.PhaseRateFloor,
		TrendHoldBars:      p.TrendHoldBars,
		MinPeriod:          p.MinPeriod,
		MaxPeriod:          p.MaxPeriod,
		PeriodSmoothing:    p.PeriodSmoothing,
	}

	firstValid := CombinedLookback(smoother, period, phase, mama, trendline, trendMode)
	if err := validateMinLen(prices, firstValid, "pipeline"); err != nil {
		return nil, err
	}

	for _, v := range prices {
		smoother.Update(v)
		period.Update(v)
		phase.Update(v)
		mama.Update(v)
		trendline.Update(v)
		trendMode.Update(v)
	}

	return &Report{
		SmoothedPrice: smoother.Values,
		Period:        period.Values,
		Phase:         phase.Values,
		Unwrapped:     phase.Unwrap.Values,
		Sine:          phase.Sine,
		LeadSine:      phase.LeadSine,
		MAMA:          mama.Values,
		FAMA:          mama.FAMA,
		Trendline:     trendline.Values,
		TrendMode:     trendMode.Values,
		FirstValid:    firstValid,
	}, nil
}

// RunBars computes the (high, low) driven indicator family.
func (p *Pipeline) RunBars(high, low []float64) (*BarReport, error) {
	sar, err := CalculateSAR(high, low, p.SARAcceleration, p.SARMaxAcceleration)
	if err != nil {
		return nil, err
	}

	trend, err := SARTrend(high, low, sar)
	if err != nil {
		return nil, err
	}

	return &BarReport{
		SAR:        sar,
		SARTrend:   trend,
		FirstValid: SARLookback,
	}, nil
}
