package indicator

import (
	"math"

	"github.com/c9s/mesa/pkg/datatype/floats"
)

// Fixed-window moving averages backing the MAType dispatch. These are plain
// per-point formulas; the adaptive machinery lives in mama.go and friends.

func validateWindow(window int) error {
	if window <= 0 {
		return wrapParamErr("window must be greater than 0")
	}
	return nil
}

func CalculateSMA(prices []float64, window int) (floats.Slice, error) {
	if err := validateWindow(window); err != nil {
		return nil, err
	}
	if err := validateMinLen(prices, window-1, "SMA"); err != nil {
		return nil, err
	}

	out := floats.Fill(len(prices), math.NaN())
	var sum float64
	for i, p := range prices {
		sum += p
		if i >= window {
			sum -= prices[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out, nil
}

func CalculateEMA(prices []float64, window int) (floats.Slice, error) {
	if err := validateWindow(window); err != nil {
		return nil, err
	}
	if err := validateMinLen(prices, window-1, "EMA"); err != nil {
		return nil, err
	}

	out := floats.Fill(len(prices), math.NaN())
	multiplier := 2.0 / float64(window+1)

	// Seed with the simple average of the first window, then recurse.
	var sum float64
	for i := 0; i < window; i++ {
		sum += prices[i]
	}
	prev := sum / float64(window)
	out[window-1] = prev

	for i := window; i < len(prices); i++ {
		prev = prices[i]*multiplier + prev*(1-multiplier)
		out[i] = prev
	}
	return out, nil
}

func CalculateWMA(prices []float64, window int) (floats.Slice, error) {
	if err := validateWindow(window); err != nil {
		return nil, err
	}
	if err := validateMinLen(prices, window-1, "WMA"); err != nil {
		return nil, err
	}

	out := floats.Fill(len(prices), math.NaN())
	denom := float64(window*(window+1)) / 2.0
	for i := window - 1; i < len(prices); i++ {
		var sum float64
		for j := 0; j < window; j++ {
			sum += prices[i-j] * float64(window-j)
		}
		out[i] = sum / denom
	}
	return out, nil
}

func CalculateDEMA(prices []float64, window int) (floats.Slice, error) {
	ema1, err := CalculateEMA(prices, window)
	if err != nil {
		return nil, err
	}
	ema2, err := emaOfValid(ema1, window)
	if err != nil {
		return nil, err
	}

	out := floats.Fill(len(prices), math.NaN())
	for i := range out {
		if !math.IsNaN(ema1[i]) && !math.IsNaN(ema2[i]) {
			out[i] = 2.0*ema1[i] - ema2[i]
		}
	}
	return out, nil
}

func CalculateTEMA(prices []float64, window int) (floats.Slice, error) {
	ema1, err := CalculateEMA(prices, window)
	if err != nil {
		return nil, err
	}
	ema2, err := emaOfValid(ema1, window)
	if err != nil {
		return nil, err
	}
	ema3, err := emaOfValid(ema2, window)
	if err != nil {
		return nil, err
	}

	out := floats.Fill(len(prices), math.NaN())
	for i := range out {
		if !math.IsNaN(ema1[i]) && !math.IsNaN(ema2[i]) && !math.IsNaN(ema3[i]) {
			out[i] = 3.0*ema1[i] - 3.0*ema2[i] + ema3[i]
		}
	}
	return out, nil
}

// emaOfValid applies another EMA pass over a NaN-prefixed series, keeping
// index alignment.
func emaOfValid(series floats.Slice, window int) (floats.Slice, error) {
	start := 0
	for start < len(series) && math.IsNaN(series[start]) {
		start++
	}

	inner, err := CalculateEMA(series[start:], window)
	if err != nil {
		return nil, err
	}

	out := floats.Fill(len(series), math.NaN())
	copy(out[start:], inner)
	return out, nil
}

func CalculateTRIMA(prices []float64, window int) (floats.Slice, error) {
	// Triangular weights via two SMA passes.
	first := (window + 1) / 2
	second := window/2 + 1

	sma1, err := CalculateSMA(prices, first)
	if err != nil {
		return nil, err
	}

	start := first - 1
	inner, err := CalculateSMA(sma1[start:], second)
	if err != nil {
		return nil, err
	}

	out := floats.Fill(len(prices), math.NaN())
	copy(out[start:], inner)
	return out, nil
}

func CalculateKAMA(prices []float64, window int) (floats.Slice, error) {
	if err := validateWindow(window); err != nil {
		return nil, err
	}
	if err := validateMinLen(prices, window, "KAMA"); err != nil {
		return nil, err
	}

	const fastest = 2.0 / (2.0 + 1.0)
	const slowest = 2.0 / (30.0 + 1.0)

	out := floats.Fill(len(prices), math.NaN())
	prev := prices[window-1]
	out[window-1] = prev

	for i := window; i < len(prices); i++ {
		change := math.Abs(prices[i] - prices[i-window])
		var volatility float64
		for j := 0; j < window; j++ {
			volatility += math.Abs(prices[i-j] - prices[i-j-1])
		}

		er := 0.0
		if volatility != 0 {
			er = change / volatility
		}
		sc := math.Pow(er*(fastest-slowest)+slowest, 2)

		prev = prev + sc*(prices[i]-prev)
		out[i] = prev
	}
	return out, nil
}

func CalculateT3(prices []float64, window int, volumeFactor float64) (floats.Slice, error) {
	if volumeFactor < 0 || volumeFactor > 1 {
		return nil, wrapParamErr("volume factor must be within [0, 1]")
	}

	e1, err := CalculateEMA(prices, window)
	if err != nil {
		return nil, err
	}
	e2, err := emaOfValid(e1, window)
	if err != nil {
		return nil, err
	}
	e3, err := emaOfValid(e2, window)
	if err != nil {
		return nil, err
	}
	e4, err := emaOfValid(e3, window)
	if err != nil {
		return nil, err
	}
	e5, err := emaOfValid(e4, window)
	if err != nil {
		return nil, err
	}
	e6, err := emaOfValid(e5, window)
	if err != nil {
		return nil, err
	}

	v := volumeFactor
	c1 := -v * v * v
	c2 := 3.0*v*v + 3.0*v*v*v
	c3 := -6.0*v*v - 3.0*v - 3.0*v*v*v
	c4 := 1.0 + 3.0*v + v*v*v + 3.0*v*v

	out := floats.Fill(len(prices), math.NaN())
	for i := range out {
		if !math.IsNaN(e6[i]) {
			out[i] = c1*e6[i] + c2*e5[i] + c3*e4[i] + c4*e3[i]
		}
	}
	return out, nil
}
