package indicator

import (
	"math"
)

func sineSeries(n int, base, amp, period float64) []float64 {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = base + amp*math.Sin(2.0*math.Pi*float64(i)/period)
	}
	return prices
}

func trendSeries(n int, start, slope float64) []float64 {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = start + slope*float64(i)
	}
	return prices
}

func constSeries(n int, v float64) []float64 {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = v
	}
	return prices
}

// cycleMix layers two incommensurate cycles, a deterministic stand-in for
// noisy market data.
func cycleMix(n int) []float64 {
	prices := make([]float64, n)
	for i := range prices {
		t := float64(i)
		prices[i] = 100.0 +
			5.0*math.Sin(2.0*math.Pi*t/25.0) +
			2.0*math.Sin(2.0*math.Pi*t/7.0)
	}
	return prices
}
