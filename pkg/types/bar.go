package types

import (
	"fmt"
	"time"
)

// Bar is a single OHLC sample. Only High and Low are required by the SAR
// family; Open/Close are carried for CSV round-trips and charting.
type Bar struct {
	StartTime time.Time

	Open  float64
	High  float64
	Low   float64
	Close float64

	Volume float64
}

func (b Bar) String() string {
	return fmt.Sprintf("O: %.4f | H: %.4f | L: %.4f | C: %.4f", b.Open, b.High, b.Low, b.Close)
}

// BarSeries is a chronologically ordered bar sequence, index 0 is the
// earliest bar.
type BarSeries []Bar

func (s BarSeries) Closes() (prices []float64) {
	for _, b := range s {
		prices = append(prices, b.Close)
	}
	return prices
}

func (s BarSeries) Highs() (highs []float64) {
	for _, b := range s {
		highs = append(highs, b.High)
	}
	return highs
}

func (s BarSeries) Lows() (lows []float64) {
	for _, b := range s {
		lows = append(lows, b.Low)
	}
	return lows
}
