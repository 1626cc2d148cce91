package csvsource

import (
	"errors"
	"strconv"
	"time"

	"github.com/c9s/mesa/pkg/types"
)

var (
	// ErrNotEnoughColumns is returned when the CSV record does not have
	// enough columns for the decoder.
	ErrNotEnoughColumns = errors.New("not enough columns")

	// ErrInvalidTimeFormat is returned when the timestamp column cannot be
	// parsed as unix seconds, unix milliseconds or RFC3339.
	ErrInvalidTimeFormat = errors.New("cannot parse time string")

	// ErrInvalidPriceFormat is returned when an OHLC column is not a valid
	// float.
	ErrInvalidPriceFormat = errors.New("OHLC prices must be in valid float format")
)

// BarDecoder is an extension point for CSVBarReader to support custom file
// layouts.
type BarDecoder func(record []string) (types.Bar, error)

// OHLCVBarDecoder decodes records of the layout
// time,open,high,low,close[,volume]. The time column accepts unix seconds,
// unix milliseconds, or RFC3339.
func OHLCVBarDecoder(record []string) (types.Bar, error) {
	var empty types.Bar
	if len(record) < 5 {
		return empty, ErrNotEnoughColumns
	}

	ts, err := parseTime(record[0])
	if err != nil {
		return empty, err
	}

	fields := make([]float64, 4)
	for i := range fields {
		v, err := strconv.ParseFloat(record[i+1], 64)
		if err != nil {
			return empty, ErrInvalidPriceFormat
		}
		fields[i] = v
	}

	bar := types.Bar{
		StartTime: ts,
		Open:      fields[0],
		High:      fields[1],
		Low:       fields[2],
		Close:     fields[3],
	}

	if len(record) > 5 {
		volume, err := strconv.ParseFloat(record[5], 64)
		if err != nil {
			return empty, ErrInvalidPriceFormat
		}
		bar.Volume = volume
	}

	return bar, nil
}

func parseTime(s string) (time.Time, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		// Heuristic boundary between unix seconds and milliseconds.
		if n > 1e12 {
			return time.UnixMilli(n), nil
		}
		return time.Unix(n, 0), nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	return time.Time{}, ErrInvalidTimeFormat
}
