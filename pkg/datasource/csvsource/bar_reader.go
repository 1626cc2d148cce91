package csvsource

import (
	"encoding/csv"
	"io"

	"github.com/c9s/mesa/pkg/types"
)

// BarReader reads a chronologically ordered bar series from some source.
type BarReader interface {
	Read() (types.Bar, error)
	ReadAll() (types.BarSeries, error)
}

var _ BarReader = (*CSVBarReader)(nil)

// CSVBarReader reads bars from CSV data with a pluggable record decoder.
type CSVBarReader struct {
	csv     *csv.Reader
	decoder BarDecoder
}

// NewCSVBarReader creates a reader with the default OHLCV decoder.
func NewCSVBarReader(csv *csv.Reader) *CSVBarReader {
	return &CSVBarReader{
		csv:     csv,
		decoder: OHLCVBarDecoder,
	}
}

// NewCSVBarReaderWithDecoder creates a reader with the given decoder.
func NewCSVBarReaderWithDecoder(csv *csv.Reader, decoder BarDecoder) *CSVBarReader {
	return &CSVBarReader{
		csv:     csv,
		decoder: decoder,
	}
}

// Read reads the next bar from the underlying CSV data.
func (r *CSVBarReader) Read() (types.Bar, error) {
	rec, err := r.csv.Read()
	if err != nil {
		return types.Bar{}, err
	}
	return r.decoder(rec)
}

// ReadAll reads all bars. A header line is skipped when the first record
// fails to decode.
func (r *CSVBarReader) ReadAll() (types.BarSeries, error) {
	var bars types.BarSeries
	for {
		bar, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if len(bars) == 0 && (err == ErrInvalidTimeFormat || err == ErrInvalidPriceFormat) {
				// header line
				continue
			}
			return nil, err
		}
		bars = append(bars, bar)
	}

	return bars, nil
}
