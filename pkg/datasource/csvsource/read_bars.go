package csvsource

import (
	"encoding/csv"
	"os"

	"github.com/pkg/errors"

	"github.com/c9s/mesa/pkg/types"
)

// ReadBarsFromCSV loads a whole bar series from a CSV file with the default
// OHLCV decoder.
func ReadBarsFromCSV(path string) (types.BarSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "can not open bar file %s", path)
	}
	defer f.Close()

	reader := NewCSVBarReader(csv.NewReader(f))
	bars, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "can not read bars from %s", path)
	}
	return bars, nil
}
