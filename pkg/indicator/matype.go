package indicator

import (
	"github.com/c9s/mesa/pkg/datatype/floats"
	"github.com/pkg/errors"
)

// MAType selects one of the fixed set of smoothing strategies used by the
// sibling fixed-window indicators. The set is closed: dispatch happens over
// typed constants, not open-ended registration.
type MAType int

const (
	MATypeSMA MAType = iota
	MATypeEMA
	MATypeWMA
	MATypeDEMA
	MATypeTEMA
	MATypeTRIMA
	MATypeKAMA
	MATypeMAMA
	MATypeT3
)

func (t MAType) String() string {
	switch t {
	case MATypeSMA:
		return "SMA"
	case MATypeEMA:
		return "EMA"
	case MATypeWMA:
		return "WMA"
	case MATypeDEMA:
		return "DEMA"
	case MATypeTEMA:
		return "TEMA"
	case MATypeTRIMA:
		return "TRIMA"
	case MATypeKAMA:
		return "KAMA"
	case MATypeMAMA:
		return "MAMA"
	case MATypeT3:
		return "T3"
	}
	return "UNKNOWN"
}

// MovingAverage dispatches over the closed MAType set. The MAMA kind ignores
// the window and uses the default adaptive limits; it returns the MAMA line.
func MovingAverage(prices []float64, window int, maType MAType) (floats.Slice, error) {
	if maType != MATypeMAMA && window <= 0 {
		return nil, wrapParamErr("window must be greater than 0")
	}
	if err := validatePrices(prices, "prices"); err != nil {
		return nil, err
	}

	switch maType {
	case MATypeSMA:
		return CalculateSMA(prices, window)
	case MATypeEMA:
		return CalculateEMA(prices, window)
	case MATypeWMA:
		return CalculateWMA(prices, window)
	case MATypeDEMA:
		return CalculateDEMA(prices, window)
	case MATypeTEMA:
		return CalculateTEMA(prices, window)
	case MATypeTRIMA:
		return CalculateTRIMA(prices, window)
	case MATypeKAMA:
		return CalculateKAMA(prices, window)
	case MATypeMAMA:
		mama, _, err := CalculateMAMA(prices, 0, 0)
		return mama, err
	case MATypeT3:
		return CalculateT3(prices, window, 0.7)
	}

	return nil, errors.Wrapf(ErrInvalidParameter, "unknown moving average type %d", maType)
}
