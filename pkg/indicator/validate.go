package indicator

import (
	"math"

	"github.com/pkg/errors"
)

func validatePrices(prices []float64, name string) error {
	if len(prices) == 0 {
		return errors.Wrapf(ErrInsufficientData, "%s is empty", name)
	}

	for i, p := range prices {
		if !isFinite(p) {
			return errors.Wrapf(ErrDegenerateInput, "%s[%d] = %v", name, i, p)
		}
	}

	return nil
}

// validateHighLow checks length agreement, finiteness and the high >= low
// bar invariant the SAR state machine assumes.
func validateHighLow(high, low []float64) error {
	if len(high) != len(low) {
		return errors.Wrapf(ErrDegenerateInput,
			"high length (%d) != low length (%d)", len(high), len(low))
	}

	if err := validatePrices(high, "high"); err != nil {
		return err
	}
	if err := validatePrices(low, "low"); err != nil {
		return err
	}

	for i := range high {
		if high[i] < low[i] {
			return errors.Wrapf(ErrDegenerateInput,
				"high (%v) < low (%v) at index %d", high[i], low[i], i)
		}
	}

	return nil
}

func validateMinLen(prices []float64, lookback int, name string) error {
	if len(prices) <= lookback {
		return errors.Wrapf(ErrInsufficientData,
			"%s needs more than %d samples, got %d", name, lookback, len(prices))
	}
	return nil
}

func wrapParamErr(reason string) error {
	return errors.Wrap(ErrInvalidParameter, reason)
}

func wrapBarErr(high, low float64) error {
	return errors.Wrapf(ErrDegenerateInput, "bad bar: high %v, low %v", high, low)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
