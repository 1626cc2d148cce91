package indicator

import (
	"errors"
)

var (
	// ErrInsufficientData is returned when the input series is shorter than
	// the warm-up requirement of the requested indicator chain.
	ErrInsufficientData = errors.New("insufficient data for indicator warm-up")

	// ErrInvalidParameter is returned when a tunable parameter is outside its
	// valid domain. No computation starts in that case.
	ErrInvalidParameter = errors.New("invalid indicator parameter")

	// ErrDegenerateInput is returned for non-finite input values or bars with
	// high < low. The whole call fails because the recurrence would carry the
	// corruption into every later index.
	ErrDegenerateInput = errors.New("degenerate input value")
)
