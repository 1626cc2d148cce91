package floats

// CrossOver returns true if series1 just crossed over series2.
//
// The most recent two values of each series are compared, so the caller
// decides whether the last bar is closed or still forming.
func CrossOver(series1, series2 Slice) bool {
	if len(series1) < 2 || len(series2) < 2 {
		return false
	}

	return series1.Last(1) <= series2.Last(1) && series1.Last(0) > series2.Last(0)
}

// CrossUnder returns true if series1 just crossed under series2.
func CrossUnder(series1, series2 Slice) bool {
	if len(series1) < 2 || len(series2) < 2 {
		return false
	}

	return series1.Last(1) >= series2.Last(1) && series1.Last(0) < series2.Last(0)
}

// Crossed returns true if series1 crossed series2 in either direction on the
// last closed bar.
func Crossed(series1, series2 Slice) bool {
	return CrossOver(series1, series2) || CrossUnder(series1, series2)
}
