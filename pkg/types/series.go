package types

// Series is the read side of a time-ordered float64 sequence. Last(0) is the
// most recent value; indices before an indicator's warm-up hold NaN.
type Series interface {
	Last(i int) float64
	Length() int
}
