package delta

import "fmt"

// Interval is a half-open byte range [Start, End) into a document.
type Interval struct {
	Start int
	End   int
}

// NewInterval creates a new Interval from start and end offsets.
func NewInterval(start, end int) Interval {
	return Interval{Start: start, End: end}
}

// String returns a human-readable representation of the interval.
func (iv Interval) String() string {
	return fmt.Sprintf("[%d, %d)", iv.Start, iv.End)
}

// Len returns the length of the interval in bytes.
func (iv Interval) Len() int {
	return iv.End - iv.Start
}

// IsValid reports whether 0 <= Start <= End <= size.
func (iv Interval) IsValid(size int) bool {
	return iv.Start >= 0 && iv.Start <= iv.End && iv.End <= size
}
