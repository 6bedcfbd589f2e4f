package common

import "math"

// IsValidIndex reports whether i indexes a collection of length n
func IsValidIndex(i, n int) bool {
	return i >= 0 && i < n
}

// InRange reports whether lo <= v <= hi
func InRange(v, lo, hi int) bool {
	return v >= lo && v <= hi
}

// FitsUint32 reports whether v converts to uint32 without loss
func FitsUint32(v int) bool {
	return v >= 0 && int64(v) <= math.MaxUint32
}
