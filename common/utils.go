package common

import "math"

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// FloorInt scales a normalized fraction by a pixel extent and floors the result.
//
// Parameters:
//   - fraction: value relative to extent, usually in [0, 1]
//   - extent: the pixel extent
//
// Returns:
//   - int: floor(fraction * extent)
func FloorInt(fraction float32, extent int) int {
	return int(math.Floor(float64(fraction) * float64(extent)))
}
