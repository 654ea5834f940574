// Package core holds the small numeric helpers shared by the grid, engine
// and certificate packages.
package core

import "math"

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// ArgMin returns the first index holding the minimum of x and that minimum.
// NaN entries are treated as -Inf so that they are never hidden.
// An empty slice yields (-1, +Inf).
func ArgMin(x []float64) (int, float64) {
	idx := -1
	best := math.Inf(1)

	for i, v := range x {
		if math.IsNaN(v) {
			return i, math.Inf(-1)
		}
		if v < best {
			idx, best = i, v
		}
	}

	return idx, best
}
