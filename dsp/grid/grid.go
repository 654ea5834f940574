// Package grid builds the validation grids and indicator samples the
// enforcement loop and certificate builder operate on.
package grid

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSize reports a grid with fewer than two nodes.
var ErrInvalidSize = errors.New("grid: size must be >= 2")

// Linspace returns n evenly spaced nodes from a to b inclusive. The last node
// is exactly b.
func Linspace(a, b float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}

	out := make([]float64, n)
	step := (b - a) / float64(n-1)
	for i := range out {
		out[i] = a + float64(i)*step
	}
	out[n-1] = b

	return out, nil
}

// RealLine returns n nodes covering [-β - w/Δ, β + w/Δ], the validation
// window used by the continuous models.
func RealLine(beta, delta, w float64, n int) ([]float64, error) {
	half := beta + w/delta
	return Linspace(-half, half, n)
}

// Circle returns n nodes covering one period [-1/2, 1/2].
func Circle(n int) ([]float64, error) {
	return Linspace(-0.5, 0.5, n)
}

// Indicator samples the indicator of the closed interval [-β, β].
func Indicator(xs []float64, beta float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		if x >= -beta && x <= beta {
			out[i] = 1
		}
	}
	return out
}

// PeriodicIndicator samples the 1-periodic extension of the indicator of
// [-β, β]: a node is inside when its distance to the nearest integer is at
// most β.
func PeriodicIndicator(xs []float64, beta float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		if math.Abs(x-math.Round(x)) <= beta {
			out[i] = 1
		}
	}
	return out
}
