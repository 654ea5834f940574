package core

import (
	"slices"

	"gonum.org/v1/gonum/integrate"
)

// Trapezoid integrates samples ys taken at the (possibly non-uniform)
// nodes xs with the composite trapezoidal rule. Mismatched, short or
// unsorted inputs integrate to 0.
func Trapezoid(xs, ys []float64) float64 {
	if len(xs) != len(ys) || len(xs) < 2 || !slices.IsSorted(xs) {
		return 0
	}
	return integrate.Trapezoidal(xs, ys)
}

// TrapezoidPositive integrates max(ys, 0) over xs.
func TrapezoidPositive(xs, ys []float64) float64 {
	if len(xs) != len(ys) {
		return 0
	}
	pos := make([]float64, len(ys))
	for i, y := range ys {
		pos[i] = max(y, 0)
	}
	return Trapezoid(xs, pos)
}

// CumulativeTrapezoid returns G with G[0] = 0 and
// G[i] = G[i-1] + h·(ys[i]+ys[i-1])/2 for a uniform step h.
func CumulativeTrapezoid(ys []float64, h float64) []float64 {
	if len(ys) == 0 {
		return nil
	}

	out := make([]float64, len(ys))
	for i := 1; i < len(ys); i++ {
		out[i] = out[i-1] + 0.5*(ys[i]+ys[i-1])*h
	}
	return out
}
