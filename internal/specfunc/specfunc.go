// Package specfunc provides the special functions needed by the extremal
// kernels. Only real arguments are supported.
package specfunc

import (
	"math"

	"gonum.org/v1/gonum/mathext"
)

// Trigamma returns ψ'(x), the derivative of the digamma function.
// Poles at non-positive integers yield +Inf. Negative non-integer
// arguments use the reflection ψ'(1-x) + ψ'(x) = π²/sin²(πx).
func Trigamma(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return math.NaN()
	case math.IsInf(x, 1):
		return 0
	case math.IsInf(x, -1):
		return math.NaN()
	}

	if x <= 0 {
		if x == math.Floor(x) {
			return math.Inf(1)
		}
		s := math.Sin(math.Pi * x)
		return math.Pi*math.Pi/(s*s) - Trigamma(1-x)
	}

	// ψ'(x) = ζ(2, x) for x > 0.
	return mathext.Zeta(2, x)
}

// TrigammaShifted returns ψ'(1+z) - 1/z for z > 0.
//
// The difference decays like -1/(2z²) and is the quantity Vaaler's function
// needs; computing it here keeps the cancellation in one place.
func TrigammaShifted(z float64) float64 {
	if z <= 0 || math.IsNaN(z) {
		return math.NaN()
	}
	if math.IsInf(z, 1) {
		return 0
	}
	return mathext.Zeta(2, 1+z) - 1/z
}
