package testutil

import (
	"math"
	"math/rand"
)

// Harmonic samples amplitude·cos(2π·k·j/m) for j = 0..m-1, one period of
// the k-th circle harmonic.
func Harmonic(m, k int, amplitude float64) []float64 {
	out := make([]float64, m)
	step := 2 * math.Pi * float64(k) / float64(m)
	for j := range out {
		out[j] = amplitude * math.Cos(step*float64(j))
	}
	return out
}

// DeterministicNoise generates uniform noise in [-amplitude, amplitude]
// with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued slice.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return DC(1.0, n)
}
