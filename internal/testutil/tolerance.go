package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireSandwich fails t if minus ≤ chi ≤ plus is violated by more than
// tol at any node.
func RequireSandwich(t *testing.T, xs, chi, plus, minus []float64, tol float64) {
	t.Helper()
	if len(chi) != len(xs) || len(plus) != len(xs) || len(minus) != len(xs) {
		t.Fatalf("length mismatch: xs %d, chi %d, plus %d, minus %d", len(xs), len(chi), len(plus), len(minus))
	}
	for i := range xs {
		if plus[i] < chi[i]-tol {
			t.Fatalf("majorant below target at x=%v: %v < %v", xs[i], plus[i], chi[i])
		}
		if minus[i] > chi[i]+tol {
			t.Fatalf("minorant above target at x=%v: %v > %v", xs[i], minus[i], chi[i])
		}
	}
}

// RequireEven fails t if ys sampled on a symmetric grid differs from its
// mirror image by more than eps.
func RequireEven(t *testing.T, ys []float64, eps float64) {
	t.Helper()
	n := len(ys)
	for i := 0; i < n/2; i++ {
		if d := math.Abs(ys[i] - ys[n-1-i]); d > eps {
			t.Fatalf("index %d: %v vs mirror %v (diff %v > eps %v)", i, ys[i], ys[n-1-i], d, eps)
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}
