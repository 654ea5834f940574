package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
		{name: "infinite cap", value: 7, min: 0, max: math.Inf(1), expected: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestArgMin(t *testing.T) {
	idx, v := ArgMin([]float64{3, -1, 2, -1})
	if idx != 1 || v != -1 {
		t.Fatalf("ArgMin = (%d, %v), want first minimum (1, -1)", idx, v)
	}

	idx, v = ArgMin(nil)
	if idx != -1 || !math.IsInf(v, 1) {
		t.Fatalf("ArgMin(nil) = (%d, %v)", idx, v)
	}

	idx, v = ArgMin([]float64{1, math.NaN(), -5})
	if idx != 1 || !math.IsInf(v, -1) {
		t.Fatalf("ArgMin with NaN = (%d, %v), want (1, -Inf)", idx, v)
	}
}

func TestTrapezoid(t *testing.T) {
	xs := []float64{0, 0.5, 1}
	ys := []float64{0, 0.5, 1}
	if got := Trapezoid(xs, ys); got != 0.5 {
		t.Fatalf("Trapezoid(x) = %v, want 0.5", got)
	}

	if got := TrapezoidPositive([]float64{0, 1, 2}, []float64{-1, 1, -1}); got != 1 {
		t.Fatalf("TrapezoidPositive = %v, want 1", got)
	}

	if got := Trapezoid([]float64{0}, []float64{1}); got != 0 {
		t.Fatalf("single node = %v, want 0", got)
	}
	if got := Trapezoid([]float64{1, 0}, []float64{1, 1}); got != 0 {
		t.Fatalf("unsorted nodes = %v, want 0", got)
	}
	if got := TrapezoidPositive([]float64{0, 1}, []float64{1}); got != 0 {
		t.Fatalf("mismatched lengths = %v, want 0", got)
	}
}

func TestCumulativeTrapezoid(t *testing.T) {
	g := CumulativeTrapezoid([]float64{1, 1, 1, 1}, 0.25)
	want := []float64{0, 0.25, 0.5, 0.75}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("G[%d] = %v, want %v", i, g[i], want[i])
		}
	}
	if CumulativeTrapezoid(nil, 1) != nil {
		t.Fatal("expected nil for empty input")
	}
}

func TestEnsureLenAndClone(t *testing.T) {
	buf := make([]float64, 2, 8)
	if got := EnsureLen(buf, 6); len(got) != 6 || cap(got) != 8 {
		t.Fatalf("EnsureLen reused len=%d cap=%d", len(got), cap(got))
	}
	if got := EnsureLen(buf, 16); len(got) != 16 {
		t.Fatalf("EnsureLen grow len=%d", len(got))
	}

	src := []float64{1, 2}
	c := Clone(src)
	c[0] = 9
	if src[0] != 1 {
		t.Fatal("Clone aliases its input")
	}
	if Clone(nil) != nil {
		t.Fatal("Clone(nil) should be nil")
	}
}
