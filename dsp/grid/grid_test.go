package grid

import (
	"errors"
	"testing"
)

func TestLinspace(t *testing.T) {
	xs, err := Linspace(-1, 1, 5)
	if err != nil {
		t.Fatalf("Linspace: %v", err)
	}
	want := []float64{-1, -0.5, 0, 0.5, 1}
	for i := range want {
		if xs[i] != want[i] {
			t.Fatalf("xs[%d] = %v, want %v", i, xs[i], want[i])
		}
	}

	if _, err := Linspace(0, 1, 1); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("Linspace(n=1) error = %v", err)
	}
}

func TestLinspaceEndpointIsExact(t *testing.T) {
	xs, err := Linspace(-0.1, 0.7, 30001)
	if err != nil {
		t.Fatal(err)
	}
	if xs[len(xs)-1] != 0.7 {
		t.Fatalf("last node = %.17g, want 0.7", xs[len(xs)-1])
	}
}

func TestRealLineWindow(t *testing.T) {
	xs, err := RealLine(0.5, 8, 6, 4001)
	if err != nil {
		t.Fatal(err)
	}
	if xs[0] != -1.25 || xs[len(xs)-1] != 1.25 {
		t.Fatalf("window = [%v, %v], want [-1.25, 1.25]", xs[0], xs[len(xs)-1])
	}
	if len(xs) != 4001 {
		t.Fatalf("len = %d, want 4001", len(xs))
	}
}

func TestIndicatorIsClosed(t *testing.T) {
	chi := Indicator([]float64{-0.6, -0.5, 0, 0.5, 0.6}, 0.5)
	want := []float64{0, 1, 1, 1, 0}
	for i := range want {
		if chi[i] != want[i] {
			t.Fatalf("chi[%d] = %v, want %v", i, chi[i], want[i])
		}
	}
}

func TestPeriodicIndicator(t *testing.T) {
	xs := []float64{-0.5, -0.3, -0.25, 0, 0.25, 0.3, 0.5, 0.9, 1.1}
	chi := PeriodicIndicator(xs, 0.25)
	want := []float64{0, 0, 1, 1, 1, 0, 0, 1, 1}
	for i := range want {
		if chi[i] != want[i] {
			t.Fatalf("x=%v: chi = %v, want %v", xs[i], chi[i], want[i])
		}
	}
}
