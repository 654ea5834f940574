package bump

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-selberg/dsp/grid"
	"github.com/cwbudde/algo-selberg/dsp/kernel"
)

func TestEdgePeaksAtEdges(t *testing.T) {
	xs := []float64{-0.5, 0, 0.5}
	b := Edge(xs, 0.5, 8)
	// K_Δ(±β)/Δ = 1 and K_Δ(2β)/Δ vanishes for 2βΔ integer.
	if math.Abs(b[0]-1) > 1e-15 || math.Abs(b[2]-1) > 1e-15 {
		t.Fatalf("edge values = %v, %v, want 1", b[0], b[2])
	}
	if b[1] > 1e-28 {
		t.Fatalf("centre value = %v, want 0", b[1])
	}
}

func TestBumpsAreEvenAndNonNegative(t *testing.T) {
	xs, err := grid.Linspace(-2, 2, 801)
	if err != nil {
		t.Fatal(err)
	}
	for _, kind := range []Kind{KindEdge, KindEdgeCenter, KindCircle} {
		t.Run(kind.String(), func(t *testing.T) {
			b := Build(kind, xs, 0.3, 6.5, 0.5)
			for i := range b {
				if b[i] < 0 {
					t.Fatalf("negative at x=%v: %v", xs[i], b[i])
				}
				j := len(b) - 1 - i
				if math.Abs(b[i]-b[j]) > 1e-12*math.Max(1, b[i]) {
					t.Fatalf("not even at x=%v: %v vs %v", xs[i], b[i], b[j])
				}
			}
		})
	}
}

func TestEdgeCenterAddsOrigin(t *testing.T) {
	xs := []float64{0}
	plain := Edge(xs, 0.3, 4)
	with := EdgeCenter(xs, 0.3, 4, 0.5)
	// w·K_Δ(0)/Δ = w.
	if d := with[0] - plain[0]; math.Abs(d-0.5) > 1e-15 {
		t.Fatalf("centre contribution = %v, want 0.5", d)
	}
	neg := EdgeCenter(xs, 0.3, 4, -1)
	if neg[0] != plain[0] {
		t.Fatal("negative centre weight must be ignored")
	}
}

func TestEdgeMatchesKernelSum(t *testing.T) {
	xs, err := grid.Linspace(-1, 1, 101)
	if err != nil {
		t.Fatal(err)
	}
	b := Edge(xs, 0.3, 6)
	for i, x := range xs {
		want := (kernel.Fejer(x-0.3, 6) + kernel.Fejer(x+0.3, 6)) / 6
		if math.Abs(b[i]-want) > 1e-15*math.Max(1, want) {
			t.Fatalf("Edge(%v) = %v, want %v", x, b[i], want)
		}
	}
}

func TestCirclePeak(t *testing.T) {
	if got := Circle(nil, 0.25, 10); len(got) != 0 {
		t.Fatalf("Circle(nil) = %v", got)
	}

	b := Circle([]float64{0.25}, 0.25, 10)
	if b[0] < 11 {
		t.Fatalf("circle bump at edge = %v, want >= N+1", b[0])
	}
}

func TestSpectralTerm(t *testing.T) {
	s := SpectralTerm([]float64{0, 1}, 0.25, 8, 0.5)
	if s[0] != 0.125 {
		t.Fatalf("term(0) = %v, want 2c/Δ", s[0])
	}
	if math.Abs(s[1]) > 1e-16 {
		t.Fatalf("term(1) = %v, want cos(π/2)·2c/Δ ≈ 0", s[1])
	}
}

func TestMass(t *testing.T) {
	if got := Mass(KindEdge, 8, 0); got != 0.25 {
		t.Fatalf("edge mass = %v", got)
	}
	if got := Mass(KindEdgeCenter, 8, 0.5); got != 2.5/8 {
		t.Fatalf("edge+center mass = %v", got)
	}
	if got := Mass(KindCircle, 8, 0); got != 2 {
		t.Fatalf("circle mass = %v", got)
	}
}
