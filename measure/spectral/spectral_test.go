package spectral

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-selberg/extremal/circle"
	"github.com/cwbudde/algo-selberg/internal/testutil"
)

func TestSamplesAtOrigin(t *testing.T) {
	s, err := Samples(0.5, 8, 0.5, 33)
	if err != nil {
		t.Fatal(err)
	}
	if len(s) != 33 {
		t.Fatalf("len = %d", len(s))
	}
	mid := s[16]
	if mid.Xi != 0 || mid.Window != 1 || mid.Indicator != 1 {
		t.Fatalf("origin sample = %+v", mid)
	}
	// Ŝ±(0) = 2β ± 2c/Δ.
	if math.Abs(mid.Plus-1.125) > 1e-15 || math.Abs(mid.Minus-0.875) > 1e-15 {
		t.Fatalf("Ŝ±(0) = %v, %v", mid.Plus, mid.Minus)
	}
	for _, e := range []Sample{s[0], s[32]} {
		if e.Window != 0 || e.Plus != 0 || e.Minus != 0 {
			t.Fatalf("edge sample must vanish: %+v", e)
		}
	}
}

func TestSamplesRejectInvalid(t *testing.T) {
	if _, err := Samples(0, 8, 0.5, 10); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("err = %v", err)
	}
	if _, err := Samples(0.5, -1, 0.5, 10); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("err = %v", err)
	}
	if _, err := Samples(0.5, 8, 0.5, 1); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("err = %v", err)
	}
}

func TestAuditSize(t *testing.T) {
	cases := map[int]int{1: 4, 3: 8, 10: 32, 15: 32, 16: 64}
	for n, want := range cases {
		if got := AuditSize(n); got != want {
			t.Fatalf("AuditSize(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestAuditRecoversCircleCoefficients(t *testing.T) {
	c, err := circle.NewCoefficients(0.25, 10)
	if err != nil {
		t.Fatal(err)
	}
	m := AuditSize(c.N)
	for _, br := range []circle.Branch{circle.Plus, circle.Minus} {
		a, err := AuditCircle(c.Eval(Nodes(m), br), c.N)
		if err != nil {
			t.Fatal(err)
		}
		if a.Size != m || len(a.Coefficients) != c.N+1 {
			t.Fatalf("audit shape %d/%d", a.Size, len(a.Coefficients))
		}
		for n, got := range a.Coefficients {
			if want := c.At(br, n); math.Abs(got-want) > 1e-13 {
				t.Fatalf("%v: a_%d = %v, want %v", br, n, got, want)
			}
		}
		if a.Leakage > 1e-13 || a.Asymmetry > 1e-13 {
			t.Fatalf("%v: leakage %v, asymmetry %v", br, a.Leakage, a.Asymmetry)
		}
	}
}

func TestAuditDetectsOutOfBandContent(t *testing.T) {
	const m, n = 16, 3
	values := testutil.Harmonic(m, 5, 0.5)
	for j := range values {
		values[j]++
	}
	a, err := AuditCircle(values, n)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(a.Leakage-0.25) > 1e-14 {
		t.Fatalf("leakage = %v, want 0.25", a.Leakage)
	}
	audit := &CircleAudit{N: n, Plus: a, Minus: a}
	if audit.Clean(1e-12) {
		t.Fatal("audit with out-of-band content reported clean")
	}
	var empty *CircleAudit
	if empty.Clean(1) {
		t.Fatal("nil audit reported clean")
	}
}

func TestAuditRejectsBadSizes(t *testing.T) {
	if _, err := AuditCircle(make([]float64, 12), 3); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("non power of two: err = %v", err)
	}
	if _, err := AuditCircle(make([]float64, 4), 2); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("short input: err = %v", err)
	}
	if _, err := AuditCircle(make([]float64, 8), 0); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("zero degree: err = %v", err)
	}
}
