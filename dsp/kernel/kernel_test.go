package kernel

import (
	"errors"
	"math"
	"testing"
)

func trapezoid(f func(float64) float64, a, b float64, n int) float64 {
	h := (b - a) / float64(n-1)
	sum := 0.5 * (f(a) + f(b))
	for i := 1; i < n-1; i++ {
		sum += f(a + float64(i)*h)
	}
	return sum * h
}

func TestFejerPeakIsExact(t *testing.T) {
	for _, delta := range []float64{0.5, 1, 8, 123.25} {
		if got := Fejer(0, delta); got != delta {
			t.Fatalf("Fejer(0, %v) = %v, want exactly %v", delta, got, delta)
		}
	}
}

func TestFejerEvenAndNonNegative(t *testing.T) {
	const delta = 5.5
	for i := 1; i < 2000; i++ {
		x := float64(i) * 0.00731
		a, b := Fejer(x, delta), Fejer(-x, delta)
		if a != b {
			t.Fatalf("Fejer not even at x=%v: %v vs %v", x, a, b)
		}
		if a < 0 {
			t.Fatalf("Fejer(%v) = %v < 0", x, a)
		}
	}
}

func TestFejerZerosAtMultiplesOfInverseBandlimit(t *testing.T) {
	const delta = 8.0
	for k := 1; k <= 5; k++ {
		if got := Fejer(float64(k)/delta, delta); got > 1e-28 {
			t.Fatalf("Fejer(%d/Δ) = %v, want 0", k, got)
		}
	}
}

func TestFejerUnitMass(t *testing.T) {
	const delta = 3.0
	mass := trapezoid(func(x float64) float64 { return Fejer(x, delta) }, -200/delta, 200/delta, 40001)
	if math.Abs(mass-1) > 2e-3 {
		t.Fatalf("mass = %v, want ≈ 1", mass)
	}
}

func TestTriangleWindow(t *testing.T) {
	tests := []struct {
		xi, delta, want float64
	}{
		{0, 4, 1},
		{2, 4, 0.5},
		{-2, 4, 0.5},
		{4, 4, 0},
		{9, 4, 0},
	}
	for _, tc := range tests {
		if got := TriangleWindow(tc.xi, tc.delta); got != tc.want {
			t.Fatalf("TriangleWindow(%v, %v) = %v, want %v", tc.xi, tc.delta, got, tc.want)
		}
	}
}

func TestIndicatorTransform(t *testing.T) {
	const beta = 0.25
	if got := IndicatorTransform(0, beta); got != 0.5 {
		t.Fatalf("transform at 0 = %v, want 2β", got)
	}
	// Zeros of sinc(2βξ) at ξ = k/(2β).
	for k := 1; k <= 3; k++ {
		if got := IndicatorTransform(float64(k)/(2*beta), beta); math.Abs(got) > 1e-15 {
			t.Fatalf("transform at zero %d = %v", k, got)
		}
	}
}

func TestFejerCircle(t *testing.T) {
	const n = 10
	if got := FejerCircle(n, 0); got != n+1 {
		t.Fatalf("FejerCircle(0) = %v, want %d", got, n+1)
	}
	if got := FejerCircle(n, 1); got != n+1 {
		t.Fatalf("FejerCircle(1) = %v, want %d", got, n+1)
	}

	// The discrete mean over M > N equispaced nodes is exactly the zeroth
	// coefficient, 1.
	const m = 64
	sum := 0.0
	for j := 0; j < m; j++ {
		v := FejerCircle(n, float64(j)/m)
		if v < 0 {
			t.Fatalf("FejerCircle negative at j=%d: %v", j, v)
		}
		sum += v
	}
	if math.Abs(sum/m-1) > 1e-13 {
		t.Fatalf("mean = %v, want 1", sum/m)
	}
}

func TestVaalerInterpolatesSign(t *testing.T) {
	if got := Vaaler(0); got != 0 {
		t.Fatalf("Vaaler(0) = %v", got)
	}
	for n := 1; n <= 40; n++ {
		if got := Vaaler(float64(n)); math.Abs(got-1) > 1e-13 {
			t.Fatalf("Vaaler(%d) = %.17g, want 1", n, got)
		}
		if got := Vaaler(float64(-n)); math.Abs(got+1) > 1e-13 {
			t.Fatalf("Vaaler(-%d) = %.17g, want -1", n, got)
		}
	}
	if got, want := Vaaler(0.5), 8/(math.Pi*math.Pi); math.Abs(got-want) > 1e-14 {
		t.Fatalf("Vaaler(1/2) = %.17g, want %.17g", got, want)
	}
}

func TestVaalerOdd(t *testing.T) {
	for _, z := range []float64{0.1, 0.77, 3.3, 12.5, 450.2} {
		if Vaaler(z) != -Vaaler(-z) {
			t.Fatalf("Vaaler not odd at %v", z)
		}
	}
}

func TestBeurlingMajorisesSign(t *testing.T) {
	if got := Beurling(0); got != 1 {
		t.Fatalf("Beurling(0) = %v, want 1", got)
	}

	sgn := func(z float64) float64 {
		switch {
		case z > 0:
			return 1
		case z < 0:
			return -1
		}
		return 0
	}

	for i := -8000; i <= 8000; i++ {
		z := float64(i) * 0.0025
		if d := Beurling(z) - sgn(z); d < -1e-12 {
			t.Fatalf("Beurling(%v) - sgn = %v < 0", z, d)
		}
	}

	excess := trapezoid(func(z float64) float64 { return Beurling(z) - sgn(z) }, -200, 200, 40001)
	if math.Abs(excess-1) > 2e-3 {
		t.Fatalf("∫(B - sgn) = %v, want ≈ 1", excess)
	}
}

func TestSample(t *testing.T) {
	xs := []float64{-1, 0, 0.25, 1}
	got := Sample(TypeFejer, xs, WithBandlimit(4), WithCenter(0.25), WithScale(0.5))
	if got[2] != 2 {
		t.Fatalf("peak sample = %v, want 0.5·Δ = 2", got[2])
	}

	acc := make([]float64, len(xs))
	Accumulate(acc, TypeFejer, xs, WithBandlimit(4), WithCenter(0.25), WithScale(0.5))
	for i := range acc {
		if acc[i] != got[i] {
			t.Fatalf("Accumulate[%d] = %v, Sample = %v", i, acc[i], got[i])
		}
	}

	if Sample(TypeFejer, nil) != nil {
		t.Fatal("Sample(nil) should be nil")
	}

	circle := Sample(TypeFejerCircle, []float64{0}, WithDegree(6))
	if circle[0] != 7 {
		t.Fatalf("circle peak = %v, want 7", circle[0])
	}

	direct := SampleFejer(xs, 4, 0.25)
	for i := range direct {
		if 0.5*direct[i] != got[i] {
			t.Fatalf("SampleFejer[%d] = %v, want %v", i, direct[i], 2*got[i])
		}
	}
}

func TestInfo(t *testing.T) {
	if m := Info(TypeFejer); m.Name != "Fejer" || !m.NonNegative || !m.Even {
		t.Fatalf("unexpected Fejer metadata: %+v", m)
	}
	if m := Info(Type(99)); m.Name != "" {
		t.Fatalf("unknown type metadata = %+v", m)
	}
}

func TestValidation(t *testing.T) {
	for _, v := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := ValidateBandlimit(v); !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("ValidateBandlimit(%v) = %v", v, err)
		}
		if err := ValidateHalfWidth(v); !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("ValidateHalfWidth(%v) = %v", v, err)
		}
	}
	if err := ValidateDegree(0); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("ValidateDegree(0) = %v", err)
	}
	if err := ValidateBandlimit(2); err != nil {
		t.Fatalf("ValidateBandlimit(2) = %v", err)
	}
}
