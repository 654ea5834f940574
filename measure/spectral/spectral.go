// Package spectral reports frequency-domain diagnostics for certified
// approximations: the analytic transform samples of the real-line pair and
// an FFT audit of the circle polynomials.
package spectral

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-selberg/dsp/grid"
	"github.com/cwbudde/algo-selberg/dsp/kernel"
	"github.com/cwbudde/algo-selberg/extremal/bump"
)

// ErrInvalidParameter reports an unusable sample count, degree or length.
var ErrInvalidParameter = errors.New("spectral: invalid parameter")

// Sample holds the transforms at one frequency ξ ∈ [-Δ, Δ].
type Sample struct {
	Xi        float64 `json:"xi" yaml:"xi"`
	Window    float64 `json:"window" yaml:"window"`
	Indicator float64 `json:"indicator" yaml:"indicator"`
	Bump      float64 `json:"bump" yaml:"bump"`
	Plus      float64 `json:"plus" yaml:"plus"`
	Minus     float64 `json:"minus" yaml:"minus"`
}

// Report bundles the diagnostics attached to a certificate.
type Report struct {
	Samples []Sample     `json:"samples,omitempty" yaml:"samples,omitempty"`
	Audit   *CircleAudit `json:"audit,omitempty" yaml:"audit,omitempty"`
}

// Samples returns k samples on [-Δ, Δ] of Λ(ξ/Δ), χ̂(ξ), the bump term
// (2c/Δ)cos(2πβξ) and Ŝ± = Λ·(χ̂ ± bump term).
func Samples(beta, delta, c float64, k int) ([]Sample, error) {
	if err := kernel.ValidateHalfWidth(beta); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	if err := kernel.ValidateBandlimit(delta); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	xis, err := grid.Linspace(-delta, delta, k)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	term := bump.SpectralTerm(xis, beta, delta, c)
	win := make([]float64, k)
	chi := make([]float64, k)
	plus := make([]float64, k)
	minus := make([]float64, k)
	for i, xi := range xis {
		win[i] = kernel.TriangleWindow(xi, delta)
		chi[i] = kernel.IndicatorTransform(xi, beta)
		plus[i] = chi[i] + term[i]
		minus[i] = chi[i] - term[i]
	}
	vecmath.MulBlockInPlace(plus, win)
	vecmath.MulBlockInPlace(minus, win)

	out := make([]Sample, k)
	for i, xi := range xis {
		out[i] = Sample{
			Xi:        xi,
			Window:    win[i],
			Indicator: chi[i],
			Bump:      term[i],
			Plus:      plus[i],
			Minus:     minus[i],
		}
	}
	return out, nil
}

// Audit is the FFT view of one circle polynomial sampled at j/M.
type Audit struct {
	// Size is the FFT length M.
	Size int `json:"size" yaml:"size"`
	// Coefficients holds the recovered a_0..a_N.
	Coefficients []float64 `json:"coefficients" yaml:"coefficients"`
	// Leakage is the largest |X_k|/M over the bins N < k < M-N.
	Leakage float64 `json:"leakage" yaml:"leakage"`
	// Asymmetry is the largest |a_k - a_{-k}| over 1 ≤ k ≤ N.
	Asymmetry float64 `json:"asymmetry" yaml:"asymmetry"`
}

// CircleAudit holds the audits of both branches.
type CircleAudit struct {
	N     int    `json:"n" yaml:"n"`
	Plus  *Audit `json:"plus" yaml:"plus"`
	Minus *Audit `json:"minus" yaml:"minus"`
}

// Clean reports whether both branches show no leakage beyond N within tol.
func (a *CircleAudit) Clean(tol float64) bool {
	return a != nil && a.Plus != nil && a.Minus != nil &&
		a.Plus.Leakage <= tol && a.Minus.Leakage <= tol
}

// AuditSize returns the smallest power of two M ≥ 2N+2.
func AuditSize(n int) int {
	m := 1
	for m < 2*n+2 {
		m <<= 1
	}
	return m
}

// Nodes returns j/M for j = 0..M-1.
func Nodes(m int) []float64 {
	out := make([]float64, m)
	for j := range out {
		out[j] = float64(j) / float64(m)
	}
	return out
}

// AuditCircle transforms values, the samples S(j/M) of a degree-n
// polynomial, and recovers a_n = X_n/M. len(values) must be a power of two
// of at least 2n+2.
func AuditCircle(values []float64, n int) (*Audit, error) {
	m := len(values)
	if n < 1 {
		return nil, fmt.Errorf("%w: degree %d", ErrInvalidParameter, n)
	}
	if m < 2*n+2 || m&(m-1) != 0 {
		return nil, fmt.Errorf("%w: %d samples for degree %d, want a power of two >= %d",
			ErrInvalidParameter, m, n, 2*n+2)
	}

	plan, err := algofft.NewPlan64(m)
	if err != nil {
		return nil, fmt.Errorf("spectral: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, m)
	for j, v := range values {
		in[j] = complex(v, 0)
	}
	freq := make([]complex128, m)
	if err := plan.Forward(freq, in); err != nil {
		return nil, fmt.Errorf("spectral: forward FFT failed: %w", err)
	}

	scale := 1 / float64(m)
	re := make([]float64, m)
	im := make([]float64, m)
	for k, x := range freq {
		re[k] = real(x) * scale
		im[k] = imag(x) * scale
	}
	mag := make([]float64, m)
	vecmath.Magnitude(mag, re, im)

	out := &Audit{Size: m, Coefficients: make([]float64, n+1)}
	copy(out.Coefficients, re[:n+1])
	for k := 1; k <= n; k++ {
		out.Asymmetry = math.Max(out.Asymmetry, math.Abs(re[k]-re[m-k]))
	}
	for k := n + 1; k < m-n; k++ {
		out.Leakage = math.Max(out.Leakage, mag[k])
	}
	return out, nil
}
