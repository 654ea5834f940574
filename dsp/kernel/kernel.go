// Package kernel provides the even band-limited kernels used to build
// Beurling–Selberg majorants and minorants, together with their closed-form
// Fourier transforms.
//
// Conventions: the Fourier transform is f̂(ξ) = ∫ f(x) e^{-2πixξ} dx, and sinc
// is normalised so that Sinc(0) = 1. All functions are pure.
package kernel

import (
	"math"

	"github.com/cwbudde/algo-selberg/internal/specfunc"
)

// circleGuard is the |sin πx| threshold below which the circle Fejér kernel
// takes its limit value.
const circleGuard = 1e-14

// Type identifies a kernel family.
type Type int

const (
	// TypeFejer is K_Δ(x) = (1/Δ)(sin(πΔx)/(πx))², transform Λ(ξ/Δ).
	TypeFejer Type = iota
	// TypeFejerCircle is the degree-N Fejér kernel on R/Z.
	TypeFejerCircle
	// TypeVaaler is Vaaler's odd function H(Δx) approximating sgn(x).
	TypeVaaler
	// TypeBeurling is Beurling's majorant B(Δx) = H(Δx) + sinc²(Δx) of sgn(x).
	TypeBeurling
)

// Metadata describes a kernel family.
type Metadata struct {
	Name string
	// Even reports whether the kernel is an even function.
	Even bool
	// NonNegative reports whether the kernel is pointwise >= 0.
	NonNegative bool
}

var metadataByType = map[Type]Metadata{
	TypeFejer:       {Name: "Fejer", Even: true, NonNegative: true},
	TypeFejerCircle: {Name: "Fejer circle", Even: true, NonNegative: true},
	TypeVaaler:      {Name: "Vaaler", Even: false, NonNegative: false},
	TypeBeurling:    {Name: "Beurling", Even: false, NonNegative: false},
}

// Info returns static metadata for a kernel type.
func Info(t Type) Metadata {
	if m, ok := metadataByType[t]; ok {
		return m
	}
	return Metadata{}
}

// Fejer returns K_Δ(x) = (1/Δ)·(sin(πΔx)/(πx))².
//
// K_Δ is even, non-negative, has unit mass and its transform max(0, 1-|ξ|/Δ)
// vanishes outside [-Δ, Δ]. The peak K_Δ(0) = Δ is returned exactly.
func Fejer(x, delta float64) float64 {
	if x == 0 {
		return delta
	}
	s := math.Sin(math.Pi*delta*x) / (math.Pi * x)
	return s * s / delta
}

// TriangleWindow returns Λ(ξ/Δ) = max(0, 1 - |ξ|/Δ), the transform of K_Δ.
func TriangleWindow(xi, delta float64) float64 {
	return math.Max(0, 1-math.Abs(xi)/delta)
}

// Sinc returns sin(πz)/(πz) with Sinc(0) = 1.
func Sinc(z float64) float64 {
	if z == 0 {
		return 1
	}
	return math.Sin(math.Pi*z) / (math.Pi * z)
}

// IndicatorTransform returns the transform of the indicator of [-β, β],
// 2β·sinc(2βξ).
func IndicatorTransform(xi, beta float64) float64 {
	return 2 * beta * Sinc(2*beta*xi)
}

// FejerCircle returns the degree-n Fejér kernel on the circle,
//
//	F_n(x) = [sin(π(n+1)x) / sin(πx)]² / (n+1),
//
// with the limit value n+1 at the integers.
func FejerCircle(n int, x float64) float64 {
	m := float64(n + 1)
	d := math.Sin(math.Pi * x)
	if math.Abs(d) < circleGuard {
		return m
	}
	s := math.Sin(math.Pi*m*x) / d
	return s * s / m
}

// Vaaler returns Vaaler's entire function
//
//	H(z) = (sin πz / π)² [ Σ_n sgn(n)/(z-n)² + 2/z ],
//
// which is odd, of exponential type 2π, interpolates sgn at the non-zero
// integers, and satisfies H(0) = 0. For z > 0 it is evaluated as
//
//	H(z) = 1 - sinc²(z) - 2(sin πz / π)² (ψ'(1+z) - 1/z).
func Vaaler(z float64) float64 {
	switch {
	case z == 0:
		return 0
	case z < 0:
		return -Vaaler(-z)
	case math.IsInf(z, 1):
		return 1
	}

	s := math.Sin(math.Pi*z) / math.Pi
	c := Sinc(z)
	return 1 - c*c - 2*s*s*specfunc.TrigammaShifted(z)
}

// Beurling returns Beurling's function B(z) = H(z) + sinc²(z). It majorises
// sgn on the real line with ∫(B - sgn) = 1, and B(0) = 1.
func Beurling(z float64) float64 {
	c := Sinc(z)
	return Vaaler(z) + c*c
}

// Option configures kernel sampling.
type Option func(*config)

type config struct {
	delta  float64
	degree int
	center float64
	scale  float64
}

func defaultConfig() config {
	return config{delta: 1, degree: 1, scale: 1}
}

// WithBandlimit sets Δ for continuous kernels. Non-positive values are ignored.
func WithBandlimit(delta float64) Option {
	return func(c *config) {
		if delta > 0 {
			c.delta = delta
		}
	}
}

// WithDegree sets N for the circle kernel. Values below 1 are ignored.
func WithDegree(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.degree = n
		}
	}
}

// WithCenter shifts the kernel so that it is evaluated at x - center.
func WithCenter(center float64) Option {
	return func(c *config) {
		c.center = center
	}
}

// WithScale multiplies every sample by scale.
func WithScale(scale float64) Option {
	return func(c *config) {
		c.scale = scale
	}
}

// Sample evaluates the kernel family t at every node of xs.
func Sample(t Type, xs []float64, opts ...Option) []float64 {
	if len(xs) == 0 {
		return nil
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = cfg.scale * eval(t, x-cfg.center, cfg)
	}
	return out
}

// Accumulate adds the kernel family t, configured by opts, onto dst.
// dst and xs must have the same length; extra entries are ignored.
func Accumulate(dst []float64, t Type, xs []float64, opts ...Option) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	n := min(len(dst), len(xs))
	for i := 0; i < n; i++ {
		dst[i] += cfg.scale * eval(t, xs[i]-cfg.center, cfg)
	}
}

func eval(t Type, x float64, cfg config) float64 {
	switch t {
	case TypeFejer:
		return Fejer(x, cfg.delta)
	case TypeFejerCircle:
		return FejerCircle(cfg.degree, x)
	case TypeVaaler:
		return Vaaler(cfg.delta * x)
	case TypeBeurling:
		return Beurling(cfg.delta * x)
	default:
		return 0
	}
}

func isInf(v float64) bool { return math.IsInf(v, 0) }

// SampleFejer returns K_Δ(x - center) at every node of xs.
func SampleFejer(xs []float64, delta, center float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = Fejer(x-center, delta)
	}
	return out
}
