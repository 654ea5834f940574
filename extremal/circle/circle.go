// Package circle builds the trigonometric-polynomial majorant and minorant of
// the periodic indicator of [-β, β] on the circle [-1/2, 1/2].
//
// The coefficients are closed form: the Fejér-smoothed Fourier coefficients
// of the indicator with the constant term shifted by ±1/(N+1). An optional
// forced pass adds multiples of the circle Fejér bump until the sandwich
// holds on the grid, followed by a DC nudge where the bump is too small to
// help. Each step is mirrored into the coefficients so the result stays a
// polynomial of degree N.
package circle

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-selberg/dsp/core"
	"github.com/cwbudde/algo-selberg/dsp/grid"
	"github.com/cwbudde/algo-selberg/dsp/kernel"
	"github.com/cwbudde/algo-selberg/extremal/bump"
	"github.com/cwbudde/algo-selberg/extremal/enforce"
)

// ErrInvalidParameter reports a half-width or degree the circle cannot use.
var ErrInvalidParameter = errors.New("circle: invalid parameter")

// DefaultGridSize is the number of validation nodes on [-1/2, 1/2].
const DefaultGridSize = 20001

// Branch selects the majorant or the minorant.
type Branch int

const (
	// Plus is the majorant S⁺.
	Plus Branch = iota
	// Minus is the minorant S⁻.
	Minus
)

// String returns "plus" or "minus".
func (b Branch) String() string {
	if b == Minus {
		return "minus"
	}
	return "plus"
}

// Coefficients holds a_n for -N ≤ n ≤ N of both branches. Index n+N of
// Plus and Minus holds a_n; a_n and a_{-n} are always the same value.
type Coefficients struct {
	N     int
	Beta  float64
	Plus  []float64
	Minus []float64
}

// NewCoefficients returns the closed-form coefficients for the half-width
// beta and bandlimit delta, N = floor(delta). It fails before allocating
// when N < 1 or beta is outside (0, 1/2).
func NewCoefficients(beta, delta float64) (*Coefficients, error) {
	if err := kernel.ValidateHalfWidth(beta); err != nil || beta >= 0.5 {
		return nil, fmt.Errorf("%w: half-width %g must lie in (0, 1/2)", ErrInvalidParameter, beta)
	}
	if math.IsNaN(delta) || math.IsInf(delta, 0) || delta < 1 {
		return nil, fmt.Errorf("%w: bandlimit %g gives degree < 1", ErrInvalidParameter, delta)
	}
	n := int(math.Floor(delta))

	c := &Coefficients{
		N:     n,
		Beta:  beta,
		Plus:  make([]float64, 2*n+1),
		Minus: make([]float64, 2*n+1),
	}

	m := float64(n + 1)
	c.Plus[n] = 2*beta + 1/m
	c.Minus[n] = 2*beta - 1/m
	for k := 1; k <= n; k++ {
		fk := float64(k)
		a := (1 - fk/m) * math.Sin(2*math.Pi*beta*fk) / (math.Pi * fk)
		c.Plus[n+k], c.Plus[n-k] = a, a
		c.Minus[n+k], c.Minus[n-k] = a, a
	}
	return c, nil
}

// Target returns the theoretical one-sided L1 error 1/(N+1).
func (c *Coefficients) Target() float64 { return 1 / float64(c.N+1) }

// At returns a_n of branch br. Indices outside [-N, N] return 0.
func (c *Coefficients) At(br Branch, n int) float64 {
	if n < -c.N || n > c.N {
		return 0
	}
	return c.branch(br)[n+c.N]
}

func (c *Coefficients) branch(br Branch) []float64 {
	if br == Minus {
		return c.Minus
	}
	return c.Plus
}

// Eval returns a_0 + 2·Σ_{k=1}^{N} a_k·cos(2πkx) at every node of xs.
func (c *Coefficients) Eval(xs []float64, br Branch) []float64 {
	a := c.branch(br)
	out := make([]float64, len(xs))
	for i, x := range xs {
		sum := a[c.N]
		for k := 1; k <= c.N; k++ {
			sum += 2 * a[c.N+k] * math.Cos(2*math.Pi*float64(k)*x)
		}
		out[i] = sum
	}
	return out
}

// Shift moves branch br away from the indicator by lift multiples of the
// circle bump F_N(x-β) + F_N(x+β): Plus is raised and Minus is lowered.
// The bump has coefficients 2·(1 - |n|/(N+1))·cos(2πnβ).
func (c *Coefficients) Shift(br Branch, lift float64) {
	if lift == 0 {
		return
	}
	sign := 1.0
	if br == Minus {
		sign = -1
	}
	a := c.branch(br)
	m := float64(c.N + 1)
	a[c.N] += sign * lift * 2
	for k := 1; k <= c.N; k++ {
		fk := float64(k)
		d := sign * lift * 2 * (1 - fk/m) * math.Cos(2*math.Pi*c.Beta*fk)
		a[c.N+k] += d
		a[c.N-k] = a[c.N+k]
	}
}

// Widen raises a_0 of Plus and lowers a_0 of Minus by d.
func (c *Coefficients) Widen(d float64) {
	c.Plus[c.N] += d
	c.Minus[c.N] -= d
}

// Clone returns a deep copy of c.
func (c *Coefficients) Clone() *Coefficients {
	return &Coefficients{
		N:     c.N,
		Beta:  c.Beta,
		Plus:  core.Clone(c.Plus),
		Minus: core.Clone(c.Minus),
	}
}

// Options configures Build.
type Options struct {
	// GridSize is the number of validation nodes. 0 selects DefaultGridSize.
	GridSize int
	// Force runs the enforcement pass with the circle Fejér bump.
	Force bool
	// Enforce holds the loop constants of the forced pass.
	Enforce enforce.Config
	// Nudge widens both forced branches by NudgeFactor·need when a run stops
	// short of the tolerance.
	Nudge       bool
	NudgeFactor float64
}

// DefaultOptions returns the unforced construction on the default grid.
func DefaultOptions() Options {
	return Options{
		GridSize:    DefaultGridSize,
		Enforce:     enforce.CircleConfig(),
		Nudge:       true,
		NudgeFactor: enforce.DefaultNudgeFactor,
	}
}

// Construction is an evaluated circle pair ready for certification.
type Construction struct {
	// Coefficients holds the final coefficients, Closed the closed form
	// before any forced correction.
	Coefficients *Coefficients
	Closed       *Coefficients
	Xs           []float64
	Chi          []float64
	Plus         []float64
	Minus        []float64
	Forced       bool
	PlusRun      enforce.Result
	MinusRun     enforce.Result
	Nudge        float64
}

// Resample evaluates branch br of the construction at xs from its parts:
// the closed form, the lift times the circle bump and the DC nudge.
func (c *Construction) Resample(xs []float64, br Branch) []float64 {
	out := c.Closed.Eval(xs, br)
	lift, sign := c.PlusRun.Lift, 1.0
	if br == Minus {
		lift, sign = c.MinusRun.Lift, -1
	}
	if lift != 0 {
		step := make([]float64, len(xs))
		vecmath.ScaleBlock(step, bump.Circle(xs, c.Closed.Beta, c.Closed.N), sign*lift)
		vecmath.AddBlockInPlace(out, step)
	}
	if c.Nudge != 0 {
		for i := range out {
			out[i] += sign * c.Nudge
		}
	}
	return out
}

// Build evaluates the closed-form pair on a uniform grid of [-1/2, 1/2] and,
// when opts.Force is set, enforces the sandwich with the circle Fejér bump.
func Build(beta, delta float64, opts Options) (*Construction, error) {
	c, err := NewCoefficients(beta, delta)
	if err != nil {
		return nil, err
	}
	if opts.GridSize == 0 {
		opts.GridSize = DefaultGridSize
	}
	if opts.Force && opts.Nudge && !(opts.NudgeFactor > 0) {
		return nil, fmt.Errorf("%w: nudge factor %g", ErrInvalidParameter, opts.NudgeFactor)
	}

	xs, err := grid.Circle(opts.GridSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	out := &Construction{
		Coefficients: c,
		Closed:       c.Clone(),
		Xs:           xs,
		Chi:          grid.PeriodicIndicator(xs, beta),
		Plus:         c.Eval(xs, Plus),
		Minus:        c.Eval(xs, Minus),
		Forced:       opts.Force,
	}
	if !opts.Force {
		return out, nil
	}

	b := bump.Circle(xs, beta, c.N)
	out.PlusRun, err = enforce.Run(out.Plus, out.Chi, b, enforce.Above, opts.Enforce)
	if err != nil {
		return nil, fmt.Errorf("circle: forcing majorant: %w", err)
	}
	out.MinusRun, err = enforce.Run(out.Minus, out.Chi, b, enforce.Below, opts.Enforce)
	if err != nil {
		return nil, fmt.Errorf("circle: forcing minorant: %w", err)
	}
	c.Shift(Plus, out.PlusRun.Lift)
	c.Shift(Minus, out.MinusRun.Lift)

	if opts.Nudge {
		out.Nudge, err = enforce.DCNudge(out.Plus, out.Minus, out.Chi, opts.Enforce.Tolerance, opts.NudgeFactor)
		if err != nil {
			return nil, fmt.Errorf("circle: dc nudge: %w", err)
		}
		c.Widen(out.Nudge)
	}

	return out, nil
}
