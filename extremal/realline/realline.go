// Package realline constructs band-limited majorants and minorants of the
// indicator of [-β, β] on a window of the real line.
//
// A construction is S± = baseline ± c·B, where the baseline is the
// convolution of the indicator with a band-limited kernel and B is a
// non-negative bump of the same bandlimit. With the Vaaler baseline and
// c = ½ this is Selberg's extremal pair, whose one-sided L1 error is 1/Δ.
// The optional enforcement loop and DC nudge repair baselines that do not
// sandwich the indicator on their own.
package realline

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-selberg/dsp/conv"
	"github.com/cwbudde/algo-selberg/dsp/core"
	"github.com/cwbudde/algo-selberg/dsp/grid"
	"github.com/cwbudde/algo-selberg/dsp/kernel"
	"github.com/cwbudde/algo-selberg/extremal/bump"
	"github.com/cwbudde/algo-selberg/extremal/enforce"
)

// ErrInvalidParameter reports an unusable half-width, bandlimit or option.
var ErrInvalidParameter = errors.New("realline: invalid parameter")

// Option adjusts a preset before a construction runs.
type Option func(*Options)

// WithGridSize sets the number of validation nodes.
func WithGridSize(n int) Option { return func(o *Options) { o.GridSize = n } }

// WithWeight sets the initial bump weight.
func WithWeight(c float64) Option { return func(o *Options) { o.Weight = c } }

// WithAutoWeight enables or disables weight growth.
func WithAutoWeight(on bool) Option { return func(o *Options) { o.AutoWeight = on } }

// WithBaseline selects the baseline.
func WithBaseline(b Baseline) Option { return func(o *Options) { o.Baseline = b } }

// WithTable sets the Fejér table resolution.
func WithTable(cfg conv.TableConfig) Option { return func(o *Options) { o.Table = cfg } }

// WithTolerance sets the accepted violation.
func WithTolerance(tol float64) Option { return func(o *Options) { o.Tolerance = tol } }

// WithEnforcement enables the correction loop with cfg.
func WithEnforcement(on bool, cfg enforce.Config) Option {
	return func(o *Options) {
		o.Enforce = on
		o.EnforceConfig = cfg
	}
}

// WithNudge enables or disables the DC nudge.
func WithNudge(on bool) Option { return func(o *Options) { o.Nudge = on } }

// Construction is an evaluated real-line pair ready for certification.
type Construction struct {
	Beta  float64
	Delta float64
	Xs    []float64
	Chi   []float64
	Plus  []float64
	Minus []float64
	// Bump is the correction shape and BumpMass its integral, the L1 cost
	// of a unit multiple.
	Bump     bump.Kind
	BumpMass float64
	// Weight is the bump weight after auto-weighting.
	Weight    float64
	PlusRun   enforce.Result
	MinusRun  enforce.Result
	Nudge     float64
	Target    float64
	Tolerance float64
}

// Selberg builds the pair with SelbergOptions adjusted by opts.
func Selberg(beta, delta float64, opts ...Option) (*Construction, error) {
	o := SelbergOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return Build(beta, delta, o)
}

// PaleyWiener builds the pair with PaleyWienerOptions adjusted by opts.
func PaleyWiener(beta, delta float64, opts ...Option) (*Construction, error) {
	o := PaleyWienerOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return Build(beta, delta, o)
}

// Build runs the construction described by o.
func Build(beta, delta float64, o Options) (*Construction, error) {
	if err := kernel.ValidateHalfWidth(beta); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	if err := kernel.ValidateBandlimit(delta); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	prim, err := primitive(beta, delta, o)
	if err != nil {
		return nil, err
	}
	ind, err := conv.NewIndicator(beta, prim)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	xs, err := grid.RealLine(beta, delta, o.Window, o.GridSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	chi := grid.Indicator(xs, beta)
	base := ind.Sample(xs)
	b := bump.Build(o.Bump, xs, beta, delta, o.CenterWeight)

	tol := o.Tolerance
	if o.Enforce {
		tol = math.Max(tol, o.EnforceConfig.Tolerance)
	}

	out := &Construction{
		Beta:      beta,
		Delta:     delta,
		Xs:        xs,
		Chi:       chi,
		Plus:      make([]float64, len(xs)),
		Minus:     make([]float64, len(xs)),
		Bump:      o.Bump,
		BumpMass:  bump.Mass(o.Bump, delta, o.CenterWeight),
		Weight:    o.Weight,
		Target:    1 / delta,
		Tolerance: tol,
	}

	step := make([]float64, len(xs))
	for {
		assemble(out.Plus, out.Minus, base, b, step, out.Weight)
		if !o.AutoWeight || out.Weight >= o.MaxWeight || passes(out.Plus, out.Minus, chi, o.Tolerance) {
			break
		}
		out.Weight = math.Min(out.Weight*o.WeightGrowth, o.MaxWeight)
	}

	if o.Enforce {
		out.PlusRun, err = enforce.Run(out.Plus, chi, b, enforce.Above, o.EnforceConfig)
		if err != nil {
			return nil, fmt.Errorf("realline: enforcing majorant: %w", err)
		}
		out.MinusRun, err = enforce.Run(out.Minus, chi, b, enforce.Below, o.EnforceConfig)
		if err != nil {
			return nil, fmt.Errorf("realline: enforcing minorant: %w", err)
		}
	}
	if o.Nudge {
		out.Nudge, err = enforce.DCNudge(out.Plus, out.Minus, chi, tol, o.NudgeFactor)
		if err != nil {
			return nil, fmt.Errorf("realline: dc nudge: %w", err)
		}
	}

	return out, nil
}

func primitive(beta, delta float64, o Options) (conv.Antiderivative, error) {
	if o.Baseline == BaselineFejer {
		t, err := conv.NewFejerTable(beta, delta, conv.WithTableConfig(o.Table))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
		}
		return t, nil
	}
	v, err := conv.NewVaalerPrimitive(delta)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	return v, nil
}

func assemble(plus, minus, base, b, step []float64, c float64) {
	vecmath.ScaleBlock(step, b, c)
	copy(plus, base)
	vecmath.AddBlockInPlace(plus, step)
	vecmath.ScaleBlock(step, b, -c)
	copy(minus, base)
	vecmath.AddBlockInPlace(minus, step)
}

func passes(plus, minus, chi []float64, tol float64) bool {
	_, gp := core.ArgMin(enforce.Gaps(nil, plus, chi, enforce.Above))
	_, gm := core.ArgMin(enforce.Gaps(nil, minus, chi, enforce.Below))
	return gp >= -tol && gm >= -tol
}
