// Package enforce drives a band-limited candidate above (majorant) or below
// (minorant) the indicator on a validation grid.
//
// Each step finds the first worst grid point and adds a non-negative multiple
// of the bump, so the candidate keeps its frequency support. The loop stops
// when the worst gap is within the tolerance, when the iteration cap is hit,
// when the worst node sits where the bump nearly vanishes, or, if enabled,
// when the worst gap stops improving. An unfinished run is reported through
// Result.Complete and never as an error.
package enforce

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-selberg/dsp/core"
)

var (
	// ErrLengthMismatch reports candidate, target and bump slices of
	// different lengths.
	ErrLengthMismatch = errors.New("enforce: length mismatch")
	// ErrInvalidConfig reports unusable loop constants.
	ErrInvalidConfig = errors.New("enforce: invalid config")
	// ErrNonFinite reports a NaN gap, which no step can repair.
	ErrNonFinite = errors.New("enforce: non-finite gap")
)

// DefaultNudgeFactor is the safety factor applied to the DC nudge.
const DefaultNudgeFactor = 1.02

// Direction selects which side of the indicator the candidate must lie on.
type Direction int

const (
	// Above enforces S ≥ χ (majorant).
	Above Direction = iota
	// Below enforces S ≤ χ (minorant).
	Below
)

// String returns "above" or "below".
func (d Direction) String() string {
	if d == Below {
		return "below"
	}
	return "above"
}

// Result summarises one enforcement run.
type Result struct {
	Steps    int     `json:"steps" yaml:"steps"`
	Lift     float64 `json:"lift" yaml:"lift"`
	Residual float64 `json:"residual" yaml:"residual"`
	Complete bool    `json:"complete" yaml:"complete"`
	// Stalled reports an incomplete run that ended before the iteration cap.
	Stalled bool `json:"stalled,omitempty" yaml:"stalled,omitempty"`
}

// Gaps writes the signed margin S - χ (Above) or χ - S (Below) into dst,
// resizing it as needed, and returns it.
func Gaps(dst, s, chi []float64, dir Direction) []float64 {
	n := min(len(s), len(chi))
	dst = core.EnsureLen(dst, n)
	for i := 0; i < n; i++ {
		if dir == Below {
			dst[i] = chi[i] - s[i]
		} else {
			dst[i] = s[i] - chi[i]
		}
	}
	return dst
}

// Run corrects s in place against chi with the bump b.
//
// A candidate that already passes is returned unchanged with zero steps.
func Run(s, chi, b []float64, dir Direction, cfg Config) (Result, error) {
	if len(s) != len(chi) || len(s) != len(b) {
		return Result{}, fmt.Errorf("%w: candidate %d, target %d, bump %d",
			ErrLengthMismatch, len(s), len(chi), len(b))
	}
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if len(s) == 0 {
		return Result{Complete: true}, nil
	}

	sign := 1.0
	if dir == Below {
		sign = -1
	}

	gap := Gaps(nil, s, chi, dir)
	step := make([]float64, len(b))
	idx, worst := core.ArgMin(gap)
	floor := cfg.MinBump * slices.Max(b)

	res := Result{}
	best := worst
	unproductive := 0

	for res.Steps < cfg.MaxIterations {
		if math.IsNaN(gap[idx]) {
			return res, fmt.Errorf("%w at index %d", ErrNonFinite, idx)
		}
		if worst >= -cfg.Tolerance {
			break
		}
		if b[idx] < floor {
			res.Stalled = true
			break
		}

		alpha := cfg.Overshoot * (-worst) / math.Max(b[idx], cfg.DenominatorFloor)
		alpha = core.Clamp(alpha, 0, cfg.MaxStep)

		vecmath.ScaleBlock(step, b, sign*alpha)
		vecmath.AddBlockInPlace(s, step)
		res.Steps++
		res.Lift += alpha

		gap = Gaps(gap, s, chi, dir)
		idx, worst = core.ArgMin(gap)

		if cfg.StallIterations > 0 {
			if worst-best > cfg.StallRatio*math.Abs(best) {
				best = worst
				unproductive = 0
			} else {
				unproductive++
				if unproductive >= cfg.StallIterations {
					res.Stalled = true
					break
				}
			}
		}
	}

	if math.IsNaN(gap[idx]) {
		return res, fmt.Errorf("%w at index %d", ErrNonFinite, idx)
	}
	res.Residual = worst
	res.Complete = worst >= -cfg.Tolerance
	if res.Complete {
		res.Stalled = false
	}
	return res, nil
}

// DCNudge shifts both branches by one constant when either still violates
// the sandwich by more than tol: plus is raised and minus is lowered by
// factor·max(need⁺, need⁻). It returns the applied constant, 0 when both
// branches already pass. A constant has frequency 0, so the support is kept.
func DCNudge(plus, minus, chi []float64, tol, factor float64) (float64, error) {
	if len(plus) != len(chi) || len(minus) != len(chi) {
		return 0, fmt.Errorf("%w: plus %d, minus %d, target %d",
			ErrLengthMismatch, len(plus), len(minus), len(chi))
	}
	if !(factor > 0) || !(tol >= 0) {
		return 0, fmt.Errorf("%w: nudge factor %g, tolerance %g", ErrInvalidConfig, factor, tol)
	}

	_, worstPlus := core.ArgMin(Gaps(nil, plus, chi, Above))
	_, worstMinus := core.ArgMin(Gaps(nil, minus, chi, Below))
	if math.IsInf(worstPlus, -1) || math.IsInf(worstMinus, -1) {
		return 0, ErrNonFinite
	}
	if worstPlus >= -tol && worstMinus >= -tol {
		return 0, nil
	}

	need := math.Max(math.Max(-worstPlus, 0), math.Max(-worstMinus, 0))
	c := factor * need
	for i := range chi {
		plus[i] += c
		minus[i] -= c
	}
	return c, nil
}
