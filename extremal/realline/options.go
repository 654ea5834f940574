package realline

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-selberg/dsp/conv"
	"github.com/cwbudde/algo-selberg/extremal/bump"
	"github.com/cwbudde/algo-selberg/extremal/enforce"
)

// Baseline selects the smooth approximation of the indicator.
type Baseline int

const (
	// BaselineVaaler uses the closed-form primitive ½·H(Δt).
	BaselineVaaler Baseline = iota
	// BaselineFejer uses a tabulated primitive of K_Δ.
	BaselineFejer
)

// String returns "vaaler" or "fejer".
func (b Baseline) String() string {
	if b == BaselineFejer {
		return "fejer"
	}
	return "vaaler"
}

// ParseBaseline maps "vaaler" and "fejer" to a Baseline.
func ParseBaseline(name string) (Baseline, error) {
	switch name {
	case "", "vaaler":
		return BaselineVaaler, nil
	case "fejer":
		return BaselineFejer, nil
	default:
		return 0, fmt.Errorf("%w: unknown baseline %q", ErrInvalidParameter, name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (b Baseline) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Baseline) UnmarshalText(text []byte) error {
	parsed, err := ParseBaseline(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Options configures a real-line construction.
type Options struct {
	// Baseline selects the smooth part of S±.
	Baseline Baseline
	// Table sets the resolution of the Fejér baseline.
	Table conv.TableConfig
	// Bump selects the correction shape; CenterWeight applies to
	// bump.KindEdgeCenter.
	Bump         bump.Kind
	CenterWeight float64
	// Weight is the initial bump weight c in S± = baseline ± c·B.
	Weight float64
	// AutoWeight grows c by WeightGrowth until both branches pass or c
	// reaches MaxWeight.
	AutoWeight   bool
	WeightGrowth float64
	MaxWeight    float64
	// GridSize and Window define the validation grid ±(β + Window/Δ).
	GridSize int
	Window   float64
	// Tolerance is the accepted violation of the final pair.
	Tolerance float64
	// Enforce runs the correction loop with EnforceConfig on both branches.
	Enforce       bool
	EnforceConfig enforce.Config
	// Nudge applies one DC shift of NudgeFactor·need after enforcement.
	Nudge       bool
	NudgeFactor float64
}

// SelbergOptions returns the Selberg construction: Vaaler baseline with
// c = ½ edge bumps on ±(β + 6/Δ), 4001 nodes.
func SelbergOptions() Options {
	return Options{
		Baseline:      BaselineVaaler,
		Table:         conv.DefaultTableConfig(),
		Bump:          bump.KindEdge,
		Weight:        0.5,
		WeightGrowth:  1.05,
		MaxWeight:     5,
		GridSize:      4001,
		Window:        6,
		Tolerance:     1e-12,
		EnforceConfig: enforce.DefaultConfig(),
		NudgeFactor:   enforce.DefaultNudgeFactor,
	}
}

// PaleyWienerOptions returns the enforced Paley–Wiener construction: Fejér
// baseline, edge+centre bump with w = ½, c₀ = ½ on ±(β + 24/Δ), 30001
// nodes, enforcement and a DC nudge.
func PaleyWienerOptions() Options {
	return Options{
		Baseline:      BaselineFejer,
		Table:         conv.PaleyWienerTableConfig(),
		Bump:          bump.KindEdgeCenter,
		CenterWeight:  0.5,
		Weight:        0.5,
		WeightGrowth:  1.05,
		MaxWeight:     5,
		GridSize:      30001,
		Window:        24,
		Tolerance:     1e-12,
		Enforce:       true,
		EnforceConfig: enforce.DefaultConfig(),
		Nudge:         true,
		NudgeFactor:   enforce.DefaultNudgeFactor,
	}
}

func (o Options) validate() error {
	switch {
	case o.GridSize < 2:
		return fmt.Errorf("%w: grid size %d", ErrInvalidParameter, o.GridSize)
	case !(o.Window >= 0) || math.IsInf(o.Window, 0):
		return fmt.Errorf("%w: window %g", ErrInvalidParameter, o.Window)
	case !(o.Weight >= 0) || math.IsInf(o.Weight, 0):
		return fmt.Errorf("%w: bump weight %g", ErrInvalidParameter, o.Weight)
	case !(o.Tolerance >= 0):
		return fmt.Errorf("%w: tolerance %g", ErrInvalidParameter, o.Tolerance)
	case o.AutoWeight && (!(o.WeightGrowth > 1) || !(o.MaxWeight > 0)):
		return fmt.Errorf("%w: weight growth %g up to %g", ErrInvalidParameter, o.WeightGrowth, o.MaxWeight)
	case o.Nudge && !(o.NudgeFactor > 0):
		return fmt.Errorf("%w: nudge factor %g", ErrInvalidParameter, o.NudgeFactor)
	}
	if o.Baseline == BaselineFejer {
		if err := o.Table.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
		}
	}
	if o.Enforce {
		if err := o.EnforceConfig.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
		}
	}
	return nil
}
