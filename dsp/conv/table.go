package conv

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-selberg/dsp/core"
	"github.com/cwbudde/algo-selberg/dsp/interp"
	"github.com/cwbudde/algo-selberg/dsp/kernel"
)

// maxTableNodes bounds the table allocation.
const maxTableNodes = 1 << 26

// TableConfig controls the resolution of a Fejér antiderivative table.
type TableConfig struct {
	// StepFactor sets the grid step h = 1/(StepFactor·Δ).
	StepFactor float64 `json:"step_factor" yaml:"step_factor"`
	// TailFactor extends the half-width by TailFactor/Δ past the support.
	TailFactor float64 `json:"tail_factor" yaml:"tail_factor"`
	// SupportScale multiplies β in the half-width U = SupportScale·β + TailFactor/Δ.
	SupportScale float64 `json:"support_scale" yaml:"support_scale"`
	// Interp reads G between nodes. The zero value is linear.
	Interp interp.Mode `json:"interp,omitempty" yaml:"interp,omitempty"`
}

// DefaultTableConfig returns the standard resolution.
func DefaultTableConfig() TableConfig {
	return TableConfig{StepFactor: 20, TailFactor: 12, SupportScale: 2}
}

// TightTableConfig returns a finer grid with a longer tail.
func TightTableConfig() TableConfig {
	return TableConfig{StepFactor: 40, TailFactor: 20, SupportScale: 2}
}

// PaleyWienerTableConfig returns the resolution used by the enforced
// Paley–Wiener construction.
func PaleyWienerTableConfig() TableConfig {
	return TableConfig{StepFactor: 60, TailFactor: 32, SupportScale: 1}
}

// Validate reports whether every factor is usable.
func (c TableConfig) Validate() error {
	if !(c.StepFactor > 0) || !(c.TailFactor >= 0) || !(c.SupportScale >= 0) {
		return fmt.Errorf("%w: table factors step=%g tail=%g support=%g",
			ErrInvalidParameter, c.StepFactor, c.TailFactor, c.SupportScale)
	}
	if !c.Interp.Valid() {
		return fmt.Errorf("%w: table interpolation %v", ErrInvalidParameter, c.Interp)
	}
	return nil
}

// TableOption configures a Fejér table.
type TableOption func(*TableConfig)

// WithTableConfig replaces the whole configuration.
func WithTableConfig(cfg TableConfig) TableOption {
	return func(c *TableConfig) {
		*c = cfg
	}
}

// WithStepFactor sets the step factor. Non-positive values are ignored.
func WithStepFactor(v float64) TableOption {
	return func(c *TableConfig) {
		if v > 0 {
			c.StepFactor = v
		}
	}
}

// WithTailFactor sets the tail factor. Negative values are ignored.
func WithTailFactor(v float64) TableOption {
	return func(c *TableConfig) {
		if v >= 0 {
			c.TailFactor = v
		}
	}
}

// WithInterp selects the rule that reads G between nodes.
func WithInterp(m interp.Mode) TableOption {
	return func(c *TableConfig) {
		c.Interp = m
	}
}

// WithSupportScale sets the support scale. Negative values are ignored.
func WithSupportScale(v float64) TableOption {
	return func(c *TableConfig) {
		if v >= 0 {
			c.SupportScale = v
		}
	}
}

// Table is a tabulated antiderivative of K_Δ on a uniform grid.
type Table struct {
	cfg   TableConfig
	delta float64
	lo    float64
	hi    float64
	step  float64
	g     []float64
}

// NewFejerTable tabulates G(u) = ∫_{-U}^{u} K_Δ by the trapezoidal rule.
func NewFejerTable(beta, delta float64, opts ...TableOption) (*Table, error) {
	if err := kernel.ValidateHalfWidth(beta); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	if err := kernel.ValidateBandlimit(delta); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	cfg := DefaultTableConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	step := 1 / (cfg.StepFactor * delta)
	half := cfg.SupportScale*beta + cfg.TailFactor/delta
	if !(half > 0) {
		return nil, fmt.Errorf("%w: table half-width must be > 0", ErrInvalidParameter)
	}

	count := 2*half/step + 1
	if count > maxTableNodes {
		return nil, fmt.Errorf("%w: table needs %.0f nodes (max %d)", ErrInvalidParameter, count, maxTableNodes)
	}
	n := int(math.Floor(count + 1e-9))
	n = max(n, 2)

	ks := make([]float64, n)
	for i := range ks {
		ks[i] = kernel.Fejer(-half+float64(i)*step, delta)
	}

	return &Table{
		cfg:   cfg,
		delta: delta,
		lo:    -half,
		hi:    -half + float64(n-1)*step,
		step:  step,
		g:     core.CumulativeTrapezoid(ks, step),
	}, nil
}

// Config returns the resolution the table was built with.
func (t *Table) Config() TableConfig { return t.cfg }

// Bounds returns the first and last table node.
func (t *Table) Bounds() (lo, hi float64) { return t.lo, t.hi }

// Mass returns the tabulated mass of K_Δ over [-U, U].
func (t *Table) Mass() float64 { return t.g[len(t.g)-1] }

// At clips u into the table range and interpolates G with the configured
// rule.
func (t *Table) At(u float64) float64 {
	u = core.Clamp(u, t.lo, t.hi)
	return interp.Lookup(t.g, (u-t.lo)/t.step, t.cfg.Interp)
}
