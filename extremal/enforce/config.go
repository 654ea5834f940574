package enforce

import (
	"fmt"
	"math"
)

// Config holds the enforcement constants.
type Config struct {
	// Tolerance is the accepted worst violation ε: a gap ≥ -ε passes.
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`
	// MaxIterations caps the number of correction steps.
	MaxIterations int `json:"max_iterations" yaml:"max_iterations"`
	// MaxStep caps a single step α. +Inf disables the cap.
	MaxStep float64 `json:"max_step" yaml:"max_step"`
	// Overshoot multiplies the exact step that would close the worst gap.
	Overshoot float64 `json:"overshoot" yaml:"overshoot"`
	// DenominatorFloor bounds the bump value used as step denominator.
	DenominatorFloor float64 `json:"denominator_floor" yaml:"denominator_floor"`
	// StallIterations ends a run after this many consecutive steps that do
	// not improve the best worst gap by StallRatio·|best|. 0 disables stall
	// detection.
	StallIterations int `json:"stall_iterations" yaml:"stall_iterations"`
	// StallRatio is the relative improvement of the worst gap a step must
	// reach to count as progress.
	StallRatio float64 `json:"stall_ratio" yaml:"stall_ratio"`
	// MinBump ends a run, marked stalled, when the bump at the worst node is
	// below MinBump·max(B). Callers repair the rest with DCNudge. 0 disables.
	MinBump float64 `json:"min_bump" yaml:"min_bump"`
}

// DefaultConfig returns the constants used on the real line.
func DefaultConfig() Config {
	return Config{
		Tolerance:        1e-11,
		MaxIterations:    800,
		MaxStep:          0.2,
		Overshoot:        1.05,
		DenominatorFloor: 1e-3,
		StallRatio:       1e-3,
		MinBump:          1e-3,
	}
}

// CircleConfig returns the constants used by the forced circle pass: an
// uncapped step with a small overshoot and a coarser bump floor.
func CircleConfig() Config {
	return Config{
		Tolerance:        1e-10,
		MaxIterations:    30,
		MaxStep:          math.Inf(1),
		Overshoot:        1.01,
		DenominatorFloor: 1e-16,
		StallRatio:       1e-3,
		MinBump:          1e-2,
	}
}

// Validate reports whether the constants describe a usable loop.
func (c Config) Validate() error {
	switch {
	case !(c.Tolerance >= 0) || math.IsInf(c.Tolerance, 0):
		return fmt.Errorf("%w: tolerance %g", ErrInvalidConfig, c.Tolerance)
	case c.MaxIterations < 0:
		return fmt.Errorf("%w: max iterations %d", ErrInvalidConfig, c.MaxIterations)
	case !(c.MaxStep > 0):
		return fmt.Errorf("%w: max step %g", ErrInvalidConfig, c.MaxStep)
	case !(c.Overshoot > 0) || math.IsInf(c.Overshoot, 0):
		return fmt.Errorf("%w: overshoot %g", ErrInvalidConfig, c.Overshoot)
	case !(c.DenominatorFloor > 0) || math.IsInf(c.DenominatorFloor, 0):
		return fmt.Errorf("%w: denominator floor %g", ErrInvalidConfig, c.DenominatorFloor)
	case c.StallIterations < 0:
		return fmt.Errorf("%w: stall iterations %d", ErrInvalidConfig, c.StallIterations)
	case !(c.StallRatio >= 0) || math.IsInf(c.StallRatio, 0):
		return fmt.Errorf("%w: stall ratio %g", ErrInvalidConfig, c.StallRatio)
	case !(c.MinBump >= 0) || c.MinBump >= 1:
		return fmt.Errorf("%w: min bump %g", ErrInvalidConfig, c.MinBump)
	}
	return nil
}

// Option adjusts a Config.
type Option func(*Config)

// WithTolerance sets ε. Negative values are ignored.
func WithTolerance(tol float64) Option {
	return func(c *Config) {
		if tol >= 0 {
			c.Tolerance = tol
		}
	}
}

// WithMaxIterations sets the iteration cap. Negative values are ignored.
func WithMaxIterations(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.MaxIterations = n
		}
	}
}

// WithMaxStep sets the step cap. Non-positive values are ignored.
func WithMaxStep(v float64) Option {
	return func(c *Config) {
		if v > 0 {
			c.MaxStep = v
		}
	}
}

// WithOvershoot sets the overshoot factor. Non-positive values are ignored.
func WithOvershoot(k float64) Option {
	return func(c *Config) {
		if k > 0 {
			c.Overshoot = k
		}
	}
}

// WithDenominatorFloor sets the step denominator floor. Non-positive values
// are ignored.
func WithDenominatorFloor(v float64) Option {
	return func(c *Config) {
		if v > 0 {
			c.DenominatorFloor = v
		}
	}
}

// WithStallIterations enables stall detection after n unproductive steps.
func WithStallIterations(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.StallIterations = n
		}
	}
}

// WithStallRatio sets the relative improvement counted as progress.
// Negative values are ignored.
func WithStallRatio(r float64) Option {
	return func(c *Config) {
		if r >= 0 {
			c.StallRatio = r
		}
	}
}

// WithMinBump sets the relative bump floor below which a run stops. Values
// outside [0, 1) are ignored.
func WithMinBump(r float64) Option {
	return func(c *Config) {
		if r >= 0 && r < 1 {
			c.MinBump = r
		}
	}
}

// Apply returns a copy of c with opts applied.
func (c Config) Apply(opts ...Option) Config {
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}
