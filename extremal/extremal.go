package extremal

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-selberg/dsp/conv"
	"github.com/cwbudde/algo-selberg/dsp/core"
	"github.com/cwbudde/algo-selberg/dsp/interp"
	"github.com/cwbudde/algo-selberg/dsp/kernel"
	"github.com/cwbudde/algo-selberg/extremal/bump"
	"github.com/cwbudde/algo-selberg/extremal/circle"
	"github.com/cwbudde/algo-selberg/extremal/enforce"
	"github.com/cwbudde/algo-selberg/extremal/realline"
	"github.com/cwbudde/algo-selberg/measure/certify"
	"github.com/cwbudde/algo-selberg/measure/spectral"
)

// DefaultTolerance is the accepted violation of an unenforced pair.
const DefaultTolerance = 1e-12

// Params selects a model and its inputs. Zero numeric fields select the
// model defaults.
type Params struct {
	Model           Model             `json:"model" yaml:"model"`
	Beta            float64           `json:"beta" yaml:"beta"`
	Delta           float64           `json:"delta" yaml:"delta"`
	GridSize        int               `json:"grid_size,omitempty" yaml:"grid_size,omitempty"`
	Tolerance       float64           `json:"tolerance,omitempty" yaml:"tolerance,omitempty"`
	Weight          float64           `json:"weight,omitempty" yaml:"weight,omitempty"`
	AutoWeight      bool              `json:"auto_weight,omitempty" yaml:"auto_weight,omitempty"`
	Tight           bool              `json:"tight,omitempty" yaml:"tight,omitempty"`
	Baseline        realline.Baseline `json:"baseline,omitempty" yaml:"baseline,omitempty"`
	Interp          interp.Mode       `json:"interp,omitempty" yaml:"interp,omitempty"`
	Enforce         bool              `json:"enforce,omitempty" yaml:"enforce,omitempty"`
	EnforceConfig   *enforce.Config   `json:"enforce_config,omitempty" yaml:"enforce_config,omitempty"`
	SpectralSamples int               `json:"spectral_samples,omitempty" yaml:"spectral_samples,omitempty"`
	Audit           bool              `json:"audit,omitempty" yaml:"audit,omitempty"`
	Workers         int               `json:"workers,omitempty" yaml:"workers,omitempty"`
}

// Validate reports parameter errors before any grid is built.
func (p Params) Validate() error {
	if p.Model < ModelSelberg || p.Model > ModelCircleForced {
		return fmt.Errorf("%w: model %d", ErrInvalidParameter, int(p.Model))
	}
	if err := kernel.ValidateHalfWidth(p.Beta); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	if err := kernel.ValidateBandlimit(p.Delta); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	if p.Model.Circular() {
		if p.Delta < 1 {
			return fmt.Errorf("%w: circle bandlimit %g gives degree < 1", ErrInvalidParameter, p.Delta)
		}
		if p.Beta >= 0.5 {
			return fmt.Errorf("%w: circle half-width %g must be below 1/2", ErrInvalidParameter, p.Beta)
		}
	}
	if p.GridSize != 0 && p.GridSize < 2 {
		return fmt.Errorf("%w: grid size %d", ErrInvalidParameter, p.GridSize)
	}
	if p.Tolerance < 0 || math.IsNaN(p.Tolerance) {
		return fmt.Errorf("%w: tolerance %g", ErrInvalidParameter, p.Tolerance)
	}
	if p.Weight < 0 || math.IsNaN(p.Weight) {
		return fmt.Errorf("%w: bump weight %g", ErrInvalidParameter, p.Weight)
	}
	if !p.Interp.Valid() {
		return fmt.Errorf("%w: interpolation %v", ErrInvalidParameter, p.Interp)
	}
	if p.SpectralSamples == 1 || p.SpectralSamples < 0 {
		return fmt.Errorf("%w: spectral samples %d", ErrInvalidParameter, p.SpectralSamples)
	}
	if p.EnforceConfig != nil {
		if err := p.EnforceConfig.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
		}
	}
	return nil
}

// Run builds the model selected by p and certifies it.
func Run(p Params) (*certify.Certificate, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Model.Circular() {
		return runCircle(p)
	}
	return runRealLine(p)
}

func runRealLine(p Params) (*certify.Certificate, error) {
	o := realline.SelbergOptions()
	if p.Model == ModelPaleyWiener {
		o = realline.PaleyWienerOptions()
	} else {
		o.Baseline = p.Baseline
		o.AutoWeight = p.AutoWeight
		o.Enforce = p.Enforce
	}
	if p.Tight && o.Baseline == realline.BaselineFejer {
		o.Table = conv.TightTableConfig()
	}
	o.Table.Interp = p.Interp
	if p.GridSize > 0 {
		o.GridSize = p.GridSize
	}
	if p.Tolerance > 0 {
		o.Tolerance = p.Tolerance
	}
	if p.Weight > 0 {
		o.Weight = p.Weight
	}
	if p.EnforceConfig != nil {
		o.EnforceConfig = *p.EnforceConfig
	}

	c, err := realline.Build(p.Beta, p.Delta, o)
	if err != nil {
		return nil, wrap(err, realline.ErrInvalidParameter)
	}

	cert, err := certify.Build(certify.Input{
		Model:     p.Model.String(),
		Beta:      p.Beta,
		Delta:     p.Delta,
		Xs:        c.Xs,
		Chi:       c.Chi,
		Plus:      c.Plus,
		Minus:     c.Minus,
		Target:    c.Target,
		Tolerance: c.Tolerance,
	}, certify.WithWorkers(p.Workers))
	if err != nil {
		return nil, err
	}
	cert.Enforcement = &certify.Enforcement{
		Plus:     c.PlusRun,
		Minus:    c.MinusRun,
		Nudge:    c.Nudge,
		Bump:     c.Bump.String(),
		BumpMass: c.BumpMass,
		Weight:   c.Weight,
	}

	if p.SpectralSamples > 0 {
		samples, err := spectral.Samples(p.Beta, p.Delta, c.Weight, p.SpectralSamples)
		if err != nil {
			return nil, wrap(err, spectral.ErrInvalidParameter)
		}
		cert.Spectral = &spectral.Report{Samples: samples}
	}
	return cert, nil
}

func runCircle(p Params) (*certify.Certificate, error) {
	opts := circle.DefaultOptions()
	opts.Force = p.Model == ModelCircleForced
	if p.GridSize > 0 {
		opts.GridSize = p.GridSize
	}
	if p.EnforceConfig != nil {
		opts.Enforce = *p.EnforceConfig
	}

	c, err := circle.Build(p.Beta, p.Delta, opts)
	if err != nil {
		return nil, wrap(err, circle.ErrInvalidParameter)
	}

	tol := p.Tolerance
	if tol == 0 {
		tol = DefaultTolerance
	}
	if opts.Force {
		tol = math.Max(tol, opts.Enforce.Tolerance)
	}

	coeffs := c.Coefficients
	cert, err := certify.Build(certify.Input{
		Model:     p.Model.String(),
		Beta:      p.Beta,
		Delta:     p.Delta,
		N:         coeffs.N,
		Xs:        c.Xs,
		Chi:       c.Chi,
		Plus:      c.Plus,
		Minus:     c.Minus,
		Target:    coeffs.Target(),
		Tolerance: tol,
	}, certify.WithWorkers(p.Workers))
	if err != nil {
		return nil, err
	}
	cert.Coefficients = &certify.Coefficients{
		N:      coeffs.N,
		APlus:  core.Clone(coeffs.Plus[coeffs.N:]),
		AMinus: core.Clone(coeffs.Minus[coeffs.N:]),
	}
	if opts.Force {
		cert.Enforcement = &certify.Enforcement{
			Plus:     c.PlusRun,
			Minus:    c.MinusRun,
			Nudge:    c.Nudge,
			Bump:     bump.KindCircle.String(),
			BumpMass: bump.Mass(bump.KindCircle, p.Delta, 0),
		}
	}

	if p.Audit {
		audit, err := auditCircle(c)
		if err != nil {
			return nil, err
		}
		cert.Spectral = &spectral.Report{Audit: audit}
	}
	return cert, nil
}

// auditCircle samples the construction from its parts at the FFT nodes, so
// the audit checks the corrections rather than the folded coefficients.
func auditCircle(c *circle.Construction) (*spectral.CircleAudit, error) {
	n := c.Coefficients.N
	nodes := spectral.Nodes(spectral.AuditSize(n))
	plus, err := spectral.AuditCircle(c.Resample(nodes, circle.Plus), n)
	if err != nil {
		return nil, err
	}
	minus, err := spectral.AuditCircle(c.Resample(nodes, circle.Minus), n)
	if err != nil {
		return nil, err
	}
	return &spectral.CircleAudit{N: n, Plus: plus, Minus: minus}, nil
}

// wrap adds ErrInvalidParameter to component parameter errors.
func wrap(err, componentErr error) error {
	if errors.Is(err, componentErr) {
		return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	return err
}
