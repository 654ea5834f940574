// Package config loads run and sweep descriptions for bsinfo from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-selberg/dsp/interp"
	"github.com/cwbudde/algo-selberg/extremal"
	"github.com/cwbudde/algo-selberg/extremal/enforce"
	"github.com/cwbudde/algo-selberg/extremal/realline"
	"github.com/cwbudde/algo-selberg/extremal/sweep"
)

// Defaults of a run without a config file.
const (
	DefaultModel  = "selberg"
	DefaultBeta   = 0.5
	DefaultDelta  = 8.0
	DefaultOutput = "text"
	DefaultLevel  = "info"
)

// ErrInvalid reports a configuration that cannot be run.
var ErrInvalid = errors.New("config: invalid")

// Config describes one run and an optional sweep.
type Config struct {
	Model           string          `yaml:"model"`
	Beta            float64         `yaml:"beta"`
	Delta           float64         `yaml:"delta"`
	GridSize        int             `yaml:"grid_size,omitempty"`
	Tolerance       float64         `yaml:"tolerance,omitempty"`
	Weight          float64         `yaml:"weight,omitempty"`
	AutoWeight      bool            `yaml:"auto_weight,omitempty"`
	Tight           bool            `yaml:"tight,omitempty"`
	Baseline        string          `yaml:"baseline,omitempty"`
	Interp          string          `yaml:"interp,omitempty"`
	Enforce         bool            `yaml:"enforce,omitempty"`
	Enforcement     *enforce.Config `yaml:"enforcement,omitempty"`
	SpectralSamples int             `yaml:"spectral_samples,omitempty"`
	Audit           bool            `yaml:"audit,omitempty"`
	Workers         int             `yaml:"workers,omitempty"`
	Sweep           SweepConfig     `yaml:"sweep,omitempty"`
	Output          string          `yaml:"output"`
	LogLevel        string          `yaml:"log_level"`
}

// SweepConfig lists the (β, Δ) grid of a sweep. The other run fields of
// Config apply to every job.
type SweepConfig struct {
	Betas    []float64 `yaml:"betas,omitempty"`
	Deltas   []float64 `yaml:"deltas,omitempty"`
	Workers  int       `yaml:"workers,omitempty"`
	FailFast bool      `yaml:"fail_fast,omitempty"`
}

// Default returns the Selberg run at β = ½, Δ = 8 with text output.
func Default() *Config {
	return &Config{
		Model:    DefaultModel,
		Beta:     DefaultBeta,
		Delta:    DefaultDelta,
		Output:   DefaultOutput,
		LogLevel: DefaultLevel,
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks the names and the run parameters.
func (c *Config) Validate() error {
	if _, err := c.Params(); err != nil {
		return err
	}
	switch strings.ToLower(c.Output) {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("%w: output %q", ErrInvalid, c.Output)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
	}
	hasBetas, hasDeltas := len(c.Sweep.Betas) > 0, len(c.Sweep.Deltas) > 0
	if hasBetas != hasDeltas {
		return fmt.Errorf("%w: sweep needs both betas and deltas", ErrInvalid)
	}
	for _, job := range c.Jobs() {
		if err := job.Params.Validate(); err != nil {
			return fmt.Errorf("%w: sweep job %s: %w", ErrInvalid, job.Name, err)
		}
	}
	return nil
}

// Params converts the run fields to extremal parameters.
func (c *Config) Params() (extremal.Params, error) {
	model, err := extremal.ParseModel(c.Model)
	if err != nil {
		return extremal.Params{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	baseline, err := realline.ParseBaseline(strings.ToLower(c.Baseline))
	if err != nil {
		return extremal.Params{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	mode, err := interp.ParseMode(strings.ToLower(c.Interp))
	if err != nil {
		return extremal.Params{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	p := extremal.Params{
		Model:           model,
		Beta:            c.Beta,
		Delta:           c.Delta,
		GridSize:        c.GridSize,
		Tolerance:       c.Tolerance,
		Weight:          c.Weight,
		AutoWeight:      c.AutoWeight,
		Tight:           c.Tight,
		Baseline:        baseline,
		Interp:          mode,
		Enforce:         c.Enforce,
		EnforceConfig:   c.Enforcement,
		SpectralSamples: c.SpectralSamples,
		Audit:           c.Audit,
		Workers:         c.Workers,
	}
	if err := p.Validate(); err != nil {
		return extremal.Params{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return p, nil
}

// Jobs expands the sweep grid. It returns nil when no sweep is configured
// or the run fields are invalid.
func (c *Config) Jobs() []sweep.Job {
	if len(c.Sweep.Betas) == 0 || len(c.Sweep.Deltas) == 0 {
		return nil
	}
	base, err := c.Params()
	if err != nil {
		return nil
	}
	return sweep.Grid(base, c.Sweep.Betas, c.Sweep.Deltas)
}
