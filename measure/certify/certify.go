// Package certify turns a frozen majorant/minorant pair into a read-only
// certificate: worst margins, pass flags and L1 errors against the
// indicator on the validation grid.
//
// The scan is cut into fixed-size chunks reduced in chunk order, so the
// certificate is bit-identical for any worker count.
package certify

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-selberg/dsp/core"
	"github.com/cwbudde/algo-selberg/extremal/enforce"
	"github.com/cwbudde/algo-selberg/measure/spectral"
)

var (
	// ErrInvalidInput reports a grid or candidate the builder cannot scan.
	ErrInvalidInput = errors.New("certify: invalid input")
	// ErrLengthMismatch reports samples not aligned with the grid.
	ErrLengthMismatch = errors.New("certify: length mismatch")
)

// DefaultChunkSize is the number of grid nodes per reduction chunk.
const DefaultChunkSize = 4096

// Enforcement records the correction applied before certification.
type Enforcement struct {
	Plus  enforce.Result `json:"plus" yaml:"plus"`
	Minus enforce.Result `json:"minus" yaml:"minus"`
	Nudge float64        `json:"nudge" yaml:"nudge"`
	// Bump names the correction shape and BumpMass is its integral.
	Bump     string  `json:"bump,omitempty" yaml:"bump,omitempty"`
	BumpMass float64 `json:"bump_mass,omitempty" yaml:"bump_mass,omitempty"`
	// Weight is the final bump weight c of the real-line models.
	Weight float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// Coefficients lists a_n for 0 ≤ n ≤ N of a circle pair; a_{-n} = a_n.
type Coefficients struct {
	N      int       `json:"n" yaml:"n"`
	APlus  []float64 `json:"a_plus" yaml:"a_plus"`
	AMinus []float64 `json:"a_minus" yaml:"a_minus"`
}

// Certificate is the verdict on one construction.
type Certificate struct {
	Model               string           `json:"model" yaml:"model"`
	Beta                float64          `json:"beta" yaml:"beta"`
	Delta               float64          `json:"delta" yaml:"delta"`
	N                   int              `json:"n,omitempty" yaml:"n,omitempty"`
	MajorantOK          bool             `json:"majorant_ok" yaml:"majorant_ok"`
	MinorantOK          bool             `json:"minorant_ok" yaml:"minorant_ok"`
	MinGapMajorant      float64          `json:"min_gap_majorant" yaml:"min_gap_majorant"`
	MinGapMinorant      float64          `json:"min_gap_minorant" yaml:"min_gap_minorant"`
	L1ErrorPlus         float64          `json:"l1_error_plus" yaml:"l1_error_plus"`
	L1ErrorMinus        float64          `json:"l1_error_minus" yaml:"l1_error_minus"`
	SignedErrorPlus     float64          `json:"signed_error_plus" yaml:"signed_error_plus"`
	SignedErrorMinus    float64          `json:"signed_error_minus" yaml:"signed_error_minus"`
	TheoreticalL1Target float64          `json:"theoretical_l1_target" yaml:"theoretical_l1_target"`
	Tolerance           float64          `json:"tolerance" yaml:"tolerance"`
	GridSize            int              `json:"grid_size" yaml:"grid_size"`
	Enforcement         *Enforcement     `json:"enforcement,omitempty" yaml:"enforcement,omitempty"`
	Coefficients        *Coefficients    `json:"coefficients,omitempty" yaml:"coefficients,omitempty"`
	Spectral            *spectral.Report `json:"spectral,omitempty" yaml:"spectral,omitempty"`
}

// OK reports whether both branches pass.
func (c *Certificate) OK() bool { return c.MajorantOK && c.MinorantOK }

// Input is a frozen pair sampled on a grid.
type Input struct {
	Model     string
	Beta      float64
	Delta     float64
	N         int
	Xs        []float64
	Chi       []float64
	Plus      []float64
	Minus     []float64
	Target    float64
	Tolerance float64
}

// Option configures Build.
type Option func(*buildConfig)

type buildConfig struct {
	workers   int
	chunkSize int
}

// WithWorkers scans chunks on up to n goroutines. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(c *buildConfig) {
		if n >= 1 {
			c.workers = n
		}
	}
}

// WithChunkSize sets the number of nodes per chunk. Values below 2 are
// ignored.
func WithChunkSize(n int) Option {
	return func(c *buildConfig) {
		if n >= 2 {
			c.chunkSize = n
		}
	}
}

// partial is the reduction state of one chunk.
type partial struct {
	minPlus, minMinus       float64
	l1Plus, l1Minus         float64
	signedPlus, signedMinus float64
}

// Build scans in and returns its certificate. The input slices are never
// modified.
func Build(in Input, opts ...Option) (*Certificate, error) {
	cfg := buildConfig{workers: 1, chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	n := len(in.Xs)
	if n < 2 {
		return nil, fmt.Errorf("%w: grid has %d nodes", ErrInvalidInput, n)
	}
	if len(in.Chi) != n || len(in.Plus) != n || len(in.Minus) != n {
		return nil, fmt.Errorf("%w: grid %d, chi %d, plus %d, minus %d",
			ErrLengthMismatch, n, len(in.Chi), len(in.Plus), len(in.Minus))
	}
	if !(in.Tolerance >= 0) {
		return nil, fmt.Errorf("%w: tolerance %g", ErrInvalidInput, in.Tolerance)
	}

	for i := 1; i < n; i++ {
		if !(in.Xs[i] > in.Xs[i-1]) {
			return nil, fmt.Errorf("%w: grid not increasing at x=%g", ErrInvalidInput, in.Xs[i])
		}
	}

	chunks := (n + cfg.chunkSize - 1) / cfg.chunkSize
	parts := make([]partial, chunks)
	errs := make([]error, chunks)

	if cfg.workers == 1 || chunks == 1 {
		for k := range parts {
			parts[k], errs[k] = scan(in, k*cfg.chunkSize, min((k+1)*cfg.chunkSize, n))
			if errs[k] != nil {
				return nil, errs[k]
			}
		}
	} else {
		var g errgroup.Group
		g.SetLimit(cfg.workers)
		for k := range parts {
			g.Go(func() error {
				parts[k], errs[k] = scan(in, k*cfg.chunkSize, min((k+1)*cfg.chunkSize, n))
				return errs[k]
			})
		}
		if err := g.Wait(); err != nil {
			// Report the lowest failing chunk, not the first to finish.
			for _, e := range errs {
				if e != nil {
					return nil, e
				}
			}
		}
	}

	total := partial{minPlus: math.Inf(1), minMinus: math.Inf(1)}
	for _, p := range parts {
		total.minPlus = math.Min(total.minPlus, p.minPlus)
		total.minMinus = math.Min(total.minMinus, p.minMinus)
		total.l1Plus += p.l1Plus
		total.l1Minus += p.l1Minus
		total.signedPlus += p.signedPlus
		total.signedMinus += p.signedMinus
	}

	return &Certificate{
		Model:               in.Model,
		Beta:                in.Beta,
		Delta:               in.Delta,
		N:                   in.N,
		MajorantOK:          total.minPlus >= -in.Tolerance,
		MinorantOK:          total.minMinus >= -in.Tolerance,
		MinGapMajorant:      total.minPlus,
		MinGapMinorant:      total.minMinus,
		L1ErrorPlus:         total.l1Plus,
		L1ErrorMinus:        total.l1Minus,
		SignedErrorPlus:     total.signedPlus,
		SignedErrorMinus:    total.signedMinus,
		TheoreticalL1Target: in.Target,
		Tolerance:           in.Tolerance,
		GridSize:            n,
	}, nil
}

// scan reduces the nodes [lo, hi) and the trapezoid intervals ending in them.
func scan(in Input, lo, hi int) (partial, error) {
	from := max(lo-1, 0)
	gp := make([]float64, hi-from)
	gm := make([]float64, hi-from)
	for i := from; i < hi; i++ {
		gp[i-from] = in.Plus[i] - in.Chi[i]
		gm[i-from] = in.Chi[i] - in.Minus[i]
		if !finite(gp[i-from]) || !finite(gm[i-from]) || !finite(in.Xs[i]) {
			return partial{}, fmt.Errorf("%w: non-finite sample at x=%g", ErrInvalidInput, in.Xs[i])
		}
	}

	own := lo - from
	_, minPlus := core.ArgMin(gp[own:])
	_, minMinus := core.ArgMin(gm[own:])
	xs := in.Xs[from:hi]
	return partial{
		minPlus:     minPlus,
		minMinus:    minMinus,
		l1Plus:      core.TrapezoidPositive(xs, gp),
		l1Minus:     core.TrapezoidPositive(xs, gm),
		signedPlus:  core.Trapezoid(xs, gp),
		signedMinus: core.Trapezoid(xs, gm),
	}, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
