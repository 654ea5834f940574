package conv

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-selberg/dsp/kernel"
)

// Errors returned by the convolution engine.
var (
	ErrInvalidParameter  = errors.New("conv: invalid parameter")
	ErrNilAntiderivative = errors.New("conv: nil antiderivative")
)

// Antiderivative is a primitive of an even kernel with unit mass.
type Antiderivative interface {
	At(t float64) float64
}

// Indicator evaluates the convolution of the indicator of [-β, β] with the
// kernel whose antiderivative it holds.
type Indicator struct {
	beta float64
	prim Antiderivative
}

// NewIndicator returns the baseline evaluator for half-width beta.
func NewIndicator(beta float64, prim Antiderivative) (*Indicator, error) {
	if err := kernel.ValidateHalfWidth(beta); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	if prim == nil {
		return nil, ErrNilAntiderivative
	}
	return &Indicator{beta: beta, prim: prim}, nil
}

// Beta returns the interval half-width.
func (c *Indicator) Beta() float64 { return c.beta }

// At returns A(x+β) - A(x-β).
func (c *Indicator) At(x float64) float64 {
	return c.prim.At(x+c.beta) - c.prim.At(x-c.beta)
}

// Sample evaluates the baseline at every node of xs.
func (c *Indicator) Sample(xs []float64) []float64 {
	out := make([]float64, len(xs))
	c.SampleTo(out, xs)
	return out
}

// SampleTo writes the baseline at xs into dst. Lengths must match.
func (c *Indicator) SampleTo(dst, xs []float64) {
	if len(dst) != len(xs) {
		panic("conv: SampleTo length mismatch")
	}
	for i, x := range xs {
		dst[i] = c.At(x)
	}
}
