package conv

import (
	"fmt"

	"github.com/cwbudde/algo-selberg/dsp/kernel"
)

// VaalerPrimitive is the antiderivative ½·H(Δt) of Vaaler's kernel, where H
// is [kernel.Vaaler]. It is exact at every t, so no clipping applies.
type VaalerPrimitive struct {
	delta float64
}

// NewVaalerPrimitive returns the Vaaler antiderivative for bandlimit delta.
func NewVaalerPrimitive(delta float64) (VaalerPrimitive, error) {
	if err := kernel.ValidateBandlimit(delta); err != nil {
		return VaalerPrimitive{}, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	return VaalerPrimitive{delta: delta}, nil
}

// At returns ½·H(Δt).
func (v VaalerPrimitive) At(t float64) float64 {
	return 0.5 * kernel.Vaaler(v.delta*t)
}
