// Package interp provides the interpolation rules used to read tabulated
// functions between their nodes.
//
//   - [Linear2]:  2-point linear interpolation
//   - [Hermite4]: 4-point cubic Hermite, exact on quadratics
//
// [Lookup] reads a uniformly sampled table at a fractional position with
// the rule selected by [Mode].
package interp

import (
	"fmt"
	"math"
)

// Mode selects an interpolation rule.
type Mode int

const (
	// ModeLinear uses Linear2.
	ModeLinear Mode = iota
	// ModeHermite uses Hermite4.
	ModeHermite
)

// String returns "linear" or "hermite".
func (m Mode) String() string {
	switch m {
	case ModeLinear:
		return "linear"
	case ModeHermite:
		return "hermite"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps "linear" (or "") and "hermite" to a Mode.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "", "linear":
		return ModeLinear, nil
	case "hermite":
		return ModeHermite, nil
	default:
		return 0, fmt.Errorf("interp: unknown mode %q", name)
	}
}

// Valid reports whether m names a known rule.
func (m Mode) Valid() bool { return m == ModeLinear || m == ModeHermite }

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("interp: invalid mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Linear2 interpolates from x0 (t = 0) to x1 (t = 1).
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Hermite4 interpolates from x0 to x1 with the neighbours xm1 and x2
// setting the end slopes.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	slope := 0.5 * (x1 - xm1)
	quad := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	cubic := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((cubic*t+quad)*t+slope)*t + x0
}

// Lookup reads samples at the fractional index pos. Positions outside
// [0, len-1] clip to the end values and missing Hermite neighbours repeat
// the nearest sample. An empty table reads 0.
func Lookup(samples []float64, pos float64, mode Mode) float64 {
	n := len(samples)
	switch {
	case n == 0:
		return 0
	case n == 1 || !(pos > 0):
		return samples[0]
	case pos >= float64(n-1):
		return samples[n-1]
	}

	i := int(math.Floor(pos))
	t := pos - float64(i)
	if mode != ModeHermite {
		return Linear2(t, samples[i], samples[i+1])
	}
	at := func(k int) float64 { return samples[min(max(k, 0), n-1)] }
	return Hermite4(t, at(i-1), samples[i], samples[i+1], at(i+2))
}
