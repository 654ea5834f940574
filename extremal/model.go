// Package extremal selects and runs one certified majorant/minorant
// construction and returns its certificate.
//
// Four constructions are available:
//
//   - ModelSelberg: real-line Selberg pair, Vaaler baseline plus edge bumps.
//   - ModelPaleyWiener: enforced real-line pair on a Fejér baseline.
//   - ModelCircle: closed-form trigonometric pair on the circle.
//   - ModelCircleForced: the circle pair after a forced Fejér correction.
//
// The two circle variants share only the bump correction.
package extremal

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidParameter wraps every parameter error of the constructions.
var ErrInvalidParameter = errors.New("extremal: invalid parameter")

// Model identifies a construction.
type Model int

const (
	// ModelSelberg is the real-line Selberg pair.
	ModelSelberg Model = iota
	// ModelPaleyWiener is the enforced real-line pair on a Fejér baseline.
	ModelPaleyWiener
	// ModelCircle is the closed-form circle pair.
	ModelCircle
	// ModelCircleForced is the circle pair after the forced correction.
	ModelCircleForced
)

var modelNames = [...]string{
	ModelSelberg:      "selberg",
	ModelPaleyWiener:  "paley-wiener",
	ModelCircle:       "circle",
	ModelCircleForced: "circle-forced",
}

// Models lists every construction in declaration order.
func Models() []Model {
	return []Model{ModelSelberg, ModelPaleyWiener, ModelCircle, ModelCircleForced}
}

// String returns the model name used in certificates and on the command line.
func (m Model) String() string {
	if m < 0 || int(m) >= len(modelNames) {
		return fmt.Sprintf("Model(%d)", int(m))
	}
	return modelNames[m]
}

// Circular reports whether m lives on the circle.
func (m Model) Circular() bool {
	return m == ModelCircle || m == ModelCircleForced
}

// ParseModel maps a model name to a Model. Matching ignores case and
// accepts "_" or " " for "-".
func ParseModel(name string) (Model, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)
	switch key {
	case "pw":
		return ModelPaleyWiener, nil
	case "forced":
		return ModelCircleForced, nil
	}
	for i, n := range modelNames {
		if n == key {
			return Model(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown model %q", ErrInvalidParameter, name)
}

// MarshalText implements encoding.TextMarshaler.
func (m Model) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(modelNames) {
		return nil, fmt.Errorf("%w: model %d", ErrInvalidParameter, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Model) UnmarshalText(text []byte) error {
	parsed, err := ParseModel(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
