// Package conv computes the band-limited baseline (χ ⋆ k)(x) of the
// indicator χ of [-β, β] against an even kernel k of unit mass.
//
// The convolution is never expanded analytically. Instead every kernel is
// represented by an antiderivative A, and
//
//	(χ ⋆ k)(x) = A(x + β) - A(x - β).
//
// Two antiderivatives are provided:
//
//   - [Table]: the Fejér kernel K_Δ integrated numerically with the
//     trapezoidal rule on a uniform grid over [-U, U] and evaluated by linear
//     interpolation. Queries outside [-U, U] are clipped, so the baseline
//     flattens to exactly 0 far from the interval. This saturation is the
//     boundary policy, not an error.
//   - [VaalerPrimitive]: the closed form ½·H(Δt) of Vaaler's kernel. With it
//     the baseline plus half of the edge bump is Selberg's extremal pair.
//
// # Usage
//
//	table, err := conv.NewFejerTable(beta, delta, conv.WithTableConfig(conv.TightTableConfig()))
//	ind, err := conv.NewIndicator(beta, table)
//	baseline := ind.Sample(xs)
//
// # Resolution
//
// The table step is h = 1/(StepFactor·Δ) and the half-width is
// U = SupportScale·β + TailFactor/Δ. Larger factors cost memory and time
// and tighten the certificate margin:
//
//	default       StepFactor 20, TailFactor 12, SupportScale 2
//	tight         StepFactor 40, TailFactor 20, SupportScale 2
//	paley-wiener  StepFactor 60, TailFactor 32, SupportScale 1
package conv
