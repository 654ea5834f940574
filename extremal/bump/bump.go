// Package bump builds the non-negative band-limited correction functions
// that push a candidate above or below the indicator without leaving the
// allowed frequency support.
//
// Every bump is a finite sum of non-negative kernels with the same bandlimit
// as the baseline, so adding any non-negative multiple of it never creates
// frequencies outside [-Δ, Δ] (or harmonics beyond N on the circle).
package bump

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-selberg/dsp/kernel"
)

// Kind selects a bump shape.
type Kind int

const (
	// KindEdge centres K_Δ at both interval edges.
	KindEdge Kind = iota
	// KindEdgeCenter adds a weighted K_Δ at the origin to KindEdge.
	KindEdgeCenter
	// KindCircle centres the circle Fejér kernel at both edges.
	KindCircle
)

// String returns the bump name.
func (k Kind) String() string {
	switch k {
	case KindEdge:
		return "edge"
	case KindEdgeCenter:
		return "edge+center"
	case KindCircle:
		return "circle-fejer"
	default:
		return "unknown"
	}
}

// Edge returns (K_Δ(x-β) + K_Δ(x+β))/Δ at every node. The peak at each edge
// is 1 (plus the tail of the opposite edge).
func Edge(xs []float64, beta, delta float64) []float64 {
	sum := kernel.SampleFejer(xs, delta, beta)
	vecmath.AddBlockInPlace(sum, kernel.SampleFejer(xs, delta, -beta))
	out := make([]float64, len(xs))
	vecmath.ScaleBlock(out, sum, 1/delta)
	return out
}

// EdgeCenter returns (K_Δ(x-β) + K_Δ(x+β) + w·K_Δ(x))/Δ. Negative w is
// treated as 0 to keep the bump non-negative.
func EdgeCenter(xs []float64, beta, delta, w float64) []float64 {
	out := Edge(xs, beta, delta)
	if w > 0 {
		kernel.Accumulate(out, kernel.TypeFejer, xs, kernel.WithBandlimit(delta), kernel.WithScale(w/delta))
	}
	return out
}

// Circle returns F_N(x-β) + F_N(x+β) for the degree-n circle Fejér kernel.
func Circle(xs []float64, beta float64, n int) []float64 {
	if len(xs) == 0 {
		return []float64{}
	}
	out := kernel.Sample(kernel.TypeFejerCircle, xs, kernel.WithDegree(n), kernel.WithCenter(beta))
	kernel.Accumulate(out, kernel.TypeFejerCircle, xs, kernel.WithDegree(n), kernel.WithCenter(-beta))
	return out
}

// Build dispatches on kind. centerWeight only affects KindEdgeCenter and
// delta is truncated to the degree floor(Δ) for KindCircle.
func Build(kind Kind, xs []float64, beta, delta, centerWeight float64) []float64 {
	switch kind {
	case KindEdgeCenter:
		return EdgeCenter(xs, beta, delta, centerWeight)
	case KindCircle:
		return Circle(xs, beta, int(math.Floor(delta)))
	default:
		return Edge(xs, beta, delta)
	}
}

// SpectralTerm returns the transform of c·Edge divided by Λ(ξ/Δ),
// (2c/Δ)·cos(2πβξ), at every frequency of xis.
func SpectralTerm(xis []float64, beta, delta, c float64) []float64 {
	out := make([]float64, len(xis))
	amp := 2 * c / delta
	for i, xi := range xis {
		out[i] = amp * math.Cos(2*math.Pi*beta*xi)
	}
	return out
}

// Mass returns ∫ Edge = 2/Δ and ∫ EdgeCenter = (2 + w)/Δ, the L1 cost of a
// unit multiple of the bump on the real line.
func Mass(kind Kind, delta, centerWeight float64) float64 {
	switch kind {
	case KindEdgeCenter:
		return (2 + max(centerWeight, 0)) / delta
	case KindCircle:
		return 2
	default:
		return 2 / delta
	}
}
