package certify

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteText prints a human-readable summary of c.
func (c *Certificate) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	p := &printer{w: tw}

	p.row("model", "%s", c.Model)
	p.row("beta", "%g", c.Beta)
	p.row("delta", "%g", c.Delta)
	if c.N > 0 {
		p.row("N", "%d", c.N)
	}
	p.row("grid size", "%d", c.GridSize)
	p.row("tolerance", "%.3g", c.Tolerance)
	p.row("majorant", "%s (min gap %.6e)", verdict(c.MajorantOK), c.MinGapMajorant)
	p.row("minorant", "%s (min gap %.6e)", verdict(c.MinorantOK), c.MinGapMinorant)
	p.row("L1 error +", "%.6f (signed %.6f)", c.L1ErrorPlus, c.SignedErrorPlus)
	p.row("L1 error -", "%.6f (signed %.6f)", c.L1ErrorMinus, c.SignedErrorMinus)
	p.row("target", "%.6f", c.TheoreticalL1Target)

	if e := c.Enforcement; e != nil {
		if e.Bump != "" {
			p.row("bump", "%s (mass %.6g)", e.Bump, e.BumpMass)
		}
		if e.Weight > 0 {
			p.row("bump weight", "%.6g", e.Weight)
		}
		p.row("enforce +", "steps=%d lift=%.6g residual=%.3e complete=%t",
			e.Plus.Steps, e.Plus.Lift, e.Plus.Residual, e.Plus.Complete)
		p.row("enforce -", "steps=%d lift=%.6g residual=%.3e complete=%t",
			e.Minus.Steps, e.Minus.Lift, e.Minus.Residual, e.Minus.Complete)
		if e.Nudge != 0 {
			p.row("dc nudge", "%.6e", e.Nudge)
		}
	}

	if k := c.Coefficients; k != nil && len(k.APlus) > 0 && len(k.AMinus) > 0 {
		p.row("a0 +/-", "%.12f / %.12f", k.APlus[0], k.AMinus[0])
	}

	if s := c.Spectral; s != nil {
		if len(s.Samples) > 0 {
			p.row("spectral samples", "%d on [%g, %g]", len(s.Samples), s.Samples[0].Xi, s.Samples[len(s.Samples)-1].Xi)
		}
		if a := s.Audit; a != nil && a.Plus != nil && a.Minus != nil {
			p.row("fft audit", "M=%d leakage +%.3e -%.3e", a.Plus.Size, a.Plus.Leakage, a.Minus.Leakage)
		}
	}

	if p.err != nil {
		return p.err
	}
	return tw.Flush()
}

func verdict(ok bool) string {
	if ok {
		return "ok"
	}
	return "FAIL"
}

// printer keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) row(label, format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, label+"\t"+format+"\n", args...)
}
