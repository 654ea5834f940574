package main

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-selberg/dsp/kernel"
)

type kernelEntry struct {
	name string
	typ  kernel.Type
}

var kernelRegistry = []kernelEntry{
	{"fejer", kernel.TypeFejer},
	{"fejer-circle", kernel.TypeFejerCircle},
	{"vaaler", kernel.TypeVaaler},
	{"beurling", kernel.TypeBeurling},
}

func newKernelsCmd() *cobra.Command {
	var (
		delta  float64
		degree int
		xs     []float64
	)
	cmd := &cobra.Command{
		Use:   "kernels [name ...]",
		Short: "print kernel properties and sample values",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := kernel.ValidateBandlimit(delta); err != nil {
				return err
			}
			if degree == 0 {
				degree = max(int(math.Floor(delta)), 1)
			}
			if err := kernel.ValidateDegree(degree); err != nil {
				return err
			}
			entries, err := selectKernels(args)
			if err != nil {
				return err
			}
			return writeKernels(cmd.OutOrStdout(), entries, xs,
				kernel.WithBandlimit(delta), kernel.WithDegree(degree))
		},
	}
	cmd.Flags().Float64Var(&delta, "delta", 8, "bandlimit Δ of the continuous kernels")
	cmd.Flags().IntVar(&degree, "degree", 0, "circle degree N (0 = floor(Δ))")
	cmd.Flags().Float64SliceVar(&xs, "x", []float64{0, 0.0625, 0.125, 0.25, 0.5}, "sample points")
	return cmd
}

func selectKernels(names []string) ([]kernelEntry, error) {
	if len(names) == 0 {
		return kernelRegistry, nil
	}
	out := make([]kernelEntry, 0, len(names))
	for _, name := range names {
		found := false
		for _, e := range kernelRegistry {
			if e.name == strings.ToLower(name) {
				out = append(out, e)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown kernel %q", name)
		}
	}
	return out, nil
}

func writeKernels(w io.Writer, entries []kernelEntry, xs []float64, opts ...kernel.Option) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := "Kernel\tEven\tNon-negative"
	for _, x := range xs {
		header += fmt.Sprintf("\tx=%g", x)
	}
	if _, err := fmt.Fprintln(tw, header); err != nil {
		return err
	}
	for _, e := range entries {
		info := kernel.Info(e.typ)
		row := fmt.Sprintf("%s\t%t\t%t", info.Name, info.Even, info.NonNegative)
		for _, v := range kernel.Sample(e.typ, xs, opts...) {
			row += fmt.Sprintf("\t%.6f", v)
		}
		if _, err := fmt.Fprintln(tw, row); err != nil {
			return err
		}
	}
	return tw.Flush()
}
