package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-selberg/extremal"
	"github.com/cwbudde/algo-selberg/extremal/sweep"
	"github.com/cwbudde/algo-selberg/internal/config"
)

var modelSummaries = map[extremal.Model]string{
	extremal.ModelSelberg:      "real line, Vaaler baseline with edge bumps (target 1/Δ)",
	extremal.ModelPaleyWiener:  "real line, Fejér baseline, enforced with DC nudge",
	extremal.ModelCircle:       "circle, closed-form coefficients (target 1/(N+1))",
	extremal.ModelCircleForced: "circle, closed form plus forced Fejér correction",
}

// runFlags mirrors the run fields of config.Config.
type runFlags struct {
	configFile   string
	beta         float64
	delta        float64
	gridSize     int
	tolerance    float64
	weight       float64
	autoWeight   bool
	tight        bool
	baseline     string
	interp       string
	enforce      bool
	spectral     int
	audit        bool
	workers      int
	output       string
	logLevel     string
	betas        []float64
	deltas       []float64
	sweepWorkers int
	failFast     bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:          "bsinfo",
		Short:        "certified Beurling–Selberg majorants and minorants",
		SilenceUsage: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.AddCommand(newRunCmd(), newSweepCmd(), newModelsCmd(), newKernelsCmd())
	return root
}

func addRunFlags(fs *pflag.FlagSet, f *runFlags) {
	def := config.Default()
	fs.StringVar(&f.configFile, "config", "", "config file path (yaml)")
	fs.Float64Var(&f.beta, "beta", def.Beta, "interval half-width β")
	fs.Float64Var(&f.delta, "delta", def.Delta, "bandlimit Δ (circle degree N = floor(Δ))")
	fs.IntVar(&f.gridSize, "grid", 0, "validation grid size (0 = model default)")
	fs.Float64Var(&f.tolerance, "tol", 0, "accepted violation (0 = model default)")
	fs.Float64Var(&f.weight, "weight", 0, "initial bump weight (0 = model default)")
	fs.BoolVar(&f.autoWeight, "auto-weight", false, "grow the bump weight until the pair passes")
	fs.BoolVar(&f.tight, "tight", false, "use the tight Fejér table")
	fs.StringVar(&f.baseline, "baseline", "vaaler", "selberg baseline: vaaler or fejer")
	fs.StringVar(&f.interp, "interp", "linear", "fejer table reads: linear or hermite")
	fs.BoolVar(&f.enforce, "enforce", false, "run the enforcement loop (selberg)")
	fs.IntVar(&f.spectral, "spectral", 0, "number of spectral samples on [-Δ, Δ]")
	fs.BoolVar(&f.audit, "audit", false, "attach the FFT support audit (circle)")
	fs.IntVar(&f.workers, "workers", 0, "certificate scan workers")
	fs.StringVarP(&f.output, "output", "o", def.Output, "output format: text, json or yaml")
	fs.StringVar(&f.logLevel, "log-level", def.LogLevel, "log level: debug, info, warn or error")
}

func newRunCmd() *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run [model]",
		Short: "build and certify one construction",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f, args)
			if err != nil {
				return err
			}
			log := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)

			p, err := cfg.Params()
			if err != nil {
				return err
			}
			cert, err := extremal.Run(p)
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"model": cert.Model,
				"beta":  cert.Beta,
				"delta": cert.Delta,
				"ok":    cert.OK(),
			}).Debug("construction certified")

			return writeCertificate(cmd.OutOrStdout(), cfg.Output, cert)
		},
	}
	addRunFlags(cmd.Flags(), f)
	return cmd
}

func newSweepCmd() *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "certify a grid of (β, Δ) parameters concurrently",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f, args)
			if err != nil {
				return err
			}
			jobs := cfg.Jobs()
			if len(jobs) == 0 {
				return fmt.Errorf("sweep: no jobs, set --betas and --deltas or a sweep section")
			}
			log := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)

			results, err := sweep.Run(contextOrBackground(cmd), jobs, sweep.Options{
				Workers:  cfg.Sweep.Workers,
				Logger:   log,
				FailFast: cfg.Sweep.FailFast,
			})
			if err != nil {
				return err
			}
			return writeResults(cmd.OutOrStdout(), cfg.Output, results)
		},
	}
	addRunFlags(cmd.Flags(), f)
	cmd.Flags().Float64SliceVar(&f.betas, "betas", nil, "comma-separated half-widths")
	cmd.Flags().Float64SliceVar(&f.deltas, "deltas", nil, "comma-separated bandlimits")
	cmd.Flags().IntVar(&f.sweepWorkers, "parallel", 0, "concurrent jobs (0 = GOMAXPROCS)")
	cmd.Flags().BoolVar(&f.failFast, "fail-fast", false, "stop after the first failing job")
	return cmd
}

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "list available constructions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			if _, err := fmt.Fprint(tw, "Model\tDescription\n-----\t-----------\n"); err != nil {
				return err
			}
			for _, m := range extremal.Models() {
				if _, err := fmt.Fprintf(tw, "%s\t%s\n", m, modelSummaries[m]); err != nil {
					return err
				}
			}
			return tw.Flush()
		},
	}
}

// resolveConfig loads --config over the defaults and applies the flags the
// user set explicitly. A model argument overrides both.
func resolveConfig(cmd *cobra.Command, f *runFlags, args []string) (*config.Config, error) {
	cfg := config.Default()
	if f.configFile != "" {
		loaded, err := config.Load(f.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	fs := cmd.Flags()
	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("beta", func() { cfg.Beta = f.beta })
	set("delta", func() { cfg.Delta = f.delta })
	set("grid", func() { cfg.GridSize = f.gridSize })
	set("tol", func() { cfg.Tolerance = f.tolerance })
	set("weight", func() { cfg.Weight = f.weight })
	set("auto-weight", func() { cfg.AutoWeight = f.autoWeight })
	set("tight", func() { cfg.Tight = f.tight })
	set("baseline", func() { cfg.Baseline = f.baseline })
	set("interp", func() { cfg.Interp = f.interp })
	set("enforce", func() { cfg.Enforce = f.enforce })
	set("spectral", func() { cfg.SpectralSamples = f.spectral })
	set("audit", func() { cfg.Audit = f.audit })
	set("workers", func() { cfg.Workers = f.workers })
	set("output", func() { cfg.Output = f.output })
	set("log-level", func() { cfg.LogLevel = f.logLevel })
	if fs.Lookup("betas") != nil {
		set("betas", func() { cfg.Sweep.Betas = f.betas })
		set("deltas", func() { cfg.Sweep.Deltas = f.deltas })
		set("parallel", func() { cfg.Sweep.Workers = f.sweepWorkers })
		set("fail-fast", func() { cfg.Sweep.FailFast = f.failFast })
	}
	if len(args) == 1 {
		cfg.Model = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

// contextOrBackground returns the command context, or Background when the
// command runs outside Execute.
func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
