// Package sweep runs independent extremal constructions concurrently over a
// set of parameters and returns their certificates in job order.
package sweep

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-selberg/extremal"
	"github.com/cwbudde/algo-selberg/measure/certify"
)

// Job is one parameter set of a sweep.
type Job struct {
	Name   string          `json:"name,omitempty" yaml:"name,omitempty"`
	Params extremal.Params `json:"params" yaml:"params"`
}

// Result pairs a job with its certificate or error.
type Result struct {
	Job         Job                  `json:"job" yaml:"job"`
	Certificate *certify.Certificate `json:"certificate,omitempty" yaml:"certificate,omitempty"`
	Err         error                `json:"-" yaml:"-"`
	Error       string               `json:"error,omitempty" yaml:"error,omitempty"`
}

// Options configures Run.
type Options struct {
	// Workers bounds the number of concurrent jobs. 0 selects GOMAXPROCS.
	Workers int
	// Logger receives one entry per finished job. nil discards.
	Logger *logrus.Logger
	// FailFast cancels the remaining jobs after the first job error.
	FailFast bool
}

// Grid returns one job per (β, Δ) pair, betas outermost, built from base.
func Grid(base extremal.Params, betas, deltas []float64) []Job {
	jobs := make([]Job, 0, len(betas)*len(deltas))
	for _, beta := range betas {
		for _, delta := range deltas {
			p := base
			p.Beta, p.Delta = beta, delta
			jobs = append(jobs, Job{
				Name:   fmt.Sprintf("%s/beta=%g/delta=%g", base.Model, beta, delta),
				Params: p,
			})
		}
	}
	return jobs
}

// Run executes jobs on a bounded worker pool. Job errors are recorded in
// their Result. Run returns an error only when ctx is cancelled or, with
// FailFast, when a job fails; results of jobs that did not run are zero
// apart from their Job.
func Run(ctx context.Context, jobs []Job, opts Options) ([]Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log := opts.Logger
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	results := make([]Result, len(jobs))
	for i, job := range jobs {
		results[i].Job = job
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			job := jobs[i]
			entry := log.WithFields(logrus.Fields{
				"job":   job.Name,
				"model": job.Params.Model.String(),
				"beta":  job.Params.Beta,
				"delta": job.Params.Delta,
			})

			cert, err := extremal.Run(job.Params)
			if err != nil {
				results[i].Err = err
				results[i].Error = err.Error()
				entry.WithError(err).Warn("construction failed")
				if opts.FailFast {
					return fmt.Errorf("sweep: job %d (%s): %w", i, job.Name, err)
				}
				return nil
			}

			results[i].Certificate = cert
			fields := logrus.Fields{
				"ok":     cert.OK(),
				"l1_max": max(cert.L1ErrorPlus, cert.L1ErrorMinus),
			}
			if e := cert.Enforcement; e != nil {
				fields["steps"] = e.Plus.Steps + e.Minus.Steps
			}
			entry.WithFields(fields).Info("construction certified")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}
