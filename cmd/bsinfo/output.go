package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-selberg/extremal/sweep"
	"github.com/cwbudde/algo-selberg/measure/certify"
)

func writeCertificate(w io.Writer, format string, cert *certify.Certificate) error {
	switch strings.ToLower(format) {
	case "json":
		return writeJSON(w, cert)
	case "yaml":
		return writeYAML(w, cert)
	default:
		return cert.WriteText(w)
	}
}

func writeResults(w io.Writer, format string, results []sweep.Result) error {
	switch strings.ToLower(format) {
	case "json":
		return writeJSON(w, results)
	case "yaml":
		return writeYAML(w, results)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := "Job\tVerdict\tMin gap +\tMin gap -\tL1 +\tL1 -\tTarget\n" +
		"---\t-------\t---------\t---------\t----\t----\t------\n"
	if _, err := fmt.Fprint(tw, header); err != nil {
		return err
	}
	for _, r := range results {
		var err error
		switch c := r.Certificate; {
		case r.Err != nil:
			_, err = fmt.Fprintf(tw, "%s\terror\t%s\t\t\t\t\n", r.Job.Name, r.Error)
		case c == nil:
			_, err = fmt.Fprintf(tw, "%s\tskipped\t\t\t\t\t\n", r.Job.Name)
		default:
			_, err = fmt.Fprintf(tw, "%s\t%s\t%.3e\t%.3e\t%.6f\t%.6f\t%.6f\n",
				r.Job.Name, verdict(c.OK()),
				c.MinGapMajorant, c.MinGapMinorant,
				c.L1ErrorPlus, c.L1ErrorMinus, c.TheoreticalL1Target)
		}
		if err != nil {
			return err
		}
	}
	return tw.Flush()
}

func verdict(ok bool) string {
	if ok {
		return "ok"
	}
	return "FAIL"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
