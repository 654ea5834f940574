package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-selberg/extremal"
	"github.com/cwbudde/algo-selberg/extremal/sweep"
	"github.com/cwbudde/algo-selberg/internal/config"
	"github.com/cwbudde/algo-selberg/measure/certify"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(&stdout, &stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestModelsListsEveryModel(t *testing.T) {
	out, _, err := execute(t, "models")
	require.NoError(t, err)
	for _, m := range extremal.Models() {
		assert.Contains(t, out, m.String())
		assert.NotEmpty(t, modelSummaries[m], "summary for %s", m)
	}
}

func TestKernelsListsEveryKernel(t *testing.T) {
	out, _, err := execute(t, "kernels", "--delta", "8", "--x", "0,0.5")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "x=0.5")

	rows := make([][]string, 0, 4)
	for _, line := range lines[1:] {
		rows = append(rows, strings.Fields(line))
	}
	assert.Equal(t, []string{"Fejer", "true", "true", "8.000000", "0.000000"}, rows[0])
	assert.Equal(t, []string{"Fejer", "circle", "true", "true", "9.000000", "0.111111"}, rows[1])
	assert.Equal(t, []string{"Vaaler", "false", "false", "0.000000", "1.000000"}, rows[2])
	assert.Equal(t, []string{"Beurling", "false", "false", "1.000000", "1.000000"}, rows[3])
}

func TestKernelsSelectsByName(t *testing.T) {
	out, _, err := execute(t, "kernels", "fejer-circle", "--degree", "6", "--x", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Fejer circle")
	assert.Contains(t, out, "7.000000")
	assert.NotContains(t, out, "Vaaler")

	_, _, err = execute(t, "kernels", "gauss")
	require.Error(t, err)
	_, _, err = execute(t, "kernels", "--delta", "-1")
	require.Error(t, err)
}

func TestRunText(t *testing.T) {
	out, _, err := execute(t, "run", "circle", "--beta", "0.25", "--delta", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "circle")
	assert.Contains(t, out, "a0 +/-")
	assert.Contains(t, out, "target")
}

func TestRunHermiteTable(t *testing.T) {
	out, _, err := execute(t, "run", "selberg", "--baseline", "fejer", "--interp", "hermite",
		"--enforce", "--beta", "0.3", "--grid", "801", "-o", "json")
	require.NoError(t, err)

	var cert certify.Certificate
	require.NoError(t, json.Unmarshal([]byte(out), &cert))
	assert.True(t, cert.OK())
	assert.Equal(t, 801, cert.GridSize)
}

func TestRunJSON(t *testing.T) {
	out, _, err := execute(t, "run", "circle", "--beta", "0.25", "--delta", "10", "-o", "json")
	require.NoError(t, err)

	var cert certify.Certificate
	require.NoError(t, json.Unmarshal([]byte(out), &cert))
	assert.Equal(t, "circle", cert.Model)
	assert.Equal(t, 10, cert.N)
	assert.Equal(t, 1.0/11, cert.TheoreticalL1Target)
	require.NotNil(t, cert.Coefficients)
	assert.Len(t, cert.Coefficients.APlus, 11)
}

func TestRunYAMLForcedCircle(t *testing.T) {
	out, _, err := execute(t, "run", "circle-forced", "--beta", "0.25", "--delta", "10", "--audit", "-o", "yaml")
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &fields))
	assert.Equal(t, true, fields["majorant_ok"])
	assert.Equal(t, true, fields["minorant_ok"])
	assert.Contains(t, fields, "enforcement")
	assert.Contains(t, fields, "spectral")
}

func TestRunConfigFileWithFlagOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := config.Default()
	cfg.Model = "circle"
	cfg.Beta = 0.25
	cfg.Delta = 10
	cfg.Output = "json"
	require.NoError(t, config.Save(path, cfg))

	out, _, err := execute(t, "run", "--config", path, "--delta", "6")
	require.NoError(t, err)

	var cert certify.Certificate
	require.NoError(t, json.Unmarshal([]byte(out), &cert))
	assert.Equal(t, 6, cert.N, "flags override the file")
	assert.Equal(t, 0.25, cert.Beta)
}

func TestRunRejectsInvalidInput(t *testing.T) {
	_, _, err := execute(t, "run", "chebyshev")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, _, err = execute(t, "run", "circle", "--beta", "0.5")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, _, err = execute(t, "run", "-o", "xml")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, _, err = execute(t, "run", "--interp", "sinc")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, _, err = execute(t, "run", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSweepText(t *testing.T) {
	out, logs, err := execute(t, "sweep", "circle",
		"--betas", "0.1,0.25", "--deltas", "4,8", "--grid", "2001", "--parallel", "2")
	require.NoError(t, err)

	for _, name := range []string{
		"circle/beta=0.1/delta=4",
		"circle/beta=0.1/delta=8",
		"circle/beta=0.25/delta=4",
		"circle/beta=0.25/delta=8",
	} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, logs, "construction certified")
}

func TestSweepJSON(t *testing.T) {
	out, _, err := execute(t, "sweep", "circle-forced",
		"--betas", "0.2", "--deltas", "6,9", "--grid", "2001", "-o", "json", "--log-level", "error")
	require.NoError(t, err)

	var results []sweep.Result
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	for i, r := range results {
		require.NotNil(t, r.Certificate, "job %d", i)
		assert.Empty(t, r.Error)
		assert.Equal(t, extremal.ModelCircleForced, r.Job.Params.Model)
		assert.NotNil(t, r.Certificate.Enforcement)
	}
	assert.Equal(t, 6, results[0].Certificate.N)
	assert.Equal(t, 9, results[1].Certificate.N)
}

func TestSweepRequiresGrid(t *testing.T) {
	_, _, err := execute(t, "sweep", "circle")
	require.Error(t, err)

	_, _, err = execute(t, "sweep", "circle", "--betas", "0.1")
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestSweepConcurrencyFlag(t *testing.T) {
	_, _, err := execute(t, "sweep", "circle",
		"--betas", "0.1", "--deltas", "4", "--grid", "2001", "--workers", "4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag: --workers")

	out, _, err := execute(t, "sweep", "circle",
		"--betas", "0.1", "--deltas", "4", "--grid", "2001", "--parallel", "4", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "circle/beta=0.1/delta=4")
}
