package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"math"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/lwe-security-estimator/estimator"
	"github.com/tuneinsight/lwe-security-estimator/lwe"
)

// dimensionBackend reports a cost of 2^(n/8) for usvp and an infeasible dual.
type dimensionBackend struct{}

func (dimensionBackend) Rough(ctx context.Context, params lwe.Parameters) (estimator.Evaluation, error) {
	return estimator.Evaluation{
		"usvp": {Rop: math.Exp2(float64(params.N()) / 8)},
		"dual": {Rop: math.Inf(1)},
	}, nil
}

func (b dimensionBackend) Full(ctx context.Context, params lwe.Parameters) (estimator.Evaluation, error) {
	return b.Rough(ctx, params)
}

func TestSweep(t *testing.T) {

	points, err := rangePoints(9, 10, 32, SDist, EDist, lwe.Unbounded())
	require.NoError(t, err)
	require.Len(t, points, 2)

	// duplicate of the first point
	points = append(points, points[0])

	var out, progress bytes.Buffer
	results, err := sweep(context.Background(), dimensionBackend{}, estimator.Rough, points, &out, &progress)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Contains(t, progress.String(), "skipped")

	records, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	require.Equal(t, []string{"LogN", "LogQ", "SecPar", "Cheapest", "MIN", "AVG", "STD", "Fingerprint"}, records[0])
	require.Equal(t, []string{"9", "32.00", "64", "usvp", "64.00000", "64.00000", "0.00000", points[0].Params.Fingerprint()}, records[1])
	require.Equal(t, "128", records[2][2])

	var html bytes.Buffer
	require.NoError(t, render(&html, results))
	require.Contains(t, html.String(), "Security parameter")
}

func TestRangePoints(t *testing.T) {

	_, err := rangePoints(10, 9, 32, SDist, EDist, lwe.Unbounded())
	require.Error(t, err)

	_, err = rangePoints(9, 9, 32, `{"name": "CenteredBinomial"}`, EDist, lwe.Unbounded())
	require.Error(t, err)

	q := primeBelow(32)
	require.True(t, q.ProbablyPrime(32))
	require.Equal(t, int64(4294967291), q.Int64())
	require.Equal(t, -1, q.Cmp(new(big.Int).Lsh(big.NewInt(1), 32)))
}

func TestPresetPoints(t *testing.T) {

	points, err := presetPoints("PN12QP109,PN13QP218")
	require.NoError(t, err)
	require.Len(t, points, 2)
	require.Equal(t, 12, points[0].LogN)
	require.Equal(t, 1<<13, points[1].Params.N())

	_, err = presetPoints("PN99")
	require.Error(t, err)
}

func TestRun(t *testing.T) {

	args := []string{"--backend", "builtin", "--logn-min", "9", "--logn-max", "9"}

	t.Run("Files", func(t *testing.T) {

		dir := t.TempDir()
		csvPath, htmlPath := filepath.Join(dir, "sweep.csv"), filepath.Join(dir, "sweep.html")

		var stdout, stderr bytes.Buffer
		require.NoError(t, run(append(args, "--out", csvPath, "--chart", htmlPath), &stdout, &stderr))
		require.Empty(t, stdout.String())
		require.Contains(t, stderr.String(), "Chart: "+htmlPath)

		f, err := os.Open(csvPath)
		require.NoError(t, err)
		defer f.Close()

		records, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
		require.Equal(t, Header, records[0])

		html, err := os.ReadFile(htmlPath)
		require.NoError(t, err)
		require.Contains(t, string(html), "Security parameter")
	})

	t.Run("ChartFailure", func(t *testing.T) {

		dir := t.TempDir()
		csvPath := filepath.Join(dir, "sweep.csv")

		var stdout, stderr bytes.Buffer
		err := run(append(args, "--out", csvPath, "--chart", filepath.Join(dir, "missing", "sweep.html")), &stdout, &stderr)
		require.ErrorContains(t, err, "create html")

		// the CSV is complete even though the run failed
		data, err := os.ReadFile(csvPath)
		require.NoError(t, err)

		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
	})

	t.Run("UnknownBackend", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		require.ErrorContains(t, run([]string{"--backend", "magic"}, &stdout, &stderr), "unknown backend")
	})

	t.Run("DefaultBackendUnavailable", func(t *testing.T) {

		t.Setenv("LWE_ESTIMATOR_PYTHON", "")
		t.Setenv("PATH", t.TempDir())

		var stdout, stderr bytes.Buffer
		err := run([]string{"--logn-min", "9", "--logn-max", "9"}, &stdout, &stderr)

		var unavailable *estimator.CollaboratorUnavailableError
		require.ErrorAs(t, err, &unavailable)
		require.Empty(t, stdout.String())
	})
}
