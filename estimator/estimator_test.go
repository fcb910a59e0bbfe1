package estimator

import (
	"context"
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/lwe-security-estimator/distribution"
	"github.com/tuneinsight/lwe-security-estimator/lwe"
)

type fakeBackend struct {
	rough, full Evaluation
	err         error
	calls       []Mode
}

func (f *fakeBackend) Rough(ctx context.Context, params lwe.Parameters) (Evaluation, error) {
	f.calls = append(f.calls, Rough)
	return f.rough, f.err
}

func (f *fakeBackend) Full(ctx context.Context, params lwe.Parameters) (Evaluation, error) {
	f.calls = append(f.calls, Exact)
	return f.full, f.err
}

func testParameters(t *testing.T) lwe.Parameters {
	params, err := lwe.NewParameters(512, big.NewInt(12289), distribution.Binary, distribution.DiscreteGaussian{Sigma: 3.2}, lwe.Unbounded())
	require.NoError(t, err)
	return params
}

func TestReduce(t *testing.T) {

	for _, tc := range []struct {
		name string
		eval Evaluation
		want uint32
	}{
		{"Empty", Evaluation{}, 0},
		{"Nil", nil, 0},
		{"Minimum", Evaluation{"A": {Rop: 8}, "B": {Rop: 1024}}, 3},
		{"Floor", Evaluation{"usvp": {Rop: math.Exp2(127.9)}, "dual": {Rop: math.Exp2(140.2)}}, 127},
		{"Infinite", Evaluation{"A": {Rop: math.Inf(1)}, "B": {Rop: math.Inf(1)}}, Unbounded},
		{"OneFinite", Evaluation{"A": {Rop: math.Inf(1)}, "B": {Rop: 1 << 20}}, 20},
		{"NaNIgnored", Evaluation{"A": {Rop: math.NaN()}, "B": {Rop: 64}}, 6},
		{"OnlyNaN", Evaluation{"A": {Rop: math.NaN()}}, 0},
		{"BelowOne", Evaluation{"A": {Rop: 0.5}}, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Reduce(tc.eval))
		})
	}
}

func TestEstimate(t *testing.T) {

	params := testParameters(t)
	ctx := context.Background()

	t.Run("Dispatch", func(t *testing.T) {

		b := &fakeBackend{
			rough: Evaluation{"usvp": {Rop: 1 << 10}},
			full:  Evaluation{"usvp": {Rop: 1 << 12}, "dual": {Rop: 1 << 14}},
		}

		secpar, eval, err := SecurityLevel(ctx, b, params, Rough)
		require.NoError(t, err)
		require.Equal(t, uint32(10), secpar)
		require.Len(t, eval, 1)

		secpar, eval, err = NewEstimator(b, Exact).SecurityLevel(ctx, params)
		require.NoError(t, err)
		require.Equal(t, uint32(12), secpar)
		require.Len(t, eval, 2)

		require.Equal(t, []Mode{Rough, Exact}, b.calls)
	})

	t.Run("BackendFailure", func(t *testing.T) {

		cause := errors.New("boom")
		_, err := Estimate(ctx, &fakeBackend{err: cause}, params, Rough)

		var eerr *EstimationError
		require.True(t, errors.As(err, &eerr))
		require.ErrorIs(t, err, cause)
		require.Contains(t, err.Error(), "boom")
	})

	t.Run("Unavailable", func(t *testing.T) {

		_, err := Estimate(ctx, &fakeBackend{err: &CollaboratorUnavailableError{Cause: errors.New("no module named estimator")}}, params, Exact)

		var unavailable *CollaboratorUnavailableError
		require.True(t, errors.As(err, &unavailable))

		var eerr *EstimationError
		require.False(t, errors.As(err, &eerr))
		require.Contains(t, err.Error(), "no module named estimator")
	})

	t.Run("NoBackend", func(t *testing.T) {
		_, err := Estimate(ctx, nil, params, Rough)
		var unavailable *CollaboratorUnavailableError
		require.True(t, errors.As(err, &unavailable))
	})
}

func TestEvaluation(t *testing.T) {

	eval := Evaluation{
		"usvp": {Rop: 1 << 20},
		"dual": {Rop: 1 << 24},
		"bdd":  {Rop: 1 << 20},
	}

	require.Equal(t, []string{"bdd", "dual", "usvp"}, eval.Names())

	name, cost, ok := eval.Cheapest()
	require.True(t, ok)
	require.Equal(t, "bdd", name)
	require.Equal(t, 20.0, cost.LogRop())

	require.Equal(t, []float64{20, 24, 20}, eval.LogRops())

	_, _, ok = Evaluation{}.Cheapest()
	require.False(t, ok)

	t.Run("NaN", func(t *testing.T) {

		eval := Evaluation{
			"bdd":  {Rop: math.NaN()},
			"dual": {Rop: 1 << 24},
			"usvp": {Rop: 1 << 20},
		}

		name, cost, ok := eval.Cheapest()
		require.True(t, ok)
		require.Equal(t, "usvp", name)
		require.Equal(t, 20.0, cost.LogRop())
		require.Equal(t, uint32(20), Reduce(eval))

		_, _, ok = Evaluation{"usvp": {Rop: math.NaN()}}.Cheapest()
		require.False(t, ok)
	})
}

func TestParseMode(t *testing.T) {

	for in, want := range map[string]Mode{
		"":       Rough,
		"rough":  Rough,
		"Exact":  Exact,
		" full ": Exact,
	} {
		got, err := ParseMode(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ParseMode("precise")
	require.Error(t, err)

	require.Equal(t, "rough", Rough.String())
	require.Equal(t, "exact", Exact.String())
}
