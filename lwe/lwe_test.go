package lwe

import (
	"encoding/json"
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/lwe-security-estimator/distribution"
)

func descriptor(t *testing.T, s string) distribution.Descriptor {
	d, err := distribution.ParseDescriptor([]byte(s))
	require.NoError(t, err)
	return d
}

func TestNewParameters(t *testing.T) {

	q := big.NewInt(12289)
	xe := distribution.DiscreteGaussian{Sigma: 3.2}

	t.Run("Valid", func(t *testing.T) {

		params, err := NewParameters(512, q, distribution.Binary, xe, Unbounded())
		require.NoError(t, err)

		require.Equal(t, 512, params.N())
		require.Equal(t, 0, params.Q().Cmp(q))
		require.Equal(t, distribution.Binary, params.Xs())
		require.Equal(t, 512, params.Xe().Dimension())
		require.True(t, params.M().IsUnbounded())
		require.InDelta(t, math.Log2(12289), params.LogQ(), 1e-12)
	})

	t.Run("ModulusIsCopied", func(t *testing.T) {
		qq := big.NewInt(12289)
		params, err := NewParameters(512, qq, distribution.Binary, xe, Unbounded())
		require.NoError(t, err)
		qq.SetInt64(7)
		params.Q().SetInt64(3)
		require.Equal(t, int64(12289), params.Q().Int64())
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, tc := range []struct {
			n  int
			q  *big.Int
			xs distribution.Noise
			xe distribution.Noise
			m  Samples
		}{
			{0, q, distribution.Binary, xe, Unbounded()},
			{512, big.NewInt(1), distribution.Binary, xe, Unbounded()},
			{512, nil, distribution.Binary, xe, Unbounded()},
			{512, q, nil, xe, Unbounded()},
			{512, q, distribution.Binary, nil, Unbounded()},
			{512, q, distribution.Binary, xe, Bounded(-1)},
		} {
			_, err := NewParameters(tc.n, tc.q, tc.xs, tc.xe, tc.m)
			require.Error(t, err)
		}
	})

	t.Run("SparseSecretTooHeavy", func(t *testing.T) {
		_, err := NewParameters(64, q, distribution.SparseTernary{P: 40, M: 40}, xe, Unbounded())
		var verr *distribution.ValidationError
		require.True(t, errors.As(err, &verr))
		require.Equal(t, "n", verr.Field)
	})
}

func TestRequestBuild(t *testing.T) {

	q := big.NewInt(12289)

	t.Run("ModulusFallback", func(t *testing.T) {

		params, err := Request{
			N:      1024,
			Q:      q,
			Secret: descriptor(t, `{"name": "UniformMod"}`),
			Error:  descriptor(t, `{"name": "DiscreteGaussianAlpha", "alpha": 0.0005}`),
			M:      Bounded(2048),
		}.Build()
		require.NoError(t, err)

		require.Equal(t, 0, params.Xs().(distribution.UniformMod).Q.Cmp(q))
		require.Equal(t, 0, params.Xe().(distribution.DiscreteGaussianAlpha).Q.Cmp(q))
		m, ok := params.M().Value()
		require.True(t, ok)
		require.Equal(t, 2048, m)
	})

	t.Run("MissingField", func(t *testing.T) {
		_, err := Request{
			N:      512,
			Q:      q,
			Secret: descriptor(t, `{"name": "Binary"}`),
			Error:  descriptor(t, `{"name": "CenteredBinomial"}`),
		}.Build()
		var verr *distribution.ValidationError
		require.True(t, errors.As(err, &verr))
		require.Equal(t, "eta", verr.Field)
	})

	t.Run("UnknownKind", func(t *testing.T) {
		_, err := Request{
			N:      512,
			Q:      q,
			Secret: descriptor(t, `{"name": "Cauchy"}`),
			Error:  descriptor(t, `{"name": "Binary"}`),
		}.Build()
		var unknown *distribution.UnknownKindError
		require.True(t, errors.As(err, &unknown))
	})
}

func TestFingerprint(t *testing.T) {

	req := Request{
		N:      512,
		Q:      big.NewInt(12289),
		Secret: descriptor(t, `{"name": "Binary"}`),
		Error:  descriptor(t, `{"name": "DiscreteGaussian", "stddev": 3.2}`),
	}

	a, err := req.Build()
	require.NoError(t, err)

	b, err := req.Build()
	require.NoError(t, err)

	require.Equal(t, a.Fingerprint(), b.Fingerprint())
	require.Len(t, a.Fingerprint(), 64)

	req.M = Bounded(1024)
	c, err := req.Build()
	require.NoError(t, err)
	require.NotEqual(t, a.Fingerprint(), c.Fingerprint())

	require.Contains(t, a.String(), "n=512")
	require.Contains(t, a.String(), "m=oo")
}

func TestLog2(t *testing.T) {
	require.InDelta(t, 10.0, Log2(big.NewInt(1024)), 1e-12)

	x := new(big.Int).Lsh(big.NewInt(1), 1761)
	require.InDelta(t, 1761.0, Log2(x), 1e-9)

	x.Add(x, x)
	require.InDelta(t, 1762.0, Log2(x), 1e-9)

	require.True(t, math.IsInf(Log2(big.NewInt(0)), -1))
}

func TestSamples(t *testing.T) {

	require.Equal(t, "oo", Unbounded().String())
	require.Equal(t, "42", Bounded(42).String())
	require.True(t, math.IsInf(Unbounded().Float64(), 1))
	require.Equal(t, 10, Bounded(10).Min(100))
	require.Equal(t, 100, Unbounded().Min(100))

	for _, s := range []Samples{Unbounded(), Bounded(0), Bounded(256)} {
		data, err := json.Marshal(s)
		require.NoError(t, err)
		var back Samples
		require.NoError(t, json.Unmarshal(data, &back))
		require.Equal(t, s, back)
	}
}
