package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/lwe-security-estimator/estimator"
)

func TestSecurityStats(t *testing.T) {

	t.Run("Finite", func(t *testing.T) {

		s := NewSecurityStats()
		s.Update(estimator.Evaluation{
			"usvp": {Rop: math.Exp2(100)},
			"dual": {Rop: math.Exp2(120)},
			"bdd":  {Rop: math.Inf(1)},
		})

		require.NoError(t, s.Finalize())
		require.Equal(t, 2, s.Len())
		require.Equal(t, 1, s.Infinite)
		require.InDelta(t, 100, s.MinLogRop, 1e-9)
		require.InDelta(t, 110, s.MeanLogRop, 1e-9)
		require.InDelta(t, 10, s.StdLogRop, 1e-9)

		require.Equal(t, []string{"100.00000", "110.00000", "10.00000"}, s.ToCSV())
		require.Len(t, s.ToCSV(), len(Header))
	})

	t.Run("Infeasible", func(t *testing.T) {
		s := NewSecurityStats()
		s.Update(estimator.Evaluation{"usvp": {Rop: math.Inf(1)}})
		require.NoError(t, s.Finalize())
		require.True(t, math.IsInf(s.MinLogRop, 1))
		require.Equal(t, "+Inf", s.ToCSV()[0])
	})

	t.Run("Empty", func(t *testing.T) {
		s := NewSecurityStats()
		s.Update(estimator.Evaluation{})
		require.NoError(t, s.Finalize())
		require.True(t, math.IsNaN(s.MeanLogRop))
	})
}
