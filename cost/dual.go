package cost

import (
	"context"
	"math"

	"github.com/tuneinsight/lwe-security-estimator/estimator"
)

// dual finds short vectors in the scaled dual lattice of the samples and
// distinguishes the inner products from uniform. A vector of norm l yields
// an advantage exp(-2 pi^2 tau^2) with tau = l*sigma_e/q, which is
// amplified by 2^(4 pi^2 tau^2 / ln 2) repetitions.
func (m *Model) dual(ctx context.Context, inst instance, rc ReductionCost, samples int) (estimator.Cost, error) {

	if samples == 0 {
		return infeasible(), nil
	}

	d := samples + inst.n
	logDet := float64(inst.n) * (inst.logQ - inst.logNu)

	lo := m.minBeta(d)
	stride := m.betaStride(lo, d)

	best := infeasible()
	bestLog := math.Inf(1)

	for beta := lo; beta <= d; beta += stride {

		bkz := rc.BKZ(beta, d)
		if bkz >= bestLog {
			break
		}

		logTau := float64(d)*Log2Delta(beta) + logDet/float64(d) + inst.logSigmaE - inst.logQ
		repetitions := math.Exp2(math.Log2(4*math.Pi*math.Pi/math.Ln2) + 2*logTau)

		if cost := bkz + repetitions; cost < bestLog {
			bestLog = cost
			best = result(cost, beta, 0, d, samples)
			best.Extra["log_repetitions"] = repetitions
		}
	}

	return best, nil
}
