package cost

import (
	"context"
	"math"

	"github.com/tuneinsight/lwe-security-estimator/estimator"
)

// embedding returns the dimension and the normalised log-volume of the
// Kannan embedding lattice built from m samples.
func (inst instance) embedding(m int) (d int, logVol float64) {
	d = m + inst.n + 1
	logVol = (float64(m)*inst.logQ + float64(inst.n)*inst.logNu) / float64(d)
	return
}

// minBeta returns the smallest block size to try for dimension d.
func (m *Model) minBeta(d int) int {
	lo := m.MinBeta
	if lo > d {
		lo = d
	}
	if lo < 2 {
		lo = 2
	}
	return lo
}

// betaStride returns the step of the block size enumeration in [lo, d].
func (m *Model) betaStride(lo, d int) int {
	if m.MaxBetaSteps <= 0 || d-lo <= m.MaxBetaSteps {
		return 1
	}
	return (d - lo + m.MaxBetaSteps - 1) / m.MaxBetaSteps
}

// usvp finds the smallest block size for which the projected error vector
// of the embedding lattice is shorter than the last Gram-Schmidt norm
// predicted by the GSA.
func (m *Model) usvp(ctx context.Context, inst instance, rc ReductionCost, samples int) (estimator.Cost, error) {

	d, logVol := inst.embedding(samples)

	beta, ok := search(m.minBeta(d), d, func(beta int) bool {
		b := float64(beta)
		return inst.logSigmaE+0.5*math.Log2(b) <= (2*b-float64(d)-1)*Log2Delta(beta)+logVol
	})

	if !ok {
		return infeasible(), nil
	}

	return result(rc.BKZ(beta, d), beta, 0, d, samples), nil
}

// bdd reduces with BKZ-beta and then solves the bounded distance decoding
// instance with a single SVP call in the projected dimension eta >= beta.
func (m *Model) bdd(ctx context.Context, inst instance, rc ReductionCost, samples int) (estimator.Cost, error) {

	d, logVol := inst.embedding(samples)

	lo := m.minBeta(d)
	stride := m.betaStride(lo, d)

	best := infeasible()
	bestLog := math.Inf(1)

	for beta := lo; beta <= d; beta += stride {

		bkz := rc.BKZ(beta, d)
		if bkz >= bestLog {
			break
		}

		logDelta := Log2Delta(beta)

		eta, ok := search(beta, d, func(eta int) bool {
			e := float64(eta)
			return inst.logSigmaE+0.5*math.Log2(e) <= (2*e-float64(d)-1)*logDelta+logVol
		})

		if !ok {
			continue
		}

		if cost := log2Add(bkz, rc.SVP(eta, d)); cost < bestLog {
			bestLog = cost
			best = result(cost, beta, eta, d, samples)
		}
	}

	return best, nil
}
