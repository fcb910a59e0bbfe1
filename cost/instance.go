package cost

import (
	"fmt"
	"math"

	"github.com/tuneinsight/lwe-security-estimator/distribution"
	"github.com/tuneinsight/lwe-security-estimator/lwe"
)

// instance is the log-domain view of an LWE instance used by the attacks.
type instance struct {
	n         int
	logQ      float64
	logSigmaE float64
	// log2 of the rescaling factor sigma_e/sigma_s applied to the secret
	logNu float64
	// largest number of samples an attack may consume
	mMax int
}

func newInstance(params lwe.Parameters) (inst instance, err error) {

	inst.n = params.N()
	inst.logQ = params.LogQ()

	logSigmaS := logStdDev(params.Xs())
	inst.logSigmaE = logStdDev(params.Xe())

	if math.IsInf(logSigmaS, -1) {
		return inst, fmt.Errorf("cost: secret distribution %s has zero variance", lwe.Describe(params.Xs()))
	}

	if math.IsInf(inst.logSigmaE, -1) {
		return inst, fmt.Errorf("cost: error distribution %s has zero variance", lwe.Describe(params.Xe()))
	}

	inst.mMax = params.M().Min(2 * inst.n)

	// Normal form: n samples are traded to swap a wide secret for the error
	// distribution.
	if logSigmaS > inst.logSigmaE && inst.mMax >= 2*inst.n {
		logSigmaS = inst.logSigmaE
		inst.mMax -= inst.n
	}

	inst.logNu = inst.logSigmaE - logSigmaS

	return
}

// logStdDev returns log2 of the standard deviation of X. Distributions
// defined relative to a modulus are handled in the log domain, so that
// moduli beyond the float64 range stay finite.
func logStdDev(X distribution.Noise) float64 {

	switch X := X.(type) {
	case distribution.UniformMod:
		return lwe.Log2(X.Q) - 0.5*math.Log2(12)
	case distribution.DiscreteGaussianAlpha:
		return math.Log2(X.Alpha) + lwe.Log2(X.Q) - 0.5*math.Log2(2*math.Pi)
	}

	return math.Log2(X.StdDev())
}

// samples returns steps+1 evenly spaced sample counts in [0, mMax].
func (inst instance) samples(steps int) (m []int) {

	if steps < 1 || inst.mMax == 0 {
		return []int{0}
	}

	if steps > inst.mMax {
		steps = inst.mMax
	}

	m = make([]int, steps+1)
	for i := range m {
		m[i] = int(math.Round(float64(inst.mMax) * float64(i) / float64(steps)))
	}

	return
}
