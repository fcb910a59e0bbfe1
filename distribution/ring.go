package distribution

import (
	"fmt"
	"math"

	"github.com/tuneinsight/lattigo/v6/ring"
)

// FromRing converts a lattigo distribution into the equivalent Noise for
// an LWE instance of dimension n.
//
// Ternary{H} becomes a SparseTernary with ceil(H/2) ones and floor(H/2)
// minus ones. Ternary{P} is the uniform ternary distribution when P = 2/3,
// otherwise a SparseTernary of expected weight round(P*n).
func FromRing(X ring.DistributionParameters, n int) (Noise, error) {

	switch X := X.(type) {
	case ring.DiscreteGaussian:
		return NewDiscreteGaussian(X.Sigma, 0, n)

	case ring.Ternary:

		if X.H != 0 {
			return NewSparseTernary((X.H+1)/2, X.H/2, n)
		}

		if math.Abs(X.P-2.0/3.0) < 1e-9 {
			return Ternary, nil
		}

		h := int(math.Round(X.P * float64(n)))

		return NewSparseTernary((h+1)/2, h/2, n)

	case ring.Uniform:
		return nil, fmt.Errorf("distribution: %T is not an LWE noise distribution", X)

	default:
		return nil, fmt.Errorf("distribution: unsupported lattigo distribution %T", X)
	}
}
