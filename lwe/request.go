package lwe

import (
	"math/big"

	"github.com/tuneinsight/lwe-security-estimator/distribution"
)

// Request is the unresolved form of an LWE instance, as received from a
// user: distributions are still descriptors.
type Request struct {
	N      int
	Q      *big.Int
	Secret distribution.Descriptor
	Error  distribution.Descriptor
	M      Samples
}

// Build resolves both descriptors and assembles the parameter set.
// Descriptors that need a modulus and do not define one inherit Q.
func (r Request) Build() (params Parameters, err error) {

	var xs, xe distribution.Noise

	if xs, err = r.Secret.WithDefaultModulus(r.Q).Resolve(); err != nil {
		return
	}

	if xe, err = r.Error.WithDefaultModulus(r.Q).Resolve(); err != nil {
		return
	}

	return NewParameters(r.N, r.Q, xs, xe, r.M)
}
