package distribution

import (
	"fmt"
	"math/big"
)

// Resolve turns a descriptor into a validated Noise. defaultQ, which may be
// nil, is used as "q" when the descriptor does not define one.
func Resolve(d Descriptor, defaultQ *big.Int) (Noise, error) {
	return d.WithDefaultModulus(defaultQ).Resolve()
}

// Resolve turns the descriptor into a validated Noise without any modulus
// fallback. Missing required fields are reported in declaration order.
func (d Descriptor) Resolve() (noise Noise, err error) {

	var kind Kind
	if kind, err = ParseKind(d.Name); err != nil {
		return nil, err
	}

	r := &fieldReader{d: d, kind: kind}

	switch kind {

	case KindDiscreteGaussian:
		sigma := r.float("stddev", true, 0)
		mean := r.float("mean", false, 0)
		n := r.dimension()
		if r.err != nil {
			return nil, r.err
		}
		return NewDiscreteGaussian(sigma, mean, n)

	case KindDiscreteGaussianAlpha:
		alpha := r.float("alpha", true, 0)
		q := r.bigInt("q", true)
		mean := r.float("mean", false, 0)
		n := r.dimension()
		if r.err != nil {
			return nil, r.err
		}
		return NewDiscreteGaussianAlpha(alpha, q, mean, n)

	case KindCenteredBinomial:
		eta := r.int("eta", true)
		n := r.dimension()
		if r.err != nil {
			return nil, r.err
		}
		return NewCenteredBinomial(eta, n)

	case KindUniform:
		a := r.int("a", true)
		b := r.int("b", true)
		n := r.dimension()
		if r.err != nil {
			return nil, r.err
		}
		return NewUniform(int64(a), int64(b), n)

	case KindUniformMod:
		q := r.bigInt("q", true)
		n := r.dimension()
		if r.err != nil {
			return nil, r.err
		}
		return NewUniformMod(q, n)

	case KindSparseTernary:
		p := r.int("p", true)
		m := r.int("m", true)
		n := r.dimension()
		if r.err != nil {
			return nil, r.err
		}
		return NewSparseTernary(p, m, n)

	case KindSparseBinary:
		hw := r.int("hw", true)
		n := r.dimension()
		if r.err != nil {
			return nil, r.err
		}
		return NewSparseBinary(hw, n)

	case KindBinary:
		return Binary, nil

	case KindTernary:
		return Ternary, nil
	}

	return nil, fmt.Errorf("distribution: unhandled kind %s", kind)
}

// ResolveJSON parses and resolves a JSON descriptor in one step.
func ResolveJSON(data []byte, defaultQ *big.Int) (Noise, error) {

	d, err := ParseDescriptor(data)
	if err != nil {
		return nil, err
	}

	return Resolve(d, defaultQ)
}
