package lwe

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"
	"golang.org/x/crypto/sha3"

	"github.com/tuneinsight/lwe-security-estimator/distribution"
)

const prec = uint(256)

var ln2 = bigfloat.Log(new(big.Float).SetPrec(prec).SetInt64(2))

// Parameters is one LWE instance: dimension, modulus, secret and error
// distributions and the number of available samples. Its fields are
// private and immutable.
type Parameters struct {
	n  int
	q  *big.Int
	xs distribution.Noise
	xe distribution.Noise
	m  Samples
}

// NewParameters assembles a parameter set. Distributions without a
// dimension are sized to n.
func NewParameters(n int, q *big.Int, xs, xe distribution.Noise, m Samples) (params Parameters, err error) {

	switch {
	case n <= 0:
		return Parameters{}, fmt.Errorf("lwe: ring dimension must be positive but is %d", n)
	case q == nil || q.Cmp(big.NewInt(1)) <= 0:
		return Parameters{}, fmt.Errorf("lwe: modulus must be greater than 1 but is %v", q)
	case xs == nil:
		return Parameters{}, errors.New("lwe: missing secret distribution")
	case xe == nil:
		return Parameters{}, errors.New("lwe: missing error distribution")
	}

	if bound, ok := m.Value(); ok && bound < 0 {
		return Parameters{}, fmt.Errorf("lwe: sample count must be non-negative but is %d", bound)
	}

	xs = xs.WithDimension(n)
	xe = xe.WithDimension(n)

	if err = xs.Validate(); err != nil {
		return Parameters{}, fmt.Errorf("lwe: secret distribution: %w", err)
	}

	if err = xe.Validate(); err != nil {
		return Parameters{}, fmt.Errorf("lwe: error distribution: %w", err)
	}

	return Parameters{
		n:  n,
		q:  new(big.Int).Set(q),
		xs: xs,
		xe: xe,
		m:  m,
	}, nil
}

// N returns the LWE dimension.
func (p Parameters) N() int {
	return p.n
}

// Q returns a copy of the modulus.
func (p Parameters) Q() *big.Int {
	return new(big.Int).Set(p.q)
}

// Xs returns the secret distribution.
func (p Parameters) Xs() distribution.Noise {
	return p.xs
}

// Xe returns the error distribution.
func (p Parameters) Xe() distribution.Noise {
	return p.xe
}

// M returns the sample bound.
func (p Parameters) M() Samples {
	return p.m
}

// LogQ returns log2(q). It stays exact for moduli beyond the float64 range.
func (p Parameters) LogQ() float64 {
	return Log2(p.q)
}

// Log2 returns log2(x) for x > 0.
func Log2(x *big.Int) float64 {

	if x.Sign() <= 0 {
		return math.Inf(-1)
	}

	if x.BitLen() <= 53 {
		return math.Log2(float64(x.Int64()))
	}

	f := new(big.Float).SetPrec(prec).SetInt(x)
	f = bigfloat.Log(f)
	f.Quo(f, ln2)

	log2, _ := f.Float64()

	return log2
}

// Fingerprint is a SHA3-256 digest of the canonical form of the parameters.
func (p Parameters) Fingerprint() string {
	h := sha3.New256()
	h.Write([]byte(p.canonical()))
	return fmt.Sprintf("%x", h.Sum(nil))
}

func (p Parameters) canonical() string {
	return fmt.Sprintf("n=%d;q=%s;m=%s;Xs=%s;Xe=%s", p.n, p.q.String(), p.m, Describe(p.xs), Describe(p.xe))
}

func (p Parameters) String() string {
	return fmt.Sprintf("LWEParameters(n=%d, q=%s, Xs=%s, Xe=%s, m=%s)", p.n, p.q.String(), Describe(p.xs), Describe(p.xe), p.m)
}

// Describe renders a distribution with its defining parameters.
func Describe(X distribution.Noise) string {

	switch X := X.(type) {
	case distribution.DiscreteGaussian:
		return fmt.Sprintf("D(σ=%g, μ=%g, n=%d)", X.Sigma, X.Mu, X.N)
	case distribution.DiscreteGaussianAlpha:
		return fmt.Sprintf("D(α=%g, q=%s, μ=%g, n=%d)", X.Alpha, X.Q.String(), X.Mu, X.N)
	case distribution.CenteredBinomial:
		return fmt.Sprintf("CB(η=%d, n=%d)", X.Eta, X.N)
	case distribution.Uniform:
		return fmt.Sprintf("U(%d, %d, n=%d)", X.A, X.B, X.N)
	case distribution.UniformMod:
		return fmt.Sprintf("UMod(q=%s, n=%d)", X.Q.String(), X.N)
	case distribution.SparseTernary:
		return fmt.Sprintf("T(p=%d, m=%d, n=%d)", X.P, X.M, X.Dimension())
	case distribution.SparseBinary:
		return fmt.Sprintf("B(hw=%d, n=%d)", X.HW, X.Dimension())
	case distribution.BinaryDist:
		return "Binary"
	case distribution.TernaryDist:
		return "Ternary"
	default:
		return fmt.Sprintf("%T", X)
	}
}
