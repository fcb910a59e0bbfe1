package distribution

import (
	"math"
	"math/big"
)

// Noise is a fully parameterised distribution over the integers.
// The set of implementations is closed: DiscreteGaussian, DiscreteGaussianAlpha,
// CenteredBinomial, Uniform, UniformMod, SparseTernary, SparseBinary,
// BinaryDist and TernaryDist.
type Noise interface {
	Kind() Kind
	Mean() float64
	StdDev() float64
	// Bounds returns the support interval; unbounded sides are infinite.
	Bounds() (lo, hi float64)
	// Density is the probability that a sample is non-zero.
	Density() float64
	// Dimension is the number of coordinates, 0 when unspecified.
	Dimension() int
	// WithDimension returns a copy sized to n if no dimension was set.
	WithDimension(n int) Noise
	Validate() error
	isNoise()
}

var sqrt2Pi = math.Sqrt(2 * math.Pi)

// DiscreteGaussian is a discrete Gaussian of standard deviation Sigma centered at Mu.
type DiscreteGaussian struct {
	Sigma float64
	Mu    float64
	N     int
}

// NewDiscreteGaussian returns a validated DiscreteGaussian.
func NewDiscreteGaussian(sigma, mean float64, n int) (d DiscreteGaussian, err error) {
	d = DiscreteGaussian{Sigma: sigma, Mu: mean, N: n}
	return d, d.Validate()
}

func (d DiscreteGaussian) Kind() Kind { return KindDiscreteGaussian }
func (d DiscreteGaussian) Mean() float64 { return d.Mu }
func (d DiscreteGaussian) StdDev() float64 { return d.Sigma }
func (d DiscreteGaussian) Bounds() (lo, hi float64) { return math.Inf(-1), math.Inf(1) }
func (d DiscreteGaussian) Dimension() int { return d.N }
func (d DiscreteGaussian) isNoise() {}

func (d DiscreteGaussian) Density() float64 {
	return 1 - math.Min(1, 1/(d.Sigma*sqrt2Pi))
}

func (d DiscreteGaussian) WithDimension(n int) Noise {
	if d.N == 0 {
		d.N = n
	}
	return d
}

func (d DiscreteGaussian) Validate() error {
	return validateGaussian(d.Kind(), "stddev", d.Sigma, d.Mu, d.N)
}

// DiscreteGaussianAlpha is a discrete Gaussian given by its relative
// width Alpha with respect to the modulus Q: sigma = Alpha*Q/sqrt(2*pi).
type DiscreteGaussianAlpha struct {
	Alpha float64
	Q     *big.Int
	Mu    float64
	N     int
}

// NewDiscreteGaussianAlpha returns a validated DiscreteGaussianAlpha.
func NewDiscreteGaussianAlpha(alpha float64, q *big.Int, mean float64, n int) (d DiscreteGaussianAlpha, err error) {
	d = DiscreteGaussianAlpha{Alpha: alpha, Q: q, Mu: mean, N: n}
	return d, d.Validate()
}

func (d DiscreteGaussianAlpha) Kind() Kind { return KindDiscreteGaussianAlpha }
func (d DiscreteGaussianAlpha) Mean() float64 { return d.Mu }
func (d DiscreteGaussianAlpha) Bounds() (lo, hi float64) { return math.Inf(-1), math.Inf(1) }
func (d DiscreteGaussianAlpha) Dimension() int { return d.N }
func (d DiscreteGaussianAlpha) isNoise() {}

// StdDev computes Alpha*Q in arbitrary precision, so the result is finite
// whenever sigma itself fits in a float64.
func (d DiscreteGaussianAlpha) StdDev() float64 {
	sigma := new(big.Float).SetInt(d.Q)
	sigma.Mul(sigma, big.NewFloat(d.Alpha))
	sigma.Quo(sigma, big.NewFloat(sqrt2Pi))
	f, _ := sigma.Float64()
	return f
}

func (d DiscreteGaussianAlpha) Density() float64 {
	return d.Gaussian().Density()
}

// Gaussian returns the equivalent DiscreteGaussian.
func (d DiscreteGaussianAlpha) Gaussian() DiscreteGaussian {
	return DiscreteGaussian{Sigma: d.StdDev(), Mu: d.Mu, N: d.N}
}

func (d DiscreteGaussianAlpha) WithDimension(n int) Noise {
	if d.N == 0 {
		d.N = n
	}
	return d
}

func (d DiscreteGaussianAlpha) Validate() error {
	if d.Q == nil {
		return missing(d.Kind(), "q")
	}
	if d.Q.Cmp(big.NewInt(1)) <= 0 {
		return invalid(d.Kind(), "q", "must be greater than 1")
	}
	return validateGaussian(d.Kind(), "alpha", d.Alpha, d.Mu, d.N)
}

func validateGaussian(kind Kind, field string, width, mean float64, n int) error {
	switch {
	case math.IsNaN(width) || math.IsInf(width, 0) || width <= 0:
		return invalid(kind, field, "must be positive")
	case math.IsNaN(mean) || math.IsInf(mean, 0):
		return invalid(kind, "mean", "must be finite")
	case n < 0:
		return invalid(kind, "n", "must be non-negative")
	}
	return nil
}

// CenteredBinomial is the difference of two sums of Eta fair bits.
type CenteredBinomial struct {
	Eta int
	N   int
}

// NewCenteredBinomial returns a validated CenteredBinomial.
func NewCenteredBinomial(eta, n int) (d CenteredBinomial, err error) {
	d = CenteredBinomial{Eta: eta, N: n}
	return d, d.Validate()
}

func (d CenteredBinomial) Kind() Kind { return KindCenteredBinomial }
func (d CenteredBinomial) Mean() float64 { return 0 }
func (d CenteredBinomial) StdDev() float64 { return math.Sqrt(float64(d.Eta) / 2) }
func (d CenteredBinomial) Dimension() int { return d.N }
func (d CenteredBinomial) isNoise() {}

func (d CenteredBinomial) Bounds() (lo, hi float64) {
	return -float64(d.Eta), float64(d.Eta)
}

// Density is 1 - C(2eta, eta)/4^eta.
func (d CenteredBinomial) Density() float64 {
	p0 := new(big.Float).SetInt(new(big.Int).Binomial(int64(2*d.Eta), int64(d.Eta)))
	p0.SetMantExp(p0, -2*d.Eta)
	f, _ := p0.Float64()
	return 1 - f
}

func (d CenteredBinomial) WithDimension(n int) Noise {
	if d.N == 0 {
		d.N = n
	}
	return d
}

func (d CenteredBinomial) Validate() error {
	switch {
	case d.Eta <= 0:
		return invalid(d.Kind(), "eta", "must be positive")
	case d.N < 0:
		return invalid(d.Kind(), "n", "must be non-negative")
	}
	return nil
}

// Uniform is the uniform distribution on the integers of [A, B].
type Uniform struct {
	A, B int64
	N    int
}

// NewUniform returns a validated Uniform.
func NewUniform(a, b int64, n int) (d Uniform, err error) {
	d = Uniform{A: a, B: b, N: n}
	return d, d.Validate()
}

func (d Uniform) Kind() Kind { return KindUniform }
func (d Uniform) Mean() float64 { return (float64(d.A) + float64(d.B)) / 2 }
func (d Uniform) Bounds() (lo, hi float64) { return float64(d.A), float64(d.B) }
func (d Uniform) Dimension() int { return d.N }
func (d Uniform) isNoise() {}

func (d Uniform) StdDev() float64 {
	return uniformStdDev(big.NewInt(d.A), big.NewInt(d.B))
}

func (d Uniform) Density() float64 {
	return uniformDensity(big.NewInt(d.A), big.NewInt(d.B))
}

func (d Uniform) WithDimension(n int) Noise {
	if d.N == 0 {
		d.N = n
	}
	return d
}

func (d Uniform) Validate() error {
	switch {
	case d.A > d.B:
		return invalid(d.Kind(), "b", "must be greater than or equal to 'a'")
	case d.N < 0:
		return invalid(d.Kind(), "n", "must be non-negative")
	}
	return nil
}

// UniformMod is the uniform distribution on the centered residues modulo Q.
type UniformMod struct {
	Q *big.Int
	N int
}

// NewUniformMod returns a validated UniformMod.
func NewUniformMod(q *big.Int, n int) (d UniformMod, err error) {
	d = UniformMod{Q: q, N: n}
	return d, d.Validate()
}

func (d UniformMod) Kind() Kind { return KindUniformMod }
func (d UniformMod) Dimension() int { return d.N }
func (d UniformMod) isNoise() {}

// Range returns the integer interval [-floor(q/2), floor(q/2) - 1 + q mod 2].
func (d UniformMod) Range() (a, b *big.Int) {

	half := new(big.Int).Rsh(d.Q, 1)

	a = new(big.Int).Neg(half)
	b = new(big.Int).Set(half)

	if d.Q.Bit(0) == 0 {
		b.Sub(b, big.NewInt(1))
	}

	return
}

func (d UniformMod) Mean() float64 {
	if d.Q.Bit(0) == 0 {
		return -0.5
	}
	return 0
}

func (d UniformMod) Bounds() (lo, hi float64) {
	a, b := d.Range()
	lo, _ = new(big.Float).SetInt(a).Float64()
	hi, _ = new(big.Float).SetInt(b).Float64()
	return
}

func (d UniformMod) StdDev() float64 {
	return uniformStdDev(d.Range())
}

func (d UniformMod) Density() float64 {
	return uniformDensity(d.Range())
}

func (d UniformMod) WithDimension(n int) Noise {
	if d.N == 0 {
		d.N = n
	}
	return d
}

func (d UniformMod) Validate() error {
	switch {
	case d.Q == nil:
		return missing(d.Kind(), "q")
	case d.Q.Cmp(big.NewInt(1)) <= 0:
		return invalid(d.Kind(), "q", "must be greater than 1")
	case d.N < 0:
		return invalid(d.Kind(), "n", "must be non-negative")
	}
	return nil
}

// uniformStdDev returns sqrt(((b-a+1)^2 - 1)/12).
func uniformStdDev(a, b *big.Int) float64 {

	w := new(big.Int).Sub(b, a)
	w.Add(w, big.NewInt(1))
	w.Mul(w, w)
	w.Sub(w, big.NewInt(1))

	v := new(big.Float).SetPrec(256).SetInt(w)
	v.Quo(v, big.NewFloat(12))
	v.Sqrt(v)

	f, _ := v.Float64()

	return f
}

func uniformDensity(a, b *big.Int) float64 {

	if a.Sign() > 0 || b.Sign() < 0 {
		return 1
	}

	w := new(big.Int).Sub(b, a)
	w.Add(w, big.NewInt(1))

	inv := new(big.Float).Quo(big.NewFloat(1), new(big.Float).SetInt(w))
	f, _ := inv.Float64()

	return 1 - f
}

// SparseTernary has exactly P coordinates equal to +1 and M equal to -1
// among N; N defaults to P+M.
type SparseTernary struct {
	P, M int
	N    int
}

// NewSparseTernary returns a validated SparseTernary.
func NewSparseTernary(p, m, n int) (d SparseTernary, err error) {
	d = SparseTernary{P: p, M: m, N: n}
	return d, d.Validate()
}

func (d SparseTernary) Kind() Kind { return KindSparseTernary }
func (d SparseTernary) isNoise() {}

// HammingWeight is the number of non-zero coordinates.
func (d SparseTernary) HammingWeight() int {
	return d.P + d.M
}

func (d SparseTernary) Dimension() int {
	if d.N == 0 {
		return d.P + d.M
	}
	return d.N
}

func (d SparseTernary) Mean() float64 {
	if d.Dimension() == 0 {
		return 0
	}
	return float64(d.P-d.M) / float64(d.Dimension())
}

func (d SparseTernary) StdDev() float64 {
	if d.Dimension() == 0 {
		return 0
	}
	mu := d.Mean()
	return math.Sqrt(d.Density() - mu*mu)
}

func (d SparseTernary) Bounds() (lo, hi float64) {
	if d.M == 0 {
		return 0, 1
	}
	return -1, 1
}

func (d SparseTernary) Density() float64 {
	if d.Dimension() == 0 {
		return 0
	}
	return float64(d.P+d.M) / float64(d.Dimension())
}

func (d SparseTernary) WithDimension(n int) Noise {
	if d.N == 0 {
		d.N = n
	}
	return d
}

func (d SparseTernary) Validate() error {
	return validateSparse(d.Kind(), "p", d.P, d.M, d.N)
}

func validateSparse(kind Kind, field string, p, m, n int) error {
	switch {
	case p < 0:
		return invalid(kind, field, "must be non-negative")
	case m < 0:
		return invalid(kind, "m", "must be non-negative")
	case n < 0:
		return invalid(kind, "n", "must be non-negative")
	case n != 0 && p+m > n:
		return invalid(kind, "n", "must be at least the Hamming weight")
	}
	return nil
}

// SparseBinary has exactly HW coordinates equal to 1 among N.
type SparseBinary struct {
	HW int
	N  int
}

// NewSparseBinary returns a validated SparseBinary.
func NewSparseBinary(hw, n int) (d SparseBinary, err error) {
	d = SparseBinary{HW: hw, N: n}
	return d, d.Validate()
}

func (d SparseBinary) Kind() Kind { return KindSparseBinary }
func (d SparseBinary) Mean() float64 { return d.ternary().Mean() }
func (d SparseBinary) StdDev() float64 { return d.ternary().StdDev() }
func (d SparseBinary) Bounds() (lo, hi float64) { return 0, 1 }
func (d SparseBinary) Density() float64 { return d.ternary().Density() }
func (d SparseBinary) Dimension() int { return d.ternary().Dimension() }
func (d SparseBinary) isNoise() {}

func (d SparseBinary) ternary() SparseTernary {
	return SparseTernary{P: d.HW, N: d.N}
}

func (d SparseBinary) WithDimension(n int) Noise {
	if d.N == 0 {
		d.N = n
	}
	return d
}

func (d SparseBinary) Validate() error {
	return validateSparse(d.Kind(), "hw", d.HW, 0, d.N)
}

// BinaryDist is the uniform distribution on {0, 1}.
type BinaryDist struct{}

// TernaryDist is the uniform distribution on {-1, 0, 1}.
type TernaryDist struct{}

var (
	// Binary is the uniform binary distribution.
	Binary = BinaryDist{}
	// Ternary is the uniform ternary distribution.
	Ternary = TernaryDist{}
)

func (BinaryDist) Kind() Kind { return KindBinary }
func (BinaryDist) Mean() float64 { return 0.5 }
func (BinaryDist) StdDev() float64 { return 0.5 }
func (BinaryDist) Bounds() (lo, hi float64) { return 0, 1 }
func (BinaryDist) Density() float64 { return 0.5 }
func (BinaryDist) Dimension() int { return 0 }
func (d BinaryDist) WithDimension(int) Noise { return d }
func (BinaryDist) Validate() error { return nil }
func (BinaryDist) isNoise() {}

func (TernaryDist) Kind() Kind { return KindTernary }
func (TernaryDist) Mean() float64 { return 0 }
func (TernaryDist) StdDev() float64 { return math.Sqrt(2.0 / 3.0) }
func (TernaryDist) Bounds() (lo, hi float64) { return -1, 1 }
func (TernaryDist) Density() float64 { return 2.0 / 3.0 }
func (TernaryDist) Dimension() int { return 0 }
func (d TernaryDist) WithDimension(int) Noise { return d }
func (TernaryDist) Validate() error { return nil }
func (TernaryDist) isNoise() {}
