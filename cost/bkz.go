package cost

import (
	"math"
)

// Log2Delta returns log2 of the root Hermite factor reached by BKZ with
// block size beta:
//
//	delta(beta) = ((pi*beta)^(1/beta) * beta/(2*pi*e))^(1/(2*(beta-1)))
func Log2Delta(beta int) float64 {

	b := float64(beta)

	return (math.Log2(math.Pi*b)/b + math.Log2(b/(2*math.Pi*math.E))) / (2 * (b - 1))
}

// ReductionCost returns log2 of the cost of running BKZ-beta, and SVP in
// dimension eta, on a lattice of dimension d.
type ReductionCost interface {
	BKZ(beta, d int) float64
	SVP(eta, d int) float64
}

// CoreSVP counts a single call to a sieve: 2^(0.292 beta).
type CoreSVP struct{}

func (CoreSVP) BKZ(beta, d int) float64 { return 0.292 * float64(beta) }
func (CoreSVP) SVP(eta, d int) float64 { return 0.292 * float64(eta) }

// Sieving charges 8d tours of a sieve with 2^16.4 ring operations per
// lattice point.
type Sieving struct{}

func (Sieving) BKZ(beta, d int) float64 {
	return 0.292*float64(beta) + 16.4 + math.Log2(8*float64(d))
}

func (Sieving) SVP(eta, d int) float64 {
	return 0.292*float64(eta) + 16.4
}

// log2Add returns log2(2^a + 2^b).
func log2Add(a, b float64) float64 {
	if a < b {
		a, b = b, a
	}
	if math.IsInf(a, 1) {
		return a
	}
	return a + math.Log2(1+math.Exp2(b-a))
}
