package estimator

import (
	"math"
)

// Unbounded is the security parameter reported when the cheapest attack
// has infinite cost.
const Unbounded uint32 = math.MaxUint32

// Reduce returns floor(log2(min rop)) over all attacks: 0 for an empty
// evaluation and Unbounded when the minimum is infinite. NaN costs are
// ignored, results below zero are clamped to 0 and finite results saturate
// at Unbounded.
func Reduce(eval Evaluation) uint32 {

	min := math.NaN()
	for _, c := range eval {
		if !math.IsNaN(c.Rop) && (math.IsNaN(min) || c.Rop < min) {
			min = c.Rop
		}
	}

	if math.IsNaN(min) {
		return 0
	}

	log := math.Log2(min)

	switch {
	case math.IsInf(log, 1):
		return Unbounded
	case math.IsNaN(log) || log < 0:
		return 0
	case log >= float64(Unbounded):
		return Unbounded
	}

	return uint32(math.Floor(log))
}
