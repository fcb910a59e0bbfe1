// Package cost implements a self-contained lattice attack cost model.
// It evaluates the primal (uSVP and BDD) and dual attacks on LWE with the
// geometric series assumption and serves as the default backend of the
// estimator when no external collaborator is configured.
package cost

import (
	"context"
	"math"

	"github.com/tuneinsight/lwe-security-estimator/estimator"
	"github.com/tuneinsight/lwe-security-estimator/lwe"
)

// Model is an estimator.Backend.
type Model struct {
	// MinBeta is the smallest block size considered.
	MinBeta int
	// RoughSteps and FullSteps are the number of sample counts tried
	// between 0 and the maximum by the rough and the full estimate.
	RoughSteps int
	FullSteps  int
	// MaxBetaSteps bounds the number of block sizes enumerated per lattice
	// dimension by the attacks that cannot binary search.
	MaxBetaSteps int
}

// New returns a Model with default settings.
func New() *Model {
	return &Model{
		MinBeta:      40,
		RoughSteps:   32,
		FullSteps:    128,
		MaxBetaSteps: 512,
	}
}

// Rough evaluates the primal uSVP and dual attacks with the core-SVP
// cost model.
func (m *Model) Rough(ctx context.Context, params lwe.Parameters) (estimator.Evaluation, error) {
	return m.evaluate(ctx, params, CoreSVP{}, m.RoughSteps, false)
}

// Full evaluates the primal uSVP, primal BDD and dual attacks with the
// sieving cost model.
func (m *Model) Full(ctx context.Context, params lwe.Parameters) (estimator.Evaluation, error) {
	return m.evaluate(ctx, params, Sieving{}, m.FullSteps, true)
}

type attack func(ctx context.Context, inst instance, rc ReductionCost, m int) (estimator.Cost, error)

func (m *Model) evaluate(ctx context.Context, params lwe.Parameters, rc ReductionCost, steps int, full bool) (eval estimator.Evaluation, err error) {

	var inst instance
	if inst, err = newInstance(params); err != nil {
		return
	}

	attacks := map[string]attack{
		"usvp": m.usvp,
		"dual": m.dual,
	}

	if full {
		attacks["bdd"] = m.bdd
	}

	eval = estimator.Evaluation{}

	for name, a := range attacks {

		best := estimator.Cost{Rop: math.Inf(1)}

		for _, mm := range inst.samples(steps) {

			if err = ctx.Err(); err != nil {
				return nil, err
			}

			var c estimator.Cost
			if c, err = a(ctx, inst, rc, mm); err != nil {
				return nil, err
			}

			if c.Rop < best.Rop {
				best = c
			}
		}

		eval[name] = best
	}

	return
}

// result builds an estimator.Cost from a log2 cost.
func result(logRop float64, beta, eta, d, m int) estimator.Cost {
	return estimator.Cost{
		Rop:   math.Exp2(logRop),
		Beta:  beta,
		Eta:   eta,
		Dim:   d,
		M:     m,
		Extra: map[string]float64{"log_rop": logRop},
	}
}

func infeasible() estimator.Cost {
	return estimator.Cost{Rop: math.Inf(1)}
}

// search returns the smallest x in [lo, hi] such that ok(x), assuming ok is
// monotone. found is false if ok(hi) does not hold.
func search(lo, hi int, ok func(int) bool) (x int, found bool) {

	if lo > hi || !ok(hi) {
		return 0, false
	}

	for lo < hi {
		mid := lo + (hi-lo)/2
		if ok(mid) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}

	return lo, true
}
