package estimator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tuneinsight/lwe-security-estimator/lwe"
)

// Mode selects between the fast heuristic estimate and the full one.
type Mode int

const (
	// Rough runs the collaborator's fast, heuristic estimate.
	Rough Mode = iota
	// Exact runs every supported attack with the full cost models.
	Exact
)

// ParseMode parses "rough" or "exact".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rough", "":
		return Rough, nil
	case "exact", "full":
		return Exact, nil
	default:
		return Rough, fmt.Errorf("estimator: unknown mode %q", s)
	}
}

func (m Mode) String() string {
	if m == Exact {
		return "exact"
	}
	return "rough"
}

// Backend is a lattice cost estimator. Both calls block until every attack
// was evaluated and return the cost of each, keyed by attack name.
type Backend interface {
	Rough(ctx context.Context, params lwe.Parameters) (Evaluation, error)
	Full(ctx context.Context, params lwe.Parameters) (Evaluation, error)
}

// Estimator binds a Backend to a Mode.
type Estimator struct {
	Backend Backend
	Mode    Mode
}

func NewEstimator(backend Backend, mode Mode) *Estimator {
	return &Estimator{
		Backend: backend,
		Mode:    mode,
	}
}

// Estimate evaluates params with the estimator's backend and mode.
func (e *Estimator) Estimate(ctx context.Context, params lwe.Parameters) (Evaluation, error) {
	return Estimate(ctx, e.Backend, params, e.Mode)
}

// SecurityLevel evaluates params and reduces the result to a security parameter.
func (e *Estimator) SecurityLevel(ctx context.Context, params lwe.Parameters) (secpar uint32, eval Evaluation, err error) {
	return SecurityLevel(ctx, e.Backend, params, e.Mode)
}

// Estimate runs the rough or full estimate of the backend. Backend failures
// are returned as *EstimationError unless the backend reported itself
// unavailable (*CollaboratorUnavailableError).
func Estimate(ctx context.Context, backend Backend, params lwe.Parameters, mode Mode) (eval Evaluation, err error) {

	if backend == nil {
		return nil, &CollaboratorUnavailableError{Cause: errors.New("no cost estimator configured")}
	}

	switch mode {
	case Exact:
		eval, err = backend.Full(ctx, params)
	default:
		eval, err = backend.Rough(ctx, params)
	}

	if err != nil {

		var unavailable *CollaboratorUnavailableError
		if errors.As(err, &unavailable) {
			return nil, err
		}

		return nil, &EstimationError{Cause: err}
	}

	return eval, nil
}

// SecurityLevel is Estimate followed by Reduce.
func SecurityLevel(ctx context.Context, backend Backend, params lwe.Parameters, mode Mode) (secpar uint32, eval Evaluation, err error) {

	if eval, err = Estimate(ctx, backend, params, mode); err != nil {
		return
	}

	return Reduce(eval), eval, nil
}
