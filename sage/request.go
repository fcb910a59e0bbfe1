package sage

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/tuneinsight/lwe-security-estimator/distribution"
	"github.com/tuneinsight/lwe-security-estimator/estimator"
	"github.com/tuneinsight/lwe-security-estimator/lwe"
)

// request is the document read by the estimation script on stdin.
type request struct {
	Path  string                 `json:"path,omitempty"`
	N     int                    `json:"n"`
	Q     string                 `json:"q"`
	M     *int                   `json:"m"`
	Exact bool                   `json:"exact"`
	Xs    map[string]interface{} `json:"Xs"`
	Xe    map[string]interface{} `json:"Xe"`
}

func newRequest(params lwe.Parameters, path string, exact bool) (req request, err error) {

	req = request{
		Path:  path,
		N:     params.N(),
		Q:     params.Q().String(),
		Exact: exact,
	}

	if m, ok := params.M().Value(); ok {
		req.M = &m
	}

	if req.Xs, err = encodeNoise(params.Xs()); err != nil {
		return
	}

	req.Xe, err = encodeNoise(params.Xe())

	return
}

// encodeNoise renders X with the keyword arguments of the matching
// constructor of the estimator's ND module.
func encodeNoise(X distribution.Noise) (m map[string]interface{}, err error) {

	m = map[string]interface{}{"kind": X.Kind().String()}

	switch X := X.(type) {
	case distribution.DiscreteGaussian:
		m["stddev"] = X.Sigma
		m["mean"] = X.Mu
	case distribution.DiscreteGaussianAlpha:
		m["alpha"] = X.Alpha
		m["q"] = X.Q.String()
		m["mean"] = X.Mu
	case distribution.CenteredBinomial:
		m["eta"] = X.Eta
	case distribution.Uniform:
		m["a"] = X.A
		m["b"] = X.B
	case distribution.UniformMod:
		m["q"] = X.Q.String()
	case distribution.SparseTernary:
		m["p"] = X.P
		m["m"] = X.M
	case distribution.SparseBinary:
		m["hw"] = X.HW
	case distribution.BinaryDist, distribution.TernaryDist:
		return
	default:
		return nil, fmt.Errorf("sage: unsupported distribution %T", X)
	}

	if n := X.Dimension(); n > 0 {
		m["n"] = n
	}

	return
}

// response is the document written by the estimation script on stdout.
type response map[string]struct {
	Rop  json.RawMessage `json:"rop"`
	Beta int             `json:"beta"`
	Eta  int             `json:"eta"`
	D    int             `json:"d"`
	M    int             `json:"m"`
}

func (r response) evaluation() (eval estimator.Evaluation, err error) {

	eval = estimator.Evaluation{}

	for name, c := range r {

		var rop float64
		if rop, err = parseRop(c.Rop); err != nil {
			return nil, fmt.Errorf("sage: attack %s: %w", name, err)
		}

		if math.IsNaN(rop) {
			return nil, fmt.Errorf("sage: attack %s: cost is not a number", name)
		}

		eval[name] = estimator.Cost{
			Rop:  rop,
			Beta: c.Beta,
			Eta:  c.Eta,
			Dim:  c.D,
			M:    c.M,
		}
	}

	return
}

// parseRop accepts a JSON number or one of the strings "oo" and "nan".
func parseRop(raw json.RawMessage) (rop float64, err error) {

	var s string
	if err = json.Unmarshal(raw, &s); err == nil {
		switch s {
		case "oo", "+Infinity", "inf":
			return math.Inf(1), nil
		case "nan", "NaN":
			return math.NaN(), nil
		}
		return strconv.ParseFloat(s, 64)
	}

	var num json.Number
	if err = json.Unmarshal(raw, &num); err != nil {
		return 0, fmt.Errorf("invalid rop %s", raw)
	}

	if rop, err = strconv.ParseFloat(num.String(), 64); errors.Is(err, strconv.ErrRange) {
		return rop, nil
	}

	return
}
