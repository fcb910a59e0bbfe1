// Package presets provides RLWE parameter sets of common homomorphic
// encryption sizes and converts them into LWE instances.
package presets

import (
	"fmt"
	"strings"

	"github.com/tuneinsight/lattigo/v6/core/rlwe"
	"github.com/tuneinsight/lattigo/v6/ring"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/tuneinsight/lwe-security-estimator/distribution"
	"github.com/tuneinsight/lwe-security-estimator/lwe"
)

var (
	// PN12QP109 is a parameter set with logN=12 and logQP=109.
	PN12QP109 = rlwe.ParametersLiteral{
		LogN: 12,
		LogQ: []int{39, 31},
		LogP: []int{39},
		Xs:   rlwe.DefaultXs,
		Xe:   rlwe.DefaultXe,
	}

	// PN13QP218 is a parameter set with logN=13 and logQP=218.
	PN13QP218 = rlwe.ParametersLiteral{
		LogN: 13,
		LogQ: append([]int{33}, repeat(30, 5)...),
		LogP: []int{35},
		Xs:   rlwe.DefaultXs,
		Xe:   rlwe.DefaultXe,
	}

	// PN14QP438 is a parameter set with logN=14 and logQP=438.
	PN14QP438 = rlwe.ParametersLiteral{
		LogN: 14,
		LogQ: append([]int{55}, repeat(40, 7)...),
		LogP: []int{51, 52},
		Xs:   rlwe.DefaultXs,
		Xe:   rlwe.DefaultXe,
	}

	// PN15QP880 is a parameter set with logN=15 and logQP=880.
	PN15QP880 = rlwe.ParametersLiteral{
		LogN: 15,
		LogQ: append([]int{50}, repeat(40, 17)...),
		LogP: repeat(50, 3),
		Xs:   rlwe.DefaultXs,
		Xe:   rlwe.DefaultXe,
	}

	// PN16QP1761 is a parameter set with logN=16 and logQP=1761.
	PN16QP1761 = rlwe.ParametersLiteral{
		LogN: 16,
		LogQ: append([]int{60}, repeat(50, 26)...),
		LogP: append([]int{59}, repeat(57, 6)...),
		Xs:   rlwe.DefaultXs,
		Xe:   rlwe.DefaultXe,
	}

	// PN15QP880H192 is PN15QP880 with a sparse secret of Hamming weight 192.
	PN15QP880H192 = withSparseSecret(PN15QP880, 192)

	// PN16QP1761H192 is PN16QP1761 with a sparse secret of Hamming weight 192.
	PN16QP1761H192 = withSparseSecret(PN16QP1761, 192)
)

var literals = map[string]rlwe.ParametersLiteral{
	"PN12QP109":      PN12QP109,
	"PN13QP218":      PN13QP218,
	"PN14QP438":      PN14QP438,
	"PN15QP880":      PN15QP880,
	"PN16QP1761":     PN16QP1761,
	"PN15QP880H192":  PN15QP880H192,
	"PN16QP1761H192": PN16QP1761H192,
}

func repeat(logQi, count int) (logQ []int) {
	logQ = make([]int, count)
	for i := range logQ {
		logQ[i] = logQi
	}
	return
}

func withSparseSecret(lit rlwe.ParametersLiteral, h int) rlwe.ParametersLiteral {
	lit.LogQ = append([]int{}, lit.LogQ...)
	lit.LogP = append([]int{}, lit.LogP...)
	lit.Xs = ring.Ternary{H: h}
	return lit
}

// Names returns the names of the presets in lexical order.
func Names() (names []string) {
	names = maps.Keys(literals)
	slices.Sort(names)
	return
}

// Lookup returns the preset of the given name, ignoring case.
func Lookup(name string) (rlwe.ParametersLiteral, error) {

	for k, lit := range literals {
		if strings.EqualFold(k, strings.TrimSpace(name)) {
			return lit, nil
		}
	}

	return rlwe.ParametersLiteral{}, fmt.Errorf("presets: unknown preset %q (available: %s)", name, strings.Join(Names(), ", "))
}

// Parameters returns the LWE instance underlying the RLWE parameters lit:
// n = N, q = QP, and the N LWE samples given by one RLWE sample.
func Parameters(lit rlwe.ParametersLiteral) (params lwe.Parameters, err error) {

	var rp rlwe.Parameters
	if rp, err = rlwe.NewParametersFromLiteral(lit); err != nil {
		return
	}

	n := rp.N()

	var xs, xe distribution.Noise

	if xs, err = distribution.FromRing(rp.Xs(), n); err != nil {
		return params, fmt.Errorf("presets: secret: %w", err)
	}

	if xe, err = distribution.FromRing(rp.Xe(), n); err != nil {
		return params, fmt.Errorf("presets: error: %w", err)
	}

	return lwe.NewParameters(n, rp.QPBigInt(), xs, xe, lwe.Bounded(n))
}
