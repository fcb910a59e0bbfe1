package distribution

import (
	"strings"
)

// Kind identifies one of the supported noise distribution families.
type Kind int

const (
	KindDiscreteGaussian Kind = iota + 1
	KindDiscreteGaussianAlpha
	KindCenteredBinomial
	KindUniform
	KindUniformMod
	KindSparseTernary
	KindSparseBinary
	KindBinary
	KindTernary
)

// Kinds lists every supported kind in declaration order.
var Kinds = []Kind{
	KindDiscreteGaussian,
	KindDiscreteGaussianAlpha,
	KindCenteredBinomial,
	KindUniform,
	KindUniformMod,
	KindSparseTernary,
	KindSparseBinary,
	KindBinary,
	KindTernary,
}

var kindNames = map[Kind]string{
	KindDiscreteGaussian:      "DiscreteGaussian",
	KindDiscreteGaussianAlpha: "DiscreteGaussianAlpha",
	KindCenteredBinomial:      "CenteredBinomial",
	KindUniform:               "Uniform",
	KindUniformMod:            "UniformMod",
	KindSparseTernary:         "SparseTernary",
	KindSparseBinary:          "SparseBinary",
	KindBinary:                "Binary",
	KindTernary:               "Ternary",
}

// aliases maps lower-cased user spellings to kinds.
var aliases = map[string]Kind{
	"discretegaussian":      KindDiscreteGaussian,
	"dg":                    KindDiscreteGaussian,
	"gaussian":              KindDiscreteGaussian,
	"discretegaussianalpha": KindDiscreteGaussianAlpha,
	"dg_alpha":              KindDiscreteGaussianAlpha,
	"dga":                   KindDiscreteGaussianAlpha,
	"centeredbinomial":      KindCenteredBinomial,
	"cb":                    KindCenteredBinomial,
	"binomial":              KindCenteredBinomial,
	"uniform":               KindUniform,
	"uniformmod":            KindUniformMod,
	"uniform_mod":           KindUniformMod,
	"umod":                  KindUniformMod,
	"sparseternary":         KindSparseTernary,
	"ternary_sparse":        KindSparseTernary,
	"st":                    KindSparseTernary,
	"sparsebinary":          KindSparseBinary,
	"binary_sparse":         KindSparseBinary,
	"sb":                    KindSparseBinary,
	"binary":                KindBinary,
	"ternary":               KindTernary,
}

// ParseKind returns the kind named by name. Matching ignores case and
// surrounding whitespace and accepts the usual short aliases ("dg", "cb", ...).
func ParseKind(name string) (k Kind, err error) {

	k, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, &UnknownKindError{Name: strings.TrimSpace(name)}
	}

	return k, nil
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Kind(?)"
}
