package estimator

import (
	"math"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Cost is the estimated cost of a single attack. Rop is the number of
// ring operations; the other fields are informative and may be zero.
type Cost struct {
	Rop   float64            `json:"rop"`
	Beta  int                `json:"beta,omitempty"`
	Eta   int                `json:"eta,omitempty"`
	Dim   int                `json:"d,omitempty"`
	M     int                `json:"m,omitempty"`
	Extra map[string]float64 `json:"extra,omitempty"`
}

// LogRop returns log2(Rop).
func (c Cost) LogRop() float64 {
	return math.Log2(c.Rop)
}

// Evaluation maps attack names to their cost.
type Evaluation map[string]Cost

// Names returns the attack names in lexical order.
func (e Evaluation) Names() (names []string) {
	names = maps.Keys(e)
	slices.Sort(names)
	return
}

// Cheapest returns the attack of minimal rop, ties broken by name.
// Attacks whose rop is NaN are skipped, as in Reduce.
func (e Evaluation) Cheapest() (name string, cost Cost, ok bool) {

	for _, k := range e.Names() {
		c := e[k]
		if math.IsNaN(c.Rop) {
			continue
		}
		if !ok || c.Rop < cost.Rop {
			name, cost, ok = k, c, true
		}
	}

	return
}

// LogRops returns log2(rop) of every attack, in the order of Names.
func (e Evaluation) LogRops() (logs []float64) {

	names := e.Names()
	logs = make([]float64, len(names))

	for i, k := range names {
		logs[i] = e[k].LogRop()
	}

	return
}
