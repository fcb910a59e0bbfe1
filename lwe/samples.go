package lwe

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Samples is the number of LWE samples available to an attacker,
// either a bound or unbounded. The zero value is unbounded.
type Samples struct {
	m       int
	bounded bool
}

// Unbounded returns an unlimited sample count.
func Unbounded() Samples {
	return Samples{}
}

// Bounded returns a sample count of m.
func Bounded(m int) Samples {
	return Samples{m: m, bounded: true}
}

// Value returns the bound and whether there is one.
func (s Samples) Value() (m int, ok bool) {
	return s.m, s.bounded
}

// IsUnbounded reports whether the sample count is unlimited.
func (s Samples) IsUnbounded() bool {
	return !s.bounded
}

// Float64 returns the bound, or +Inf when unbounded.
func (s Samples) Float64() float64 {
	if !s.bounded {
		return math.Inf(1)
	}
	return float64(s.m)
}

// Min returns min(s, m) as an int.
func (s Samples) Min(m int) int {
	if s.bounded && s.m < m {
		return s.m
	}
	return m
}

func (s Samples) String() string {
	if !s.bounded {
		return "oo"
	}
	return strconv.Itoa(s.m)
}

// MarshalJSON encodes an unbounded count as null.
func (s Samples) MarshalJSON() ([]byte, error) {
	if !s.bounded {
		return []byte("null"), nil
	}
	return json.Marshal(s.m)
}

// UnmarshalJSON accepts an integer or null.
func (s *Samples) UnmarshalJSON(data []byte) (err error) {

	var m *int
	if err = json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("lwe: invalid sample count: %w", err)
	}

	if m == nil {
		*s = Unbounded()
	} else {
		*s = Bounded(*m)
	}

	return
}
