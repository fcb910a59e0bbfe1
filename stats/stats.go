// Package stats summarises the log2 costs of the attacks of one or more
// evaluations.
package stats

import (
	"fmt"
	"math"

	mstats "github.com/montanaflynn/stats"

	"github.com/tuneinsight/lwe-security-estimator/estimator"
)

var Header = []string{
	"MIN",
	"AVG",
	"STD",
}

// SecurityStats stores statistics about the log2(rop) of attacks.
// Attacks of infinite cost are counted but do not enter the statistics.
type SecurityStats struct {
	MinLogRop  float64
	MeanLogRop float64
	StdLogRop  float64
	Infinite   int

	logs []float64
}

func NewSecurityStats() *SecurityStats {
	return &SecurityStats{
		logs: []float64{},
	}
}

// Update records every attack of eval.
func (s *SecurityStats) Update(eval estimator.Evaluation) {
	for _, v := range eval.LogRops() {
		switch {
		case math.IsNaN(v):
		case math.IsInf(v, 1):
			s.Infinite++
		default:
			s.logs = append(s.logs, v)
		}
	}
}

// Len returns the number of finite costs recorded.
func (s *SecurityStats) Len() int {
	return len(s.logs)
}

// Finalize computes the statistics. With no finite cost recorded, MIN and
// AVG are +Inf if some attack was infeasible and NaN otherwise.
func (s *SecurityStats) Finalize() (err error) {

	if len(s.logs) == 0 {
		v := math.NaN()
		if s.Infinite > 0 {
			v = math.Inf(1)
		}
		s.MinLogRop, s.MeanLogRop, s.StdLogRop = v, v, 0
		return
	}

	if s.MinLogRop, err = mstats.Min(s.logs); err != nil {
		return
	}

	if s.MeanLogRop, err = mstats.Mean(s.logs); err != nil {
		return
	}

	s.StdLogRop, err = mstats.StandardDeviation(s.logs)

	return
}

func (s *SecurityStats) ToCSV() []string {
	return []string{
		fmt.Sprintf("%.5f", s.MinLogRop),
		fmt.Sprintf("%.5f", s.MeanLogRop),
		fmt.Sprintf("%.5f", s.StdLogRop),
	}
}
