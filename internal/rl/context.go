// Package rl drives the solver's CDCL loop with a LinUCB contextual bandit
// selecting the active branching heuristic at epoch boundaries (spec §4.8).
package rl

import (
	"math"

	"github.com/cdclab/banditsat/internal/sat"
)

// Dim is the context vector dimension (spec §4.7: eleven features).
const Dim = 11

// BuildContext assembles the eleven-feature context vector from the
// solver's current telemetry (spec §4.7). prevLearntCount is the learnt
// clause count snapshotted at the start of the epoch that just elapsed (0
// before any epoch has elapsed), used to compute feature 7's delta.
func BuildContext(s *sat.Solver, epochSize int64, prevLearntCount int) []float64 {
	if epochSize <= 0 {
		epochSize = 1
	}
	counters := s.CountersSnapshot()

	numVars := s.NumVariables()
	fractionAssigned := 0.0
	fractionDecisionDepth := 0.0
	if numVars > 0 {
		fractionAssigned = float64(s.NumAssigns()) / float64(numVars)
		fractionDecisionDepth = float64(s.DecisionLevel()) / float64(numVars)
	}

	meanActivity := s.MeanActivity()
	activityRatio := 1.0
	if meanActivity > 0 {
		activityRatio = s.MaxActivity() / meanActivity
	}

	learntDelta := float64(s.NumLearnts()-prevLearntCount) / float64(epochSize)

	return []float64{
		s.RecentLBDAverage(),
		float64(counters.Conflicts) / math.Max(1, float64(counters.Decisions)),
		float64(counters.Propagations) / math.Max(1, float64(counters.Decisions)),
		fractionAssigned,
		activityRatio,
		1.0 / (1.0 + float64(s.NumLearnts())),
		learntDelta,
		float64(counters.Restarts) / (1.0 + float64(counters.Conflicts)),
		s.FractionClausesSatisfied(),
		fractionDecisionDepth,
		1.0, // bias term
	}
}
