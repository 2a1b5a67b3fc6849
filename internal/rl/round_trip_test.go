package rl

import (
	"math"
	"testing"

	"github.com/cdclab/banditsat/internal/bandit"
	"github.com/cdclab/banditsat/internal/baseline"
	"github.com/cdclab/banditsat/internal/heuristics"
	"github.com/cdclab/banditsat/internal/sat"
)

func roundTripInstance(t *testing.T) *sat.Solver {
	t.Helper()
	s := sat.NewSolver(sat.DefaultOptions)
	for i := 0; i < 6; i++ {
		s.AddVariable()
	}
	v := func(i, h int) sat.Literal { return sat.PositiveLiteral(i*2 + h) }
	neg := func(i, h int) sat.Literal { return sat.NegativeLiteral(i*2 + h) }
	for i := 0; i < 3; i++ {
		must(t, s.AddClause([]sat.Literal{v(i, 0), v(i, 1)}))
	}
	for h := 0; h < 2; h++ {
		for i := 0; i < 3; i++ {
			for j := i + 1; j < 3; j++ {
				must(t, s.AddClause([]sat.Literal{neg(i, h), neg(j, h)}))
			}
		}
	}
	return s
}

// TestRoundTrip_baselineMatchesPinnedRL exercises the round-trip law of
// spec §8: baseline mode with a fixed heuristic and epoch_size set to
// infinity must behave identically to RL mode pinned to that same arm from
// epoch 0 onward, since in both cases the active heuristic never switches
// mid-run.
func TestRoundTrip_baselineMatchesPinnedRL(t *testing.T) {
	baselineSolver := roundTripInstance(t)
	baselineSolver.SetHeuristics(heuristics.NewFamily(), 0)
	wantStatus := baseline.Run(baselineSolver)
	wantCounters := baselineSolver.CountersSnapshot()

	rlSolver := roundTripInstance(t)
	rlSolver.SetHeuristics(heuristics.NewFamily(), 0)

	// alpha=0 and every arm starting from identical (A=identity, b=zero)
	// state means every arm scores equally at the first selection, so the
	// lowest-index tie-break always lands on arm 0 - the same arm the
	// baseline run above was pinned to. An epoch size this large guarantees
	// the run completes within a single epoch, so no later selection can
	// switch heuristics either.
	ctrl := bandit.New(bandit.Options{Dim: Dim, NumArms: len(heuristics.Names), Alpha: 0})
	d := NewDriver(rlSolver, ctrl, heuristics.Names, Config{EpochSize: math.MaxInt32}, nil)
	gotStatus, records := d.Run()
	gotCounters := rlSolver.CountersSnapshot()

	if gotStatus != wantStatus {
		t.Fatalf("rl status = %s, want %s (matching baseline)", gotStatus, wantStatus)
	}
	if gotCounters != wantCounters {
		t.Errorf("rl counters = %+v, want %+v (matching baseline)", gotCounters, wantCounters)
	}
	for _, rec := range records {
		if rec.Arm != heuristics.Names[0] {
			t.Errorf("epoch %d used arm %q, want %q (pinned arm)", rec.Index, rec.Arm, heuristics.Names[0])
		}
	}
}
