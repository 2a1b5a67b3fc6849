// Package heuristics implements the four mandated branching strategies of
// spec §4.5: activity-based (VSIDS), Jeroslow-Wang, DLIS, and random. Every
// strategy shares the sat.Heuristic capability (Decide, OnClauseAdded,
// OnRestart) so the solver can dispatch to whichever arm the bandit
// controller (or a fixed baseline run) currently has active.
package heuristics

import "github.com/cdclab/banditsat/internal/sat"

// Arm names, fixed and used both as the CLI's --heuristic values (spec §6)
// and as the per-epoch record's "selected arm name" (spec §6 solve-call
// statistics).
const (
	NameVSIDS  = "vsids"
	NameJW     = "jw"
	NameDLIS   = "dlis"
	NameRandom = "random"
)

// Names lists the four arms in the fixed order NewFamily installs them in,
// which is also the LinUCB arm index order.
var Names = []string{NameVSIDS, NameJW, NameDLIS, NameRandom}

// NewFamily returns the four mandated heuristics, in Names order, ready to
// be installed on a sat.Solver via Solver.SetHeuristics.
func NewFamily() []sat.Heuristic {
	return []sat.Heuristic{
		NewVSIDS(),
		NewJW(),
		NewDLIS(),
		NewRandom(),
	}
}

// polarityFor applies the shared decide() contract of spec §4.5: use the
// variable's saved phase if one exists, otherwise fall back to the
// heuristic-specific natural sign (naturalPositive).
func polarityFor(v sat.View, x int, naturalPositive bool) sat.Literal {
	if v.HasSavedPhase(x) {
		if v.SavedPhase(x) == sat.True {
			return sat.PositiveLiteral(x)
		}
		return sat.NegativeLiteral(x)
	}
	if naturalPositive {
		return sat.PositiveLiteral(x)
	}
	return sat.NegativeLiteral(x)
}

// isSatisfied reports whether a clause currently has at least one true
// literal.
func isSatisfied(v sat.View, lits []sat.Literal) bool {
	for _, l := range lits {
		if v.LitValue(l) == sat.True {
			return true
		}
	}
	return false
}
