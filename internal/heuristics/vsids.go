package heuristics

import "github.com/cdclab/banditsat/internal/sat"

// VSIDS picks the unassigned variable with maximum activity, ties broken by
// lowest variable index (spec §4.5). The solver itself owns and bumps the
// activity scores during conflict analysis; VSIDS only reads them.
//
// Decide scans every variable rather than maintaining an incremental
// priority heap. The Heuristic capability deliberately gives heuristics no
// hook into individual activity bumps (only Decide, OnClauseAdded, and
// OnRestart), so a heap here could not stay incrementally in sync without
// breaking that boundary; spec §1 also excludes industrial-scale
// performance from scope. A full scan is O(variables) per decision, which
// is the only unboundedly-growing loop the heuristic introduces.
type VSIDS struct{}

// NewVSIDS returns a new VSIDS heuristic instance.
func NewVSIDS() *VSIDS {
	return &VSIDS{}
}

func (h *VSIDS) Decide(v sat.View) (sat.Literal, bool) {
	best := -1
	bestActivity := 0.0

	for x := 0; x < v.NumVariables(); x++ {
		if v.VarValue(x) != sat.Unknown {
			continue
		}
		a := v.Activity(x)
		if best == -1 || a > bestActivity {
			best = x
			bestActivity = a
		}
	}
	if best == -1 {
		return 0, false
	}
	// Saved phase defaults false (spec §4.5: "Polarity = saved phase
	// (default false)"), so the natural sign when none is saved yet is
	// negative.
	return polarityFor(v, best, false), true
}

func (h *VSIDS) OnClauseAdded(lits []sat.Literal, learnt bool) {}

func (h *VSIDS) OnRestart() {}
