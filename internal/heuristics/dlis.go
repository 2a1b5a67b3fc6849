package heuristics

import "github.com/cdclab/banditsat/internal/sat"

// DLIS picks the unassigned literal occurring most often in currently
// unsatisfied clauses (spec §4.5). It rescans every clause on every
// decision, as the spec's open question permits ("whether to cache literal
// counts incrementally is left as an optimization and must not change
// observable decisions for a given tie-breaking rule") without requiring it.
type DLIS struct{}

// NewDLIS returns a new DLIS heuristic instance.
func NewDLIS() *DLIS {
	return &DLIS{}
}

func (h *DLIS) OnClauseAdded(lits []sat.Literal, learnt bool) {}

func (h *DLIS) OnRestart() {}

func (h *DLIS) Decide(v sat.View) (sat.Literal, bool) {
	counts := map[sat.Literal]int{}
	for _, lits := range v.Clauses() {
		if isSatisfied(v, lits) {
			continue
		}
		for _, l := range lits {
			if v.VarValue(l.VarID()) == sat.Unknown {
				counts[l]++
			}
		}
	}

	best := -1
	var bestLit sat.Literal
	bestCount := -1

	for x := 0; x < v.NumVariables(); x++ {
		if v.VarValue(x) != sat.Unknown {
			continue
		}
		pos := sat.PositiveLiteral(x)
		neg := sat.NegativeLiteral(x)
		cp, cn := counts[pos], counts[neg]

		// Tie-break: lowest variable index, positive sign first.
		if best == -1 {
			best, bestLit, bestCount = x, pos, cp
			if cn > cp {
				bestLit, bestCount = neg, cn
			}
			continue
		}
		if cp > bestCount {
			best, bestLit, bestCount = x, pos, cp
		}
		if cn > bestCount {
			best, bestLit, bestCount = x, neg, cn
		}
	}
	if best == -1 {
		return 0, false
	}

	return polarityFor(v, best, bestLit.IsPositive()), true
}
