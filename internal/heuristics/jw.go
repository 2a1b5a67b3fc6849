package heuristics

import "github.com/cdclab/banditsat/internal/sat"

// JeroslowWang maintains a per-literal weight sum(2^-|c|) over every clause c
// containing that literal (spec §4.5), updated incrementally as clauses are
// added via OnClauseAdded rather than recomputed from scratch on each
// decision.
type JeroslowWang struct {
	weight map[sat.Literal]float64
}

// NewJW returns a new Jeroslow-Wang heuristic instance.
func NewJW() *JeroslowWang {
	return &JeroslowWang{weight: map[sat.Literal]float64{}}
}

func (h *JeroslowWang) OnClauseAdded(lits []sat.Literal, learnt bool) {
	if len(lits) == 0 {
		return
	}
	contribution := 1.0
	for range lits {
		contribution /= 2
	}
	for _, l := range lits {
		h.weight[l] += contribution
	}
}

func (h *JeroslowWang) OnRestart() {}

func (h *JeroslowWang) Decide(v sat.View) (sat.Literal, bool) {
	best := -1
	var bestLit sat.Literal
	bestWeight := -1.0

	for x := 0; x < v.NumVariables(); x++ {
		if v.VarValue(x) != sat.Unknown {
			continue
		}
		pos := sat.PositiveLiteral(x)
		neg := sat.NegativeLiteral(x)
		if w := h.weight[pos]; best == -1 || w > bestWeight {
			best, bestLit, bestWeight = x, pos, w
		}
		if w := h.weight[neg]; w > bestWeight {
			best, bestLit, bestWeight = x, neg, w
		}
	}
	if best == -1 {
		return 0, false
	}

	// The natural sign is whichever literal's weight won; saved phase
	// overrides it when one exists (spec §4.5).
	naturalPositive := bestLit.IsPositive()
	return polarityFor(v, best, naturalPositive), true
}
