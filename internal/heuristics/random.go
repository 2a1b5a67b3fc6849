package heuristics

import "github.com/cdclab/banditsat/internal/sat"

// Random returns the first unassigned variable in index order, using its
// saved phase if one exists, otherwise a pseudo-random sign drawn from the
// solver's seeded generator (spec §4.5).
type Random struct{}

// NewRandom returns a new random heuristic instance.
func NewRandom() *Random {
	return &Random{}
}

func (h *Random) OnClauseAdded(lits []sat.Literal, learnt bool) {}

func (h *Random) OnRestart() {}

func (h *Random) Decide(v sat.View) (sat.Literal, bool) {
	for x := 0; x < v.NumVariables(); x++ {
		if v.VarValue(x) != sat.Unknown {
			continue
		}
		if v.HasSavedPhase(x) {
			return polarityFor(v, x, false), true
		}
		return polarityFor(v, x, v.Rng().Intn(2) == 0), true
	}
	return 0, false
}
