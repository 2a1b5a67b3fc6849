package sat

// Heuristic is the capability shared by every branching strategy: decide the
// next literal to assign, and react to clauses being added or to restarts.
// The set of heuristics is closed (vsids, jw, dlis, random); dynamic dispatch
// through this interface is cheap enough since Decide is called once per
// decision, not once per propagation.
type Heuristic interface {
	// Decide picks the next unassigned variable and a polarity for it. The
	// second return value is false when every variable is already assigned.
	Decide(v View) (Literal, bool)

	// OnClauseAdded notifies the heuristic that a clause was added to the
	// database, original or learnt. Heuristics that don't need the
	// notification (vsids, dlis, random) ignore it.
	OnClauseAdded(lits []Literal, learnt bool)

	// OnRestart notifies the heuristic that the solver restarted. None of
	// the four mandated heuristics need to react to this, but it is part of
	// the shared capability so future heuristics can.
	OnRestart()
}
