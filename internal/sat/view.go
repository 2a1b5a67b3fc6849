package sat

import "math/rand"

// View exposes read-only access to solver state for branching heuristics.
// Per the concurrency model, heuristics receive this view during Decide (the
// notification hooks are not given one), and must not mutate trail or watch
// state through it: every method here returns a copy or a value, never backing storage a
// caller could write through.
type View interface {
	// NumVariables returns the number of variables known to the solver.
	NumVariables() int

	// VarValue returns the current value of variable v.
	VarValue(v int) LBool

	// LitValue returns the current value of literal l.
	LitValue(l Literal) LBool

	// SavedPhase returns the last value variable v held. It is only
	// meaningful when HasSavedPhase(v) is true; otherwise it reads as the
	// data model's default, False.
	SavedPhase(v int) LBool

	// HasSavedPhase reports whether v has ever been assigned and then
	// unassigned, i.e. whether SavedPhase(v) reflects a real prior value
	// rather than the unset default.
	HasSavedPhase(v int) bool

	// Activity returns variable v's VSIDS activity score.
	Activity(v int) float64

	// Clauses returns the literals of every clause (original and learnt)
	// currently in the database. Callers must not mutate the returned
	// slices.
	Clauses() [][]Literal

	// Rng returns the solver's seeded random source, so that heuristics
	// needing randomness stay deterministic under a fixed seed instead of
	// reaching for a process-global generator.
	Rng() *rand.Rand
}

// solverView adapts *Solver to the View interface.
type solverView struct {
	s *Solver
}

func (v solverView) NumVariables() int        { return v.s.NumVariables() }
func (v solverView) VarValue(x int) LBool     { return v.s.VarValue(x) }
func (v solverView) LitValue(l Literal) LBool { return v.s.LitValue(l) }
func (v solverView) SavedPhase(x int) LBool   { return v.s.phase[x] }
func (v solverView) HasSavedPhase(x int) bool { return v.s.phaseSet[x] }
func (v solverView) Activity(x int) float64   { return v.s.activities[x] }
func (v solverView) Rng() *rand.Rand          { return v.s.rng }

func (v solverView) Clauses() [][]Literal {
	out := make([][]Literal, 0, len(v.s.clauses))
	for _, c := range v.s.clauses {
		out = append(out, append([]Literal(nil), c.literals...))
	}
	return out
}
