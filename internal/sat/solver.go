package sat

import (
	"fmt"
	"math/rand"
)

// recentLBDCapacity is the width K of the recent-LBD window (spec §3: "a
// bounded window (last K values, K=100) of learnt-clause LBDs").
const recentLBDCapacity = 100

// Status is the outcome of a completed solve, or Unresolved while a solve is
// still in progress.
type Status int

const (
	Unresolved Status = iota
	Satisfiable
	Unsatisfiable
)

func (s Status) String() string {
	switch s {
	case Satisfiable:
		return "SAT"
	case Unsatisfiable:
		return "UNSAT"
	default:
		return "UNRESOLVED"
	}
}

// Options configures a Solver at construction time (spec §6: "Solver
// construction").
type Options struct {
	// VarDecay is the VSIDS activity decay factor (spec §4.3 "decay", e.g.
	// 0.95).
	VarDecay float64

	// RestartInterval is the number of conflicts between two restarts (spec
	// §4.4's restart_interval).
	RestartInterval int64

	// Seed initializes the solver's own random source (spec §9: "The seeded
	// random generator is a field of the solver, not process-wide"), used by
	// the random heuristic's polarity choice.
	Seed int64
}

// DefaultOptions mirrors the constructor defaults of spec §6.
var DefaultOptions = Options{
	VarDecay:        0.95,
	RestartInterval: 200,
	Seed:            0,
}

// Solver is a CDCL SAT solver built around two-watched-literal propagation
// and first-UIP conflict analysis. It owns its clause database, trail, watch
// lists, and activity scores outright: per the concurrency model there is no
// external aliasing and no suspension point inside any of its methods.
type Solver struct {
	// Clause database. Original and learnt clauses share one container; see
	// data model §3 ("Persistently stored in a single container").
	clauses     []*Clause
	learntCount int

	// Variable activities (VSIDS bookkeeping lives on the solver itself
	// since conflict analysis bumps it regardless of which heuristic is
	// active; only the vsids heuristic reads it to decide).
	activities        []float64
	activityIncrement float64
	activityDecay     float64

	// Propagation and watch lists, indexed by literal.
	watchers  [][]*Clause
	propQueue *Queue[Literal]

	// Assignment state.
	assigns  []LBool // indexed by literal
	phase    []LBool // indexed by variable, last value held (false initially)
	trail    []Literal
	trailLim []int
	reason   []*Clause // indexed by variable; nil means Decision
	level    []int     // indexed by variable; -1 when unassigned
	phaseSet []bool    // indexed by variable; true once a phase has been saved

	unsat bool

	// Search counters (spec §3 "Solver counters").
	counters        Counters
	conflictsSince  int64 // conflicts since the last restart
	restartInterval int64
	recentLBD       *recentLBDWindow
	lbdSum          int64 // cumulative, unwindowed, for per-epoch LBD deltas
	lbdCount        int64

	// Branching heuristics. All installed heuristics receive OnClauseAdded/
	// OnRestart notifications; only the active one is asked to Decide.
	heuristics      []Heuristic
	activeHeuristic int

	rng *rand.Rand

	// Reusable scratch state to avoid repeat allocation.
	seenVar    *ResetSet
	tmpLearnts []Literal
}

// NewSolver returns an empty solver ready to accept variables and clauses.
func NewSolver(opts Options) *Solver {
	return &Solver{
		activityIncrement: 1.0,
		activityDecay:     opts.VarDecay,
		propQueue:         NewQueue[Literal](128),
		restartInterval:   opts.RestartInterval,
		recentLBD:         newRecentLBDWindow(recentLBDCapacity),
		rng:               rand.New(rand.NewSource(opts.Seed)),
		seenVar:           &ResetSet{},
	}
}

// SetHeuristics installs the full heuristic family and selects the initially
// active arm by index.
func (s *Solver) SetHeuristics(all []Heuristic, active int) {
	s.heuristics = all
	s.activeHeuristic = active
}

// SetActiveHeuristic switches the currently active branching heuristic by
// index into the slice passed to SetHeuristics. This is the "install
// heuristic" step of the epoch state machine (spec §4.8).
func (s *Solver) SetActiveHeuristic(index int) {
	s.activeHeuristic = index
}

// ActiveHeuristicIndex returns the index of the currently active heuristic.
func (s *Solver) ActiveHeuristicIndex() int {
	return s.activeHeuristic
}

func (s *Solver) view() View {
	return solverView{s}
}

// NumVariables returns the number of variables declared so far.
func (s *Solver) NumVariables() int {
	return len(s.phase)
}

// NumAssigns returns the number of currently assigned variables.
func (s *Solver) NumAssigns() int {
	return len(s.trail)
}

// NumConstraints returns the number of original (non-learnt) clauses.
func (s *Solver) NumConstraints() int {
	return len(s.clauses) - s.learntCount
}

// NumLearnts returns the number of learnt clauses.
func (s *Solver) NumLearnts() int {
	return s.learntCount
}

// CountersSnapshot returns a snapshot of the solver's search counters.
func (s *Solver) CountersSnapshot() Counters {
	return s.counters
}

// RecentLBDAverage returns the average LBD over the recent-LBD window, 0 if
// empty (spec §4.7 feature 1).
func (s *Solver) RecentLBDAverage() float64 {
	return s.recentLBD.Average()
}

// CumulativeLBD returns the running (unwindowed) sum and count of every
// learnt clause's LBD seen so far, letting a caller derive the average LBD
// over an arbitrary span by differencing two snapshots (the per-epoch reward
// term needs the average over one epoch, not over the whole run).
func (s *Solver) CumulativeLBD() (sum int64, count int64) {
	return s.lbdSum, s.lbdCount
}

// MaxActivity returns the highest current variable activity, 0 if there are
// no variables.
func (s *Solver) MaxActivity() float64 {
	max := 0.0
	for _, a := range s.activities {
		if a > max {
			max = a
		}
	}
	return max
}

// MeanActivity returns the mean variable activity, 0 if there are no
// variables.
func (s *Solver) MeanActivity() float64 {
	if len(s.activities) == 0 {
		return 0
	}
	sum := 0.0
	for _, a := range s.activities {
		sum += a
	}
	return sum / float64(len(s.activities))
}

// FractionClausesSatisfied returns the fraction of clauses (original and
// learnt) currently satisfied by the trail, 0 if there are no clauses.
func (s *Solver) FractionClausesSatisfied() float64 {
	if len(s.clauses) == 0 {
		return 0
	}
	satisfied := 0
	for _, c := range s.clauses {
		for _, l := range c.literals {
			if s.LitValue(l) == True {
				satisfied++
				break
			}
		}
	}
	return float64(satisfied) / float64(len(s.clauses))
}

// IsUnsat reports whether the solver has already determined the problem is
// unsatisfiable, independently of the current trail.
func (s *Solver) IsUnsat() bool {
	return s.unsat
}

// VarValue returns the current value of variable x.
func (s *Solver) VarValue(x int) LBool {
	return s.assigns[PositiveLiteral(x)]
}

// LitValue returns the current value of literal l.
func (s *Solver) LitValue(l Literal) LBool {
	return s.assigns[l]
}

// DecisionLevel returns the solver's current decision level.
func (s *Solver) DecisionLevel() int {
	return len(s.trailLim)
}

// AddVariable allocates a new, initially unassigned variable and returns its
// index.
func (s *Solver) AddVariable() int {
	index := s.NumVariables()
	s.watchers = append(s.watchers, nil, nil)
	s.reason = append(s.reason, nil)
	s.assigns = append(s.assigns, Unknown, Unknown)
	s.level = append(s.level, -1)
	s.activities = append(s.activities, 0)
	s.phase = append(s.phase, False) // saved phase initialized to false
	s.phaseSet = append(s.phaseSet, false)
	s.seenVar.Expand()
	return index
}

func (s *Solver) watch(c *Clause, l Literal) {
	s.watchers[l] = append(s.watchers[l], c)
}

// AddClause registers a clause with the solver (spec §4.1 add_clause). It can
// only be called at decision level 0.
func (s *Solver) AddClause(lits []Literal) error {
	if s.DecisionLevel() != 0 {
		return fmt.Errorf("sat: AddClause called at decision level %d, must be 0", s.DecisionLevel())
	}

	c, ok := NewClause(s, lits, false)
	if c != nil {
		s.clauses = append(s.clauses, c)
		s.notifyClauseAdded(c.literals, false)
	}
	if !ok {
		s.unsat = true
	}
	return nil
}

func (s *Solver) notifyClauseAdded(lits []Literal, learnt bool) {
	for _, h := range s.heuristics {
		h.OnClauseAdded(lits, learnt)
	}
}

// enqueue assigns l's variable so that l is true. A nil reason means the assignment is
// a free decision; any non-nil reason (including a one-literal Clause for a
// root-level fact) means it was propagated. It returns false if l was
// already false (a conflicting assignment).
func (s *Solver) enqueue(l Literal, reason *Clause) bool {
	switch s.LitValue(l) {
	case False:
		return false
	case True:
		return true
	}

	v := l.VarID()
	s.assigns[l] = True
	s.assigns[l.Opposite()] = False
	s.level[v] = s.DecisionLevel()
	s.reason[v] = reason
	s.trail = append(s.trail, l)
	s.propQueue.Push(l)

	if reason == nil {
		s.counters.Decisions++
	} else {
		s.counters.Propagations++
	}
	return true
}

// Propagate drains the propagation queue (spec §4.2 BCP) and returns the
// falsified clause on conflict, or nil if the queue emptied cleanly.
func (s *Solver) Propagate() *Clause {
	for s.propQueue.Size() > 0 {
		l := s.propQueue.Pop()

		ws := s.watchers[l]
		s.watchers[l] = nil

		for i, c := range ws {
			if c.Propagate(s, l) {
				continue
			}
			// Conflict: restore the remaining (unprocessed) watchers for l
			// and hand the falsified clause back to the caller.
			s.watchers[l] = append(s.watchers[l], ws[i+1:]...)
			s.propQueue.Clear()
			return c
		}
	}
	return nil
}

// explain returns the literals that imply l through reason c: every literal
// of c except l itself, negated. When l is the sentinel conflictLiteral (-1),
// the whole clause is negated (used to seed analysis from the conflicting
// clause itself).
const conflictLiteral Literal = -1

func (s *Solver) explain(c *Clause, l Literal) []Literal {
	if l == conflictLiteral {
		return c.ExplainFailure()
	}
	return c.ExplainAssign()
}

// Analyze performs first-UIP conflict analysis (spec §4.3): resolve the
// conflicting clause against each literal's reason, walking the trail from
// its tail backwards, until exactly one literal assigned at the current
// decision level is left standing - that literal's negation is the
// asserting (UIP) literal. Returns the learnt clause, UIP literal first,
// and the backjump level (the highest level among the clause's remaining
// literals, i.e. the second-highest level in the clause; 0 for a unit).
//
// This is the standard MiniSat-lineage shape for first-UIP resolution: a
// seen-set keyed by variable, a running count of how many current-level
// literals are still unresolved, and a pointer walking the trail backwards
// to find the next of them. Any correct first-UIP implementation over a
// flat trail needs that backwards walk, since the UIP property depends on
// trail order, not an arbitrary resolution order.
func (s *Solver) Analyze(confl *Clause) ([]Literal, int) {
	s.tmpLearnts = s.tmpLearnts[:0]
	s.tmpLearnts = append(s.tmpLearnts, conflictLiteral) // placeholder for the UIP literal
	s.seenVar.Clear()

	unresolved := 0 // seen literals at the current level not yet resolved away
	backjumpLevel := 0
	reason := confl
	uip := conflictLiteral
	trailPos := len(s.trail)

	for {
		for _, q := range s.explain(reason, uip) {
			v := q.VarID()
			if s.seenVar.Contains(v) {
				continue
			}
			s.seenVar.Add(v)
			s.bumpVarActivity(v)

			if s.level[v] == s.DecisionLevel() {
				unresolved++
				continue
			}

			s.tmpLearnts = append(s.tmpLearnts, q.Opposite())
			if lvl := s.level[v]; lvl > backjumpLevel {
				backjumpLevel = lvl
			}
		}

		uip, reason = s.nextSeenTrailLiteral(&trailPos)

		unresolved--
		if unresolved <= 0 {
			break
		}
	}

	s.tmpLearnts[0] = uip.Opposite()
	learnt := append([]Literal(nil), s.tmpLearnts...)

	// LBD is computed here, while the trail still reflects the pre-backjump
	// state, per spec §4.3 ("Compute LBD ... append to recent_lbd").
	lbd := distinctLevels(s, learnt)
	s.recentLBD.Add(lbd)
	s.lbdSum += int64(lbd)
	s.lbdCount++

	s.decayVarActivity()

	return learnt, backjumpLevel
}

// nextSeenTrailLiteral walks the trail backwards from *pos (exclusive),
// returning the first literal Analyze has already marked seen along with
// its assigning reason clause (nil for a decision literal), and leaving
// *pos at that literal's trail index.
func (s *Solver) nextSeenTrailLiteral(pos *int) (Literal, *Clause) {
	for {
		*pos--
		l := s.trail[*pos]
		if s.seenVar.Contains(l.VarID()) {
			return l, s.reason[l.VarID()]
		}
	}
}

// distinctLevels returns the number of distinct decision levels among lits.
func distinctLevels(s *Solver, lits []Literal) int {
	seen := map[int]struct{}{}
	for _, l := range lits {
		seen[s.level[l.VarID()]] = struct{}{}
	}
	return len(seen)
}

func (s *Solver) bumpVarActivity(v int) {
	s.activities[v] += s.activityIncrement
}

// decayVarActivity implements spec §4.3's activity decay: rather than
// shrinking every variable's score (O(n) per conflict), the shared increment
// grows, which has the same relative effect. "Rescale all activities by
// 1e-100 when activity_increment exceeds 1e100 to prevent overflow."
func (s *Solver) decayVarActivity() {
	s.activityIncrement /= s.activityDecay
	if s.activityIncrement > 1e100 {
		for i := range s.activities {
			s.activities[i] *= 1e-100
		}
		s.activityIncrement *= 1e-100
	}
}

// RecordLearnt installs a just-derived learnt clause and enqueues its
// asserting literal. It must be called immediately after backtracking to the
// clause's backjump level.
func (s *Solver) RecordLearnt(lits []Literal) {
	c, _ := NewClause(s, lits, true)
	s.enqueue(lits[0], c)
	if c != nil {
		s.clauses = append(s.clauses, c)
		s.learntCount++
		s.notifyClauseAdded(c.literals, true)
	}
}

func (s *Solver) undoOne() {
	l := s.trail[len(s.trail)-1]
	v := l.VarID()

	s.phase[v] = s.assigns[l] // save phase before clearing
	s.phaseSet[v] = true
	s.assigns[l] = Unknown
	s.assigns[l.Opposite()] = Unknown
	s.reason[v] = nil
	s.level[v] = -1

	s.trail = s.trail[:len(s.trail)-1]
}

// Backtrack undoes every assignment made above the given decision level
// (spec §4.1 backtrack).
func (s *Solver) Backtrack(toLevel int) {
	for s.DecisionLevel() > toLevel {
		target := s.trailLim[len(s.trailLim)-1]
		for len(s.trail) > target {
			s.undoOne()
		}
		s.trailLim = s.trailLim[:len(s.trailLim)-1]
	}
	s.propQueue.Clear()
}

// NewDecisionLevel pushes a new decision-level marker. Callers must follow
// it with an enqueue of the decision literal.
func (s *Solver) NewDecisionLevel() {
	s.trailLim = append(s.trailLim, len(s.trail))
}

// Restart backtracks to level 0 and counts a restart. Restarts do not reset
// the epoch conflict counter (spec §4.8: "Restarts do not end an epoch").
func (s *Solver) Restart() {
	s.Backtrack(0)
	s.counters.Restarts++
	s.conflictsSince = 0
	for _, h := range s.heuristics {
		h.OnRestart()
	}
}

// Decide asks the active heuristic for the next decision literal.
func (s *Solver) Decide() (Literal, bool) {
	return s.heuristics[s.activeHeuristic].Decide(s.view())
}

// Step runs exactly one iteration of the CDCL loop body described in spec
// §4.4: propagate, then either analyze-and-backjump on conflict or decide.
// It reports the resulting status (Unresolved unless the solve just
// finished) and whether this step processed a conflict, so that callers
// driving epoch accounting know precisely when to advance their counters.
func (s *Solver) Step() (status Status, conflicted bool) {
	if s.unsat {
		return Unsatisfiable, false
	}

	if confl := s.Propagate(); confl != nil {
		s.counters.Conflicts++
		s.conflictsSince++

		if s.DecisionLevel() == 0 {
			s.unsat = true
			return Unsatisfiable, true
		}

		learnt, backjump := s.Analyze(confl)
		s.Backtrack(backjump)
		s.RecordLearnt(learnt)

		if s.conflictsSince >= s.restartInterval {
			s.Restart()
		}
		return Unresolved, true
	}

	if s.NumAssigns() == s.NumVariables() {
		return Satisfiable, false
	}

	lit, ok := s.Decide()
	if !ok {
		return Satisfiable, false
	}
	s.NewDecisionLevel()
	s.enqueue(lit, nil)
	return Unresolved, false
}

// Model returns the current (necessarily total, if called after a
// Satisfiable result) boolean assignment.
func (s *Solver) Model() []bool {
	model := make([]bool, s.NumVariables())
	for v := range model {
		model[v] = s.VarValue(v) == True
	}
	return model
}
