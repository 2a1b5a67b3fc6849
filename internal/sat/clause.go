package sat

import "strings"

// Clause is an ordered sequence of distinct literals of length at least one.
// Clauses of size two or more are watched at literals positions 0 and 1; the
// watch list invariant is maintained by Propagate and by whatever installs
// the clause (NewClause).
type Clause struct {
	literals []Literal

	// Whether the clause was learnt through conflict analysis, as opposed to
	// being part of the original problem. Kept only for bookkeeping, per the
	// data model: original and learnt clauses share a single representation.
	learnt bool

	// Literal block distance: the number of distinct decision levels among
	// the clause's literals at the time it was learnt. Zero for original
	// clauses, which are never scored.
	lbd int
}

// NewClause installs a clause of the given literals into the solver. For
// non-learnt clauses the literals are first simplified against the root-level
// assignment and deduplicated; a clause containing a literal and its negation
// is always true and is dropped. The returned bool is false only when the
// clause made the problem unsatisfiable (an empty clause, or a unit clause
// contradicting an existing root-level assignment). c is nil when the clause
// is empty or is dropped as trivially true; a unit clause yields an unwatched
// one-literal Clause whose literal is enqueued with it as the reason.
func NewClause(s *Solver, tmpLiterals []Literal, learnt bool) (*Clause, bool) {
	size := len(tmpLiterals)

	if !learnt {
		seen := map[Literal]struct{}{}

		for i := size - 1; i >= 0; i-- {
			if _, ok := seen[tmpLiterals[i].Opposite()]; ok {
				return nil, true // tautology, clause is always true
			}
			if _, ok := seen[tmpLiterals[i]]; ok {
				size--
				tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
				continue
			}
			seen[tmpLiterals[i]] = struct{}{}

			switch s.LitValue(tmpLiterals[i]) {
			case True:
				return nil, true // clause already satisfied at the root
			case False:
				size--
				tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
			}
		}
		tmpLiterals = tmpLiterals[:size]
	}

	switch size {
	case 0:
		return nil, false // TrivialUnsat / Contradiction at level 0
	case 1:
		// A unit clause is never watched (there is nothing to watch for),
		// but it is still recorded as a one-literal Clause so it can serve
		// as the assignment's reason: that is what tells enqueue this is a
		// forced fact (a propagation) rather than a free decision.
		c := &Clause{learnt: learnt, literals: []Literal{tmpLiterals[0]}}
		if learnt {
			c.lbd = c.computeLBD(s)
		}
		return c, s.enqueue(tmpLiterals[0], c)
	default:
		c := &Clause{
			learnt:   learnt,
			literals: append([]Literal(nil), tmpLiterals...),
		}

		if learnt {
			// Position 1 watches the literal assigned at the highest decision
			// level among the non-UIP literals, so that backtracking to the
			// backjump level immediately exposes it for propagation.
			maxLevel := -1
			swapAt := 1
			for i := 1; i < len(c.literals); i++ {
				if lvl := s.level[c.literals[i].VarID()]; lvl > maxLevel {
					maxLevel = lvl
					swapAt = i
				}
			}
			c.literals[swapAt], c.literals[1] = c.literals[1], c.literals[swapAt]
			c.lbd = c.computeLBD(s)
		}

		s.watch(c, c.literals[0].Opposite())
		s.watch(c, c.literals[1].Opposite())

		return c, true
	}
}

// computeLBD returns the number of distinct decision levels represented in
// the clause's literals.
func (c *Clause) computeLBD(s *Solver) int {
	seenLevel := map[int]struct{}{}
	for _, l := range c.literals {
		seenLevel[s.level[l.VarID()]] = struct{}{}
	}
	return len(seenLevel)
}

// Propagate is invoked when literal l (the opposite of one of the clause's
// watched literals) has just become true. It restores the watch-list
// invariant for c and returns false if doing so produced a conflict, in
// which case c is the falsified clause.
func (c *Clause) Propagate(s *Solver, l Literal) bool {
	opp := l.Opposite()
	if c.literals[0] == opp {
		c.literals[0], c.literals[1] = c.literals[1], c.literals[0]
	}

	if s.LitValue(c.literals[0]) == True {
		s.watch(c, l) // already satisfied, keep watching l
		return true
	}

	for i := 2; i < len(c.literals); i++ {
		if s.LitValue(c.literals[i]) != False {
			c.literals[1], c.literals[i] = c.literals[i], c.literals[1]
			s.watch(c, c.literals[1].Opposite())
			return true
		}
	}

	// No replacement: literals[0] must become true, or the clause conflicts.
	s.watch(c, l)
	return s.enqueue(c.literals[0], c)
}

// ExplainFailure returns the negation of every literal in c, used when c is
// the conflicting clause at the start of conflict analysis.
func (c *Clause) ExplainFailure() []Literal {
	out := make([]Literal, 0, len(c.literals))
	for _, l := range c.literals {
		out = append(out, l.Opposite())
	}
	return out
}

// ExplainAssign returns the negation of every literal but the first, used
// when c is the reason clause for one of its own implied literals.
func (c *Clause) ExplainAssign() []Literal {
	out := make([]Literal, 0, len(c.literals)-1)
	for _, l := range c.literals[1:] {
		out = append(out, l.Opposite())
	}
	return out
}

func (c *Clause) Literals() []Literal {
	return c.literals
}

func (c *Clause) Learnt() bool {
	return c.learnt
}

func (c *Clause) LBD() int {
	return c.lbd
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	sb := strings.Builder{}
	sb.WriteString("Clause[")
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
