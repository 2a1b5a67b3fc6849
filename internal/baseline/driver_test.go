package baseline

import (
	"testing"

	"github.com/cdclab/banditsat/internal/heuristics"
	"github.com/cdclab/banditsat/internal/sat"
)

func TestRun_satisfiableInstance(t *testing.T) {
	s := sat.NewSolver(sat.DefaultOptions)
	s.AddVariable()
	s.AddVariable()
	s.AddVariable()
	s.SetHeuristics(heuristics.NewFamily(), 0)

	if err := s.AddClause([]sat.Literal{sat.PositiveLiteral(0), sat.NegativeLiteral(1)}); err != nil {
		t.Fatalf("AddClause: %s", err)
	}
	if err := s.AddClause([]sat.Literal{sat.NegativeLiteral(0), sat.PositiveLiteral(1), sat.PositiveLiteral(2)}); err != nil {
		t.Fatalf("AddClause: %s", err)
	}

	if status := Run(s); status != sat.Satisfiable {
		t.Fatalf("Run() = %s, want SAT", status)
	}
}

func TestRun_unsatisfiableInstance(t *testing.T) {
	s := sat.NewSolver(sat.DefaultOptions)
	s.AddVariable()
	s.SetHeuristics(heuristics.NewFamily(), 0)

	if err := s.AddClause([]sat.Literal{sat.PositiveLiteral(0)}); err != nil {
		t.Fatalf("AddClause: %s", err)
	}
	if err := s.AddClause([]sat.Literal{sat.NegativeLiteral(0)}); err != nil {
		t.Fatalf("AddClause: %s", err)
	}

	if status := Run(s); status != sat.Unsatisfiable {
		t.Fatalf("Run() = %s, want UNSAT", status)
	}
}

func TestRun_fixedHeuristicDoesNotReassignArm(t *testing.T) {
	s := sat.NewSolver(sat.DefaultOptions)
	s.AddVariable()
	s.SetHeuristics(heuristics.NewFamily(), armIndex(heuristics.NameDLIS))

	if err := s.AddClause([]sat.Literal{sat.PositiveLiteral(0)}); err != nil {
		t.Fatalf("AddClause: %s", err)
	}
	Run(s)

	if got := s.ActiveHeuristicIndex(); got != armIndex(heuristics.NameDLIS) {
		t.Errorf("ActiveHeuristicIndex() = %d, want the fixed arm baseline.Run was given, unchanged", got)
	}
}

func armIndex(name string) int {
	for i, n := range heuristics.Names {
		if n == name {
			return i
		}
	}
	return -1
}
