// Package dimacs loads DIMACS CNF files into a solver (spec §6 "DIMACS
// input"), wrapping github.com/rhartert/dimacs's streaming builder.
package dimacs

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/rhartert/dimacs"

	"github.com/cdclab/banditsat/internal/sat"
)

// SATSolver is the subset of *sat.Solver a DIMACS load needs.
type SATSolver interface {
	AddVariable() int
	AddClause([]sat.Literal) error
}

func reader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
	}
	return rc, nil
}

// Load parses the DIMACS CNF file at filename and installs its variables
// and clauses into solver, verbatim (spec §6: "the core accepts these
// verbatim").
func Load(filename string, gzipped bool, solver SATSolver) error {
	r, err := reader(filename, gzipped)
	if err != nil {
		return fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer r.Close()

	b := &builder{solver}
	return dimacs.ReadBuilder(r, b)
}

// builder adapts SATSolver to dimacs.Builder.
type builder struct {
	solver SATSolver
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("dimacs: unsupported problem type %q, want \"cnf\"", problem)
	}
	for i := 0; i < nVars; i++ {
		b.solver.AddVariable()
	}
	return nil
}

func (b *builder) Clause(tmpClause []int) error {
	clause := make([]sat.Literal, len(tmpClause))
	for i, l := range tmpClause {
		if l < 0 {
			clause[i] = sat.NegativeLiteral(-l - 1)
		} else {
			clause[i] = sat.PositiveLiteral(l - 1)
		}
	}
	return b.solver.AddClause(clause)
}

func (b *builder) Comment(_ string) error {
	return nil
}
