// Package baseline drives the solver's CDCL loop with a single fixed
// branching heuristic for the whole run, with no bandit controller and no
// epoch accounting, for an apples-to-apples comparison against the rl
// driver (spec §2).
package baseline

import "github.com/cdclab/banditsat/internal/sat"

// Run drives solver to completion using whichever heuristic is already
// active (sat.Solver.SetActiveHeuristic), returning its final status.
func Run(solver *sat.Solver) sat.Status {
	for {
		status, _ := solver.Step()
		if status != sat.Unresolved {
			return status
		}
	}
}
