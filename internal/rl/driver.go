package rl

import (
	"github.com/sirupsen/logrus"

	"github.com/cdclab/banditsat/internal/bandit"
	"github.com/cdclab/banditsat/internal/sat"
)

// EpochRecord summarizes one closed epoch: the arm selected for it, the
// context that drove that selection, and the reward observed once it closed
// (spec §6 "per-epoch records").
type EpochRecord struct {
	Index        int
	Arm          string
	Context      []float64
	Reward       float64
	Conflicts    int64
	Propagations int64
	Decisions    int64
	AverageLBD   float64
}

// Config configures a Driver.
type Config struct {
	// EpochSize is the number of conflicts per epoch (spec §4.8).
	EpochSize int64
	// Weights are the reward function's coefficients; zero value resolves
	// to DefaultWeights.
	Weights Weights
}

// epoch holds the bookkeeping needed to close out the epoch currently in
// flight: the arm and context it was opened with, and the telemetry
// snapshot taken at the moment it was opened.
type epoch struct {
	index            int
	arm              int
	context          []float64
	startCounters    sat.Counters
	startLBDSum      int64
	startLBDCount    int64
	startLearntCount int
}

// Driver runs the solver's CDCL loop (sat.Solver.Step) while a LinUCB
// controller selects the active branching heuristic at each epoch boundary
// (spec §4.8's Init / EpochActive / EpochBoundary state machine).
type Driver struct {
	solver     *sat.Solver
	controller *bandit.LinUCB
	armNames   []string
	cfg        Config
	log        logrus.FieldLogger

	current *epoch // nil in the Init state, before the first conflict
	tally   int64  // conflicts seen since current was opened

	nextEpochIndex int
	prevAvgLBD     float64
	records        []EpochRecord
}

// NewDriver returns a Driver wired to solver and controller. armNames must
// have exactly controller.NumArms() entries, naming each arm for
// EpochRecord.Arm. A nil logger disables logging.
func NewDriver(solver *sat.Solver, controller *bandit.LinUCB, armNames []string, cfg Config, log logrus.FieldLogger) *Driver {
	if cfg.Weights == (Weights{}) {
		cfg.Weights = DefaultWeights
	}
	if log == nil {
		log = logrus.New()
	}
	return &Driver{
		solver:     solver,
		controller: controller,
		armNames:   armNames,
		cfg:        cfg,
		log:        log,
	}
}

// Run drives the solver to completion, returning its final status and the
// per-epoch record list accumulated along the way.
func (d *Driver) Run() (sat.Status, []EpochRecord) {
	for {
		status, conflicted := d.solver.Step()
		if status != sat.Unresolved {
			return status, d.records
		}
		if !conflicted {
			continue
		}

		if d.current == nil {
			d.advance() // Init -> EpochActive, on the first conflict
			continue
		}

		d.tally++
		if d.tally >= d.cfg.EpochSize {
			d.advance() // EpochActive -> EpochBoundary -> EpochActive
		}
	}
}

// advance closes out the in-flight epoch (if any), recording its reward,
// then opens the next one: builds a fresh context, asks the controller to
// select an arm, installs it on the solver, and snapshots telemetry for the
// epoch that is about to run.
func (d *Driver) advance() {
	prevLearntCount := 0
	if d.current != nil {
		reward, avgLBD := d.closeEpoch(d.current)
		d.controller.Update(d.current.arm, d.current.context, reward)
		prevLearntCount = d.current.startLearntCount
		d.prevAvgLBD = avgLBD
	}

	ctx := BuildContext(d.solver, d.cfg.EpochSize, prevLearntCount)
	arm := d.controller.Select(ctx)
	d.solver.SetActiveHeuristic(arm)

	lbdSum, lbdCount := d.solver.CumulativeLBD()
	d.current = &epoch{
		index:            d.nextEpochIndex,
		arm:              arm,
		context:          ctx,
		startCounters:    d.solver.CountersSnapshot(),
		startLBDSum:      lbdSum,
		startLBDCount:    lbdCount,
		startLearntCount: d.solver.NumLearnts(),
	}
	d.nextEpochIndex++
	d.tally = 0

	d.log.WithFields(logrus.Fields{
		"epoch": d.current.index,
		"arm":   d.armNames[arm],
	}).Debug("epoch opened")
}

// closeEpoch computes the reward for e and appends its EpochRecord, using
// telemetry observed up to this call as the epoch's end snapshot.
func (d *Driver) closeEpoch(e *epoch) (reward float64, avgLBD float64) {
	end := d.solver.CountersSnapshot()
	deltaConflicts := end.Conflicts - e.startCounters.Conflicts
	deltaPropagations := end.Propagations - e.startCounters.Propagations
	deltaDecisions := end.Decisions - e.startCounters.Decisions

	lbdSum, lbdCount := d.solver.CumulativeLBD()
	if lbdCount > e.startLBDCount {
		avgLBD = float64(lbdSum-e.startLBDSum) / float64(lbdCount-e.startLBDCount)
	} else {
		avgLBD = d.prevAvgLBD // no clauses learnt this epoch; keep the delta term at 0
	}

	reward = computeReward(d.cfg.Weights, deltaConflicts, deltaPropagations, d.cfg.EpochSize, avgLBD, d.prevAvgLBD)

	d.records = append(d.records, EpochRecord{
		Index:        e.index,
		Arm:          d.armNames[e.arm],
		Context:      e.context,
		Reward:       reward,
		Conflicts:    deltaConflicts,
		Propagations: deltaPropagations,
		Decisions:    deltaDecisions,
		AverageLBD:   avgLBD,
	})

	d.log.WithFields(logrus.Fields{
		"epoch":  e.index,
		"arm":    d.armNames[e.arm],
		"reward": reward,
	}).Debug("epoch closed")

	return reward, avgLBD
}
