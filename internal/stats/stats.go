// Package stats defines the result shape returned by a solve call and a CSV
// writer for the optional per-epoch log (spec §6).
package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"

	"github.com/cdclab/banditsat/internal/rl"
	"github.com/cdclab/banditsat/internal/sat"
)

// Statistics is the result of a solve call: status plus the counters and
// timing the external driver needs to report (spec §6). Epochs is nil for
// baseline solves.
type Statistics struct {
	RunID          string
	Status         sat.Status
	Conflicts      int64
	Decisions      int64
	Propagations   int64
	Restarts       int64
	ElapsedSeconds float64
	Epochs         []rl.EpochRecord
}

// New stamps a fresh run ID and assembles a Statistics value from a
// solver's final counters.
func New(status sat.Status, counters sat.Counters, elapsed float64, epochs []rl.EpochRecord) Statistics {
	return Statistics{
		RunID:          uuid.NewString(),
		Status:         status,
		Conflicts:      counters.Conflicts,
		Decisions:      counters.Decisions,
		Propagations:   counters.Propagations,
		Restarts:       counters.Restarts,
		ElapsedSeconds: elapsed,
		Epochs:         epochs,
	}
}

// WriteEpochCSV writes one row per epoch record to w: epoch_index, arm,
// reward, conflicts_in_epoch, propagations_in_epoch, decisions_in_epoch,
// avg_lbd_in_epoch, then each context-vector component (spec §6 "Optional
// per-epoch CSV log").
func WriteEpochCSV(w io.Writer, epochs []rl.EpochRecord) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{
		"epoch_index", "arm", "reward",
		"conflicts_in_epoch", "propagations_in_epoch", "decisions_in_epoch",
		"avg_lbd_in_epoch",
	}
	for i := range epochsContextDim(epochs) {
		header = append(header, fmt.Sprintf("context_%d", i))
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, e := range epochs {
		row := []string{
			strconv.Itoa(e.Index),
			e.Arm,
			strconv.FormatFloat(e.Reward, 'g', -1, 64),
			strconv.FormatInt(e.Conflicts, 10),
			strconv.FormatInt(e.Propagations, 10),
			strconv.FormatInt(e.Decisions, 10),
			strconv.FormatFloat(e.AverageLBD, 'g', -1, 64),
		}
		for _, c := range e.Context {
			row = append(row, strconv.FormatFloat(c, 'g', -1, 64))
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return writer.Error()
}

func epochsContextDim(epochs []rl.EpochRecord) int {
	if len(epochs) == 0 {
		return 0
	}
	return len(epochs[0].Context)
}
