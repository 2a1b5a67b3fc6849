// Command banditsat drives the CDCL core from the command line (spec §6
// "CLI surface"), in either rl mode (LinUCB picks the heuristic per epoch)
// or baseline mode (a single fixed heuristic for the whole run).
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cdclab/banditsat/internal/bandit"
	"github.com/cdclab/banditsat/internal/baseline"
	"github.com/cdclab/banditsat/internal/dimacs"
	"github.com/cdclab/banditsat/internal/heuristics"
	"github.com/cdclab/banditsat/internal/rl"
	"github.com/cdclab/banditsat/internal/sat"
	"github.com/cdclab/banditsat/internal/stats"
)

const (
	exitSAT   = 10
	exitUNSAT = 20
)

var (
	flagMode        string
	flagHeuristic   string
	flagCNF         string
	flagGzip        bool
	flagEpoch       int64
	flagRestart     int64
	flagTimeout     int
	flagSeed        int64
	flagAlpha       float64
	flagCSV         string
	flagMetricsAddr string

	log = logrus.New()

	rootCmd = &cobra.Command{
		Use:   "banditsat",
		Short: "A CDCL SAT solver with a LinUCB-driven branching heuristic",
		RunE:  runSolve,
	}
)

func init() {
	rootCmd.Flags().StringVar(&flagMode, "mode", "rl", "solver mode: rl or baseline")
	rootCmd.Flags().StringVar(&flagHeuristic, "heuristic", heuristics.NameVSIDS, "branching heuristic (baseline mode only): vsids, jw, dlis, random")
	rootCmd.Flags().StringVar(&flagCNF, "cnf", "", "path to a DIMACS CNF instance (required)")
	rootCmd.Flags().BoolVar(&flagGzip, "gzip", false, "treat --cnf as gzip-compressed; auto-detected from a .gz suffix when unset")
	rootCmd.Flags().Int64Var(&flagEpoch, "epoch", 50, "epoch size in conflicts (rl mode)")
	rootCmd.Flags().Int64Var(&flagRestart, "restart", 200, "conflicts between restarts")
	rootCmd.Flags().IntVar(&flagTimeout, "timeout", 0, "wall-clock budget in seconds, 0 disables it")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "solver random seed")
	rootCmd.Flags().Float64Var(&flagAlpha, "alpha", bandit.DefaultAlpha, "LinUCB exploration constant (rl mode)")
	rootCmd.Flags().StringVar(&flagCSV, "csv", "", "optional path to write the per-epoch CSV log (rl mode)")
	rootCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "optional address to serve Prometheus metrics on, e.g. :9090")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(0)
	}
}

func runSolve(cmd *cobra.Command, args []string) error {
	if flagCNF == "" {
		return fmt.Errorf("--cnf is required")
	}

	if flagMetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(flagMetricsAddr, mux); err != nil {
				log.WithError(err).Warn("metrics server stopped")
			}
		}()
	}

	solver := sat.NewSolver(sat.Options{
		VarDecay:        0.95,
		RestartInterval: flagRestart,
		Seed:            flagSeed,
	})

	gzipped := flagGzip
	if !cmd.Flags().Changed("gzip") && strings.HasSuffix(flagCNF, ".gz") {
		gzipped = true
	}
	if err := dimacs.Load(flagCNF, gzipped, solver); err != nil {
		return fmt.Errorf("loading %q: %w", flagCNF, err)
	}
	log.WithFields(logrus.Fields{
		"variables": solver.NumVariables(),
		"clauses":   solver.NumConstraints(),
	}).Info("instance loaded")

	family := heuristics.NewFamily()
	activeIndex := 0
	if flagMode == "baseline" {
		for i, name := range heuristics.Names {
			if name == flagHeuristic {
				activeIndex = i
			}
		}
	}
	solver.SetHeuristics(family, activeIndex)

	result := make(chan stats.Statistics, 1)
	go func() {
		start := time.Now()
		status, epochs := solveOnce(solver)
		result <- stats.New(status, solver.CountersSnapshot(), time.Since(start).Seconds(), epochs)
	}()

	var s stats.Statistics
	if flagTimeout > 0 {
		select {
		case s = <-result:
		case <-time.After(time.Duration(flagTimeout) * time.Second):
			fmt.Fprintln(os.Stderr, "timeout: solve did not finish within the configured budget")
			os.Exit(0)
		}
	} else {
		s = <-result
	}

	log.WithFields(logrus.Fields{
		"status":       s.Status,
		"conflicts":    s.Conflicts,
		"decisions":    s.Decisions,
		"propagations": s.Propagations,
		"restarts":     s.Restarts,
		"elapsed":      s.ElapsedSeconds,
	}).Info("solve finished")

	if flagCSV != "" && len(s.Epochs) > 0 {
		f, err := os.Create(flagCSV)
		if err != nil {
			return fmt.Errorf("creating %q: %w", flagCSV, err)
		}
		defer f.Close()
		if err := stats.WriteEpochCSV(f, s.Epochs); err != nil {
			return fmt.Errorf("writing %q: %w", flagCSV, err)
		}
	}

	if flagMetricsAddr != "" {
		stats.Publish(s)
	}

	switch s.Status {
	case sat.Satisfiable:
		os.Exit(exitSAT)
	case sat.Unsatisfiable:
		os.Exit(exitUNSAT)
	}
	return nil
}

func solveOnce(solver *sat.Solver) (sat.Status, []rl.EpochRecord) {
	if flagMode == "baseline" {
		return baseline.Run(solver), nil
	}

	controller := bandit.New(bandit.Options{
		Dim:     rl.Dim,
		NumArms: len(heuristics.Names),
		Alpha:   flagAlpha,
	})
	driver := rl.NewDriver(solver, controller, heuristics.Names, rl.Config{
		EpochSize: flagEpoch,
	}, log)
	return driver.Run()
}
