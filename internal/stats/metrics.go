package stats

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes a solve's counters as a Prometheus gauge vec, served by
// the CLI's optional --metrics-addr (spec §6, "external interfaces").
var Metrics = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: "banditsat",
		Name:      "solver_counter",
		Help:      "Final value of a solver search counter for the finished run.",
	},
	[]string{"counter"},
)

func init() {
	prometheus.MustRegister(Metrics)
}

// Publish pushes a finished run's counters into Metrics.
func Publish(s Statistics) {
	Metrics.WithLabelValues("conflicts").Set(float64(s.Conflicts))
	Metrics.WithLabelValues("decisions").Set(float64(s.Decisions))
	Metrics.WithLabelValues("propagations").Set(float64(s.Propagations))
	Metrics.WithLabelValues("restarts").Set(float64(s.Restarts))
	Metrics.WithLabelValues("elapsed_seconds").Set(s.ElapsedSeconds)
}
