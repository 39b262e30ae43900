// Package metrics exposes Prometheus instrumentation for the simulation
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SimulationsTotal counts completed simulations by resulting label.
	SimulationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agrishield_simulations_total",
		Help: "Completed scenario simulations by risk label.",
	}, []string{"label"})

	// SimulationErrors counts failed simulation requests by error kind.
	SimulationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agrishield_simulation_errors_total",
		Help: "Failed scenario simulations by error kind.",
	}, []string{"kind"})

	// SimulationDuration tracks end-to-end simulation latency.
	SimulationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "agrishield_simulation_duration_seconds",
		Help:    "End-to-end duration of one scenario simulation.",
		Buckets: prometheus.DefBuckets,
	})
)
