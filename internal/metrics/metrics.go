package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ImportRunsTotal tracks import runs by outcome status
	ImportRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lnregistry_import_runs_total",
			Help: "Total number of node import runs by status",
		},
		[]string{"status"},
	)

	// NodesImportedTotal tracks the total number of node records written
	NodesImportedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lnregistry_nodes_imported_total",
			Help: "Total number of node records upserted across all imports",
		},
	)

	// ImportDuration tracks the duration of import runs in seconds
	ImportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lnregistry_import_duration_seconds",
			Help:    "Duration of node import runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	// LastImportUnix tracks the completion time of the last successful import
	LastImportUnix = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lnregistry_last_import_unix",
			Help: "Unix timestamp of the last successful node import",
		},
	)
)

// RecordImportSuccess records a completed import run
func RecordImportSuccess(nodeCount int, durationSeconds float64, completedAtUnix int64) {
	ImportRunsTotal.WithLabelValues("success").Inc()
	NodesImportedTotal.Add(float64(nodeCount))
	ImportDuration.Observe(durationSeconds)
	LastImportUnix.Set(float64(completedAtUnix))
}

// RecordImportFailure records a failed import run
func RecordImportFailure(durationSeconds float64) {
	ImportRunsTotal.WithLabelValues("failure").Inc()
	ImportDuration.Observe(durationSeconds)
}
