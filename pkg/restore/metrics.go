package restore

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recovery polling metrics
	pollCyclesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "esadmctl_restore_poll_cycles_total",
			Help: "Total number of shard recovery poll cycles",
		},
	)

	waitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "esadmctl_restore_wait_duration_seconds",
			Help:    "Time spent waiting for shard recovery to complete",
			Buckets: []float64{10, 30, 60, 300, 600, 1800},
		},
	)

	restoreSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "esadmctl_restore_submitted_total",
			Help: "Total number of restore requests submitted",
		},
		[]string{"status"}, // accepted or error
	)
)
