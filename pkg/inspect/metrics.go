package inspect

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Overview collection metrics
	overviewCollectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "esadmctl_overview_collection_duration_seconds",
			Help:    "Time taken to collect a complete cluster overview",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	overviewCollectionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "esadmctl_overview_collection_total",
			Help: "Total number of overview collection attempts",
		},
		[]string{"status"}, // success or error
	)

	overviewCollectorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "esadmctl_overview_collector_duration_seconds",
			Help:    "Time taken by individual section collectors",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"collector"}, // metadata, health, nodes, indices, shards, recovery
	)

	overviewSectionCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "esadmctl_overview_sections",
			Help: "Number of sections in the last collected overview",
		},
	)
)
