package govconf

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	assembleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mce_govconf_assemble_duration_seconds",
			Help:    "Time taken to load directories and assemble a governor config",
			Buckets: []float64{0.001, 0.01, 0.1, 1, 5},
		},
	)

	assembleTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mce_govconf_assemble_total",
			Help: "Total number of governor config assembly attempts",
		},
		[]string{"status"}, // success or error
	)

	settingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mce_govconf_settings_total",
			Help: "Settings written to governor configs",
		},
		[]string{"kind"}, // governor, max_frequency, min_frequency
	)

	governorMissTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mce_govconf_governor_miss_total",
			Help: "Directory and scenario pairs where no preferred governor was available",
		},
		[]string{"scenario"},
	)
)
