package cpufreq

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	probeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mce_cpufreq_probe_total",
			Help: "Control directory candidates by discovery outcome",
		},
		[]string{"result"}, // included, excluded, filtered, duplicate, unresolved
	)

	loadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mce_cpufreq_load_duration_seconds",
			Help:    "Time taken to read the enumeration files of a control directory",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1},
		},
	)

	loadErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mce_cpufreq_load_errors_total",
			Help: "Control directories whose enumeration files could not be read",
		},
	)
)
