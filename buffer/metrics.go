package buffer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// invertersInserted counts inverters added by the insertion engine
	invertersInserted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rcbuf_inverters_inserted_total",
		Help: "Total inverters inserted by reason",
	}, []string{"reason"}) // "stage" or "polarity"

	infeasibleStages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rcbuf_infeasible_stages_total",
		Help: "Total stage loops stopped because no insertion point exists",
	})

	invertersPerRun = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rcbuf_inverters_per_run",
		Help:    "Inverters inserted per insertion run",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12), // 1 to 2048
	})

	insertDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rcbuf_insert_duration_seconds",
		Help:    "Buffer insertion duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10us to ~2.6s
	})
)
