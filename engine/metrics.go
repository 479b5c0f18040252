package engine

import "github.com/prometheus/client_golang/prometheus"

// metrics holds the Driver's prometheus instrumentation, grounded on the
// teacher's differ.Metrics/NewMetrics pattern: counters and a duration
// histogram registered against a caller-supplied Registerer.
type metrics struct {
	updatesProcessed prometheus.Counter
	cyclesTouched    prometheus.Counter
	profitableFound  prometheus.Counter
	updateDuration   prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		updatesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arb_engine_updates_processed_total",
			Help: "Total number of reserve-update batches applied to the world.",
		}),
		cyclesTouched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arb_engine_cycles_touched_total",
			Help: "Total number of cycles rebuilt across all World.Update calls.",
		}),
		profitableFound: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arb_engine_profitable_cycles_total",
			Help: "Total number of profitable cycles found across all World.Update calls.",
		}),
		updateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "arb_engine_update_duration_seconds",
			Help:    "Time spent applying a single reserve-update batch to the world.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.updatesProcessed, m.cyclesTouched, m.profitableFound, m.updateDuration)
	return m
}
