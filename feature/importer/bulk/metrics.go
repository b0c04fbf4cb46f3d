package bulk

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type metricsBulk struct {
	once sync.Once

	rows         *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
	relaxed      prometheus.Gauge
	phase        *prometheus.HistogramVec
}

var bulkMetrics metricsBulk

func (m *metricsBulk) init() {
	m.once.Do(func() {
		m.rows = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mccraft_bulk_rows_written_total",
			Help: "Rows written by the bulk loader, by table",
		}, []string{"table"})
		m.cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mccraft_bulk_item_cache_lookups_total",
			Help: "Item id lookups, by cache result",
		}, []string{"result"})
		m.relaxed = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mccraft_bulk_constraints_relaxed",
			Help: "1 while foreign keys and indexes are dropped for a bulk insert",
		})
		m.phase = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mccraft_bulk_phase_seconds",
			Help:    "Duration of bulk loader phases",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300, 900},
		}, []string{"phase"})

		prometheus.MustRegister(m.rows, m.cacheLookups, m.relaxed, m.phase)
	})
}

func recordRows(table string, n int64) {
	bulkMetrics.init()
	bulkMetrics.rows.WithLabelValues(table).Add(float64(n))
}

func recordCacheLookup(hit bool) {
	bulkMetrics.init()
	result := "miss"
	if hit {
		result = "hit"
	}
	bulkMetrics.cacheLookups.WithLabelValues(result).Inc()
}

func recordRelaxed(on bool) {
	bulkMetrics.init()
	if on {
		bulkMetrics.relaxed.Set(1)
	} else {
		bulkMetrics.relaxed.Set(0)
	}
}

func observePhase(phase string, seconds float64) {
	bulkMetrics.init()
	bulkMetrics.phase.WithLabelValues(phase).Observe(seconds)
}
