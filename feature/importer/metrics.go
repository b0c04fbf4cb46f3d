package importer

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type metricsImport struct {
	once sync.Once

	files      *prometheus.CounterVec
	recipes    prometheus.Counter
	expansions prometheus.Counter
	tooltips   prometheus.Counter
	duration   prometheus.Histogram
}

var importMetrics metricsImport

func (m *metricsImport) init() {
	m.once.Do(func() {
		m.files = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mccraft_import_files_total",
			Help: "Export files seen, by outcome",
		}, []string{"outcome"})
		m.recipes = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mccraft_import_recipes_staged_total",
			Help: "Recipes committed to the staging database",
		})
		m.expansions = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mccraft_import_covariant_expansions_total",
			Help: "Raw recipes expanded into parallel variants",
		})
		m.tooltips = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mccraft_import_tooltips_total",
			Help: "Tooltip names read",
		})
		m.duration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mccraft_import_ingest_seconds",
			Help:    "Duration of reading and normalizing an export folder",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
		})

		prometheus.MustRegister(m.files, m.recipes, m.expansions, m.tooltips, m.duration)
	})
}

func recordFile(outcome string) {
	importMetrics.init()
	importMetrics.files.WithLabelValues(outcome).Inc()
}

func recordStaged(recipes, expansions int) {
	importMetrics.init()
	importMetrics.recipes.Add(float64(recipes))
	importMetrics.expansions.Add(float64(expansions))
}

func recordTooltips(n int) {
	importMetrics.init()
	importMetrics.tooltips.Add(float64(n))
}

func observeIngest(seconds float64) {
	importMetrics.init()
	importMetrics.duration.Observe(seconds)
}
