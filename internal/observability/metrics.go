package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the ETL pipelines.
type Metrics struct {
	DocumentsProcessed prometheus.Counter
	DocumentsSkipped   prometheus.Counter
	RecordsLoaded      *prometheus.CounterVec // labels: pipeline={regional,facility}
	RecordsFailed      *prometheus.CounterVec // labels: pipeline={regional,facility}
	PipelineRunning    prometheus.Gauge

	// Store metrics.
	UpsertDuration *prometheus.HistogramVec // labels: table

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		DocumentsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "waste_etl",
			Name:      "documents_processed_total",
			Help:      "Total source spreadsheets fully processed.",
		}),
		DocumentsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "waste_etl",
			Name:      "documents_skipped_total",
			Help:      "Total source spreadsheets skipped for unusable headers or missing total rows.",
		}),
		RecordsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "waste_etl",
			Name:      "records_loaded_total",
			Help:      "Records upserted into the store by pipeline.",
		}, []string{"pipeline"}),
		RecordsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "waste_etl",
			Name:      "records_failed_total",
			Help:      "Records that failed to parse or load by pipeline.",
		}, []string{"pipeline"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "waste_etl",
			Name:      "pipeline_running",
			Help:      "1 when a pipeline is active, 0 when shut down.",
		}),
		UpsertDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "waste_etl",
			Name:      "upsert_duration_seconds",
			Help:      "Duration of one store upsert by table.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}, []string{"table"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "waste_etl",
			Name:      "geocode_requests_total",
			Help:      "Geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "waste_etl",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "waste_etl",
			Name:      "geocode_api_duration_seconds",
			Help:      "Kakao API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}

	prometheus.MustRegister(
		m.DocumentsProcessed,
		m.DocumentsSkipped,
		m.RecordsLoaded,
		m.RecordsFailed,
		m.PipelineRunning,
		m.UpsertDuration,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		DocumentsProcessed: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "waste_etl", Name: "documents_processed_total"}),
		DocumentsSkipped:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "waste_etl", Name: "documents_skipped_total"}),
		RecordsLoaded:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "waste_etl", Name: "records_loaded_total"}, []string{"pipeline"}),
		RecordsFailed:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "waste_etl", Name: "records_failed_total"}, []string{"pipeline"}),
		PipelineRunning:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "waste_etl", Name: "pipeline_running"}),
		UpsertDuration:     prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "waste_etl", Name: "upsert_duration_seconds"}, []string{"table"}),
		GeocodeRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "waste_etl", Name: "geocode_requests_total"}, []string{"outcome"}),
		GeocodeCache:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "waste_etl", Name: "geocode_cache_total"}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "waste_etl", Name: "geocode_api_duration_seconds"}),
	}
}
