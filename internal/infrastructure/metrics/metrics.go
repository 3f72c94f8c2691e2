package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/salesledger/internal/domain"
)

// Metrics holds the domain Prometheus metrics. It implements usecase.Recorder.
type Metrics struct {
	// Ledger metrics
	AggregatesTotal   *prometheus.CounterVec
	AggregateDuration *prometheus.HistogramVec

	// Report metrics
	ReportsGenerated *prometheus.CounterVec

	// Sale metrics
	SalesRecorded *prometheus.CounterVec

	// Cache metrics
	CacheLookups *prometheus.CounterVec
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AggregatesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "salesledger_aggregates_total",
				Help: "Total ledger aggregations by query variant",
			},
			[]string{"variant"},
		),
		AggregateDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "salesledger_aggregate_duration_seconds",
				Help:    "Duration of ledger aggregations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"variant"},
		),

		ReportsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "salesledger_reports_generated_total",
				Help: "Total sales reports rendered by scope",
			},
			[]string{"scope"},
		),

		SalesRecorded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "salesledger_sales_recorded_total",
				Help: "Total sale entries recorded by kind",
			},
			[]string{"kind"},
		),

		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "salesledger_cache_lookups_total",
				Help: "Client cache lookups by result",
			},
			[]string{"result"},
		),
	}
}

// AggregateCompleted records one aggregation.
func (m *Metrics) AggregateCompleted(variant domain.QueryVariant, elapsed time.Duration) {
	m.AggregatesTotal.WithLabelValues(variant.String()).Inc()
	m.AggregateDuration.WithLabelValues(variant.String()).Observe(elapsed.Seconds())
}

// ReportGenerated records one rendered report.
func (m *Metrics) ReportGenerated(scope string) {
	m.ReportsGenerated.WithLabelValues(scope).Inc()
}

// SaleRecorded records one new sale or return.
func (m *Metrics) SaleRecorded(isReturn bool) {
	kind := "sale"
	if isReturn {
		kind = "return"
	}
	m.SalesRecorded.WithLabelValues(kind).Inc()
}

// CacheHit records a cache lookup result.
func (m *Metrics) CacheHit(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}
