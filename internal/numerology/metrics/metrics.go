package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for numerology analyses and rule-set loading.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	AnalysesTotal       *prometheus.CounterVec
	AnalysisDuration    prometheus.Histogram
	BatchSize           prometheus.Histogram
	RuleSetCacheHits    prometheus.Counter
	RuleSetCacheMisses  prometheus.Counter
	RuleSetLoadDuration *prometheus.HistogramVec
}

// New registers the numerology metrics with the default Prometheus registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the numerology metrics with reg. Tests pass a
// fresh prometheus.NewRegistry() so repeated construction does not collide.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		AnalysesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "numerus_analyses_total",
			Help: "Total number of analyses by system and outcome",
		}, []string{"system", "outcome"}),
		AnalysisDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "numerus_analysis_duration_seconds",
			Help:    "Duration of single analyses including rule-set lookup",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5},
		}),
		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "numerus_batch_size",
			Help:    "Number of items per batch analysis request",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		}),
		RuleSetCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "numerus_ruleset_cache_hits_total",
			Help: "Rule-set lookups served from the in-process cache",
		}),
		RuleSetCacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "numerus_ruleset_cache_misses_total",
			Help: "Rule-set lookups that required a load from the source",
		}),
		RuleSetLoadDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "numerus_ruleset_load_duration_seconds",
			Help:    "Duration of rule-set loads from the backing source",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"outcome"}),
	}
}

// ObserveAnalysis records one analysis outcome ("ok", "invalid_date",
// "unknown_system", "malformed_ruleset", "error").
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveAnalysis(system, outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.AnalysesTotal.WithLabelValues(system, outcome).Inc()
	m.AnalysisDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveBatchSize(n int) {
	if m == nil {
		return
	}
	m.BatchSize.Observe(float64(n))
}

func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.RuleSetCacheHits.Inc()
}

func (m *Metrics) RecordCacheMiss() {
	if m == nil {
		return
	}
	m.RuleSetCacheMisses.Inc()
}

// ObserveRuleSetLoad records a source load. Call with time.Now() at the start
// of the load.
func (m *Metrics) ObserveRuleSetLoad(outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.RuleSetLoadDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}
