package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hh_matcher"

// Metrics groups the collectors of the matching pipeline. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	LLMCalls       *prometheus.CounterVec
	ParseFallbacks prometheus.Counter
	CacheRequests  *prometheus.CounterVec
	SharedFlights  prometheus.Counter
	MatchDuration  prometheus.Histogram
}

// New registers the collectors in reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		LLMCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "llm_calls_total",
				Help:      "Total number of language model calls by outcome",
			},
			[]string{"model", "outcome"},
		),
		ParseFallbacks: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "parse_fallbacks_total",
				Help:      "Total number of model replies replaced by the neutral analysis",
			},
		),
		CacheRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_requests_total",
				Help:      "Total number of match cache lookups by result",
			},
			[]string{"result"},
		),
		SharedFlights: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "singleflight_shared_total",
				Help:      "Total number of callers that joined an in-flight match computation",
			},
		),
		MatchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "match_duration_seconds",
				Help:      "Duration of a full match computation in seconds",
				Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 20, 40, 60, 120},
			},
		),
	}
}

func (m *Metrics) LLMCall(model string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.LLMCalls.WithLabelValues(model, outcome).Inc()
}

func (m *Metrics) ParseFallback() {
	if m == nil {
		return
	}
	m.ParseFallbacks.Inc()
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.CacheRequests.WithLabelValues("hit").Inc()
}

func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.CacheRequests.WithLabelValues("miss").Inc()
}

func (m *Metrics) SharedFlight() {
	if m == nil {
		return
	}
	m.SharedFlights.Inc()
}

func (m *Metrics) ObserveMatch(d time.Duration) {
	if m == nil {
		return
	}
	m.MatchDuration.Observe(d.Seconds())
}

// WriteTextfile dumps every metric gathered by g in the node exporter
// textfile format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
