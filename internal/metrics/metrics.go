// Package metrics exposes Prometheus counters for routing and model calls.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wellbeing"

// Metrics holds the collectors recorded by the chat core. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	stages       *prometheus.CounterVec
	modelCalls   *prometheus.CounterVec
	modelLatency prometheus.Histogram
	fallbacks    *prometheus.CounterVec
	translations *prometheus.CounterVec
	breakerState prometheus.Gauge
	persistFails prometheus.Counter
}

// New creates the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		stages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "route_stage_total",
			Help:      "Messages claimed by each routing stage.",
		}, []string{"stage"}),
		modelCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_calls_total",
			Help:      "Generative model calls by outcome status.",
		}, []string{"status"}),
		modelLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "model_call_seconds",
			Help:      "Latency of generative model calls.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30},
		}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_replies_total",
			Help:      "Rule-based fallback replies by matched rule.",
		}, []string{"reason"}),
		translations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "translations_total",
			Help:      "Reply translations by target language and outcome.",
		}, []string{"lang", "outcome"}),
		breakerState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_breaker_state",
			Help:      "Model circuit breaker state (0 closed, 1 half-open, 2 open).",
		}),
		persistFails: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persist_failures_total",
			Help:      "Chat history writes that failed.",
		}),
	}

	reg.MustRegister(
		m.stages,
		m.modelCalls,
		m.modelLatency,
		m.fallbacks,
		m.translations,
		m.breakerState,
		m.persistFails,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveStage counts one routed message.
func (m *Metrics) ObserveStage(stage string) {
	if m == nil {
		return
	}
	m.stages.WithLabelValues(stage).Inc()
}

// ObserveModelCall records the outcome and duration of a model call.
func (m *Metrics) ObserveModelCall(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.modelCalls.WithLabelValues(status).Inc()
	m.modelLatency.Observe(d.Seconds())
}

// ObserveFallback counts one rule-based fallback reply.
func (m *Metrics) ObserveFallback(reason string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(reason).Inc()
}

// ObserveTranslation counts a translation attempt; outcome is "ok" or "failed".
func (m *Metrics) ObserveTranslation(lang, outcome string) {
	if m == nil {
		return
	}
	m.translations.WithLabelValues(lang, outcome).Inc()
}

// SetBreakerState records the numeric breaker state.
func (m *Metrics) SetBreakerState(state int) {
	if m == nil {
		return
	}
	m.breakerState.Set(float64(state))
}

// ObservePersistFailure counts a failed history write.
func (m *Metrics) ObservePersistFailure() {
	if m == nil {
		return
	}
	m.persistFails.Inc()
}
