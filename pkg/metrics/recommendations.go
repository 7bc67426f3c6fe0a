package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RecommendationMetrics records Recommendation Source fetch outcomes.
type RecommendationMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	stale    prometheus.Counter
}

// NewRecommendationMetrics registers the fetch metrics on the provided registerer.
func NewRecommendationMetrics(reg prometheus.Registerer) *RecommendationMetrics {
	if reg == nil {
		return &RecommendationMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "recommendation_fetch_duration_seconds",
		Help:    "Duration of recommendation source fetches in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"event_type"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommendation_fetch_success",
		Help: "Successful recommendation source fetches.",
	}, []string{"event_type"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommendation_fetch_failure",
		Help: "Failed recommendation source fetches.",
	}, []string{"event_type"})
	stale := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommendation_fetch_stale_discarded",
		Help: "Recommendation responses discarded because a newer fetch superseded them.",
	})
	reg.MustRegister(duration, success, failure, stale)
	return &RecommendationMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		stale:    stale,
	}
}

// ObserveDuration records the fetch duration for an event type.
func (m *RecommendationMetrics) ObserveDuration(eventType string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(eventType)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for an event type.
func (m *RecommendationMetrics) IncSuccess(eventType string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(eventType)).Inc()
}

// IncFailure increments the failure counter for an event type.
func (m *RecommendationMetrics) IncFailure(eventType string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(eventType)).Inc()
}

// IncStaleDiscard counts a response thrown away by the generation guard.
func (m *RecommendationMetrics) IncStaleDiscard() {
	if m == nil || m.stale == nil {
		return
	}
	m.stale.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
