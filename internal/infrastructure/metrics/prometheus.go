package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

const namespace = "meeting_insights"

// Metrics holds the service collectors. It observes pipeline events and
// records per-run measurements.
type Metrics struct {
	cacheEvents    *prometheus.CounterVec
	retryAttempts  *prometheus.CounterVec
	repairAttempts *prometheus.CounterVec
	processed      *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	transcriptSize prometheus.Histogram
	rateLimited    *prometheus.CounterVec
	eventsDropped  prometheus.Counter
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_events_total",
			Help:      "Result cache events by type.",
		}, []string{"type"}),
		retryAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_retry_attempts_total",
			Help:      "Generator retries by error kind.",
		}, []string{"error_kind"}),
		repairAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_repair_attempts_total",
			Help:      "Repair attempts by status.",
		}, []string{"status"}),
		processed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "meetings_processed_total",
			Help:      "Pipeline runs by variant and outcome.",
		}, []string{"variant", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Pipeline run duration.",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		}, []string{"variant"}),
		transcriptSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transcript_size_bytes",
			Help:      "Size of submitted transcripts.",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
		}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_exceeded_total",
			Help:      "Requests rejected by throttling.",
		}, []string{"endpoint"}),
		eventsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dropped_total",
			Help:      "Pipeline events dropped because the dispatcher buffer was full.",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.cacheEvents,
			m.retryAttempts,
			m.repairAttempts,
			m.processed,
			m.duration,
			m.transcriptSize,
			m.rateLimited,
			m.eventsDropped,
		)
	}
	return m
}

// Observe updates counters from a pipeline event
func (m *Metrics) Observe(e entities.Event) {
	switch e.Type {
	case entities.EventCacheHit, entities.EventCacheMiss, entities.EventCacheSave, entities.EventCacheExpire:
		m.cacheEvents.WithLabelValues(string(e.Type)).Inc()
	case entities.EventRetryAttempt:
		kind := string(e.ErrorKind)
		if kind == "" {
			kind = "unknown"
		}
		m.retryAttempts.WithLabelValues(kind).Inc()
	case entities.EventRepairAttempted:
		status := "failure"
		if e.Success {
			status = "success"
		}
		m.repairAttempts.WithLabelValues(status).Inc()
	}
}

// ObserveRun records a finished pipeline run
func (m *Metrics) ObserveRun(variant entities.Variant, outcome string, d time.Duration) {
	m.processed.WithLabelValues(string(variant), outcome).Inc()
	m.duration.WithLabelValues(string(variant)).Observe(d.Seconds())
}

// ObserveTranscriptSize records the byte length of a transcript
func (m *Metrics) ObserveTranscriptSize(bytes int) {
	m.transcriptSize.Observe(float64(bytes))
}

// RateLimited counts a throttled request
func (m *Metrics) RateLimited(endpoint string) {
	m.rateLimited.WithLabelValues(endpoint).Inc()
}

// EventDropped counts an event the dispatcher could not buffer
func (m *Metrics) EventDropped() {
	m.eventsDropped.Inc()
}
