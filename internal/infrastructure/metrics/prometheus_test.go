package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

func TestObserve(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Observe(entities.Event{Type: entities.EventCacheMiss})
	m.Observe(entities.Event{Type: entities.EventCacheSave})
	m.Observe(entities.Event{Type: entities.EventCacheHit})
	m.Observe(entities.Event{Type: entities.EventCacheHit})
	m.Observe(entities.Event{Type: entities.EventRetryAttempt, ErrorKind: entities.KindRateLimited})
	m.Observe(entities.Event{Type: entities.EventRetryAttempt})
	m.Observe(entities.Event{Type: entities.EventRepairAttempted, Success: true})
	m.Observe(entities.Event{Type: entities.EventRepairAttempted})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheEvents.WithLabelValues("cacheHit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheEvents.WithLabelValues("cacheMiss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.retryAttempts.WithLabelValues("rate_limited")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.retryAttempts.WithLabelValues("unknown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.repairAttempts.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.repairAttempts.WithLabelValues("failure")))
}

func TestRunMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRun(entities.VariantAnalysis, "generated", 1500*time.Millisecond)
	m.ObserveRun(entities.VariantAnalysis, "cache_hit", time.Millisecond)
	m.ObserveTranscriptSize(4096)
	m.RateLimited("/v1/extract")
	m.EventDropped()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.processed.WithLabelValues("analyze", "generated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rateLimited.WithLabelValues("/v1/extract")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventsDropped))

	expected := `
# HELP meeting_insights_meetings_processed_total Pipeline runs by variant and outcome.
# TYPE meeting_insights_meetings_processed_total counter
meeting_insights_meetings_processed_total{outcome="cache_hit",variant="analyze"} 1
meeting_insights_meetings_processed_total{outcome="generated",variant="analyze"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "meeting_insights_meetings_processed_total"))

	count, err := testutil.GatherAndCount(reg, "meeting_insights_pipeline_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
