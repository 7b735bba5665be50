package monitoring

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaunchCounters(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.LaunchStarted()
	m.LaunchStarted()
	m.LaunchStarted()
	m.LaunchFinished(OutcomeSuccess, "")
	m.LaunchFinished(OutcomeFailed, "missing_library")
	m.LaunchFinished(OutcomeInterrupted, "interrupted")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LaunchesTotal.WithLabelValues(OutcomeSuccess, "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LaunchesTotal.WithLabelValues(OutcomeFailed, "missing_library")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.LaunchesActive))

	snap := m.GetSnapshot()
	assert.Equal(t, int64(3), snap.Started)
	assert.Equal(t, int64(1), snap.Succeeded)
	assert.Equal(t, int64(1), snap.Failed)
	assert.Equal(t, int64(1), snap.Interrupted)
	assert.Equal(t, int64(0), snap.Active)
}

func TestFileCounters(t *testing.T) {
	m := NewMetrics(nil)

	m.FilesExtracted(4)
	m.FilesExtracted(0)
	m.AssetsMaterialized(10)

	assert.Equal(t, 4.0, testutil.ToFloat64(m.Extracted))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.Materialized))
	assert.Equal(t, int64(4), m.GetSnapshot().Extracted)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.LaunchStarted()
		m.ObserveStage("spawning", time.Millisecond)
		m.FilesExtracted(1)
		m.AssetsMaterialized(1)
		m.LaunchFinished(OutcomeSuccess, "")
		NewTimer(m, "spawning").Stop()
	})
}

func TestSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics(nil)
		NewMetrics(nil)
	})
}

func TestHandler(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.ObserveStage("resolving_libraries", 20*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "launcher_stage_duration_seconds"))
	assert.True(t, strings.Contains(body, "launcher_uptime_seconds"))
}
