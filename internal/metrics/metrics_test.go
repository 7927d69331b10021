package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ObserveStage("greeting")
	m.ObserveStage("greeting")
	m.ObserveStage("crisis")
	m.ObserveModelCall("ok", 300*time.Millisecond)
	m.ObserveFallback("stress")
	m.ObserveTranslation("es", "failed")
	m.SetBreakerState(2)
	m.ObservePersistFailure()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.stages.WithLabelValues("greeting")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.stages.WithLabelValues("crisis")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.modelCalls.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fallbacks.WithLabelValues("stress")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.translations.WithLabelValues("es", "failed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.breakerState))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.persistFails))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveStage("greeting")
		m.ObserveModelCall("failed", time.Second)
		m.ObserveFallback("generic")
		m.ObserveTranslation("fr", "ok")
		m.SetBreakerState(1)
		m.ObservePersistFailure()
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveStage("doctor")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `wellbeing_route_stage_total{stage="doctor"} 1`))
	assert.Contains(t, body, "go_goroutines")
}
