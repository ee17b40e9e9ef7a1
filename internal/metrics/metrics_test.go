package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.LLMCall("model-a", nil)
	m.LLMCall("model-a", errors.New("boom"))
	m.LLMCall("model-a", nil)
	m.ParseFallback()
	m.CacheHit()
	m.CacheMiss()
	m.CacheMiss()
	m.SharedFlight()
	m.ObserveMatch(1500 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.LLMCalls.WithLabelValues("model-a", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LLMCalls.WithLabelValues("model-a", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ParseFallbacks))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SharedFlights))
	assert.Equal(t, 1, testutil.CollectAndCount(m.MatchDuration))

	expected := `
# HELP hh_matcher_parse_fallbacks_total Total number of model replies replaced by the neutral analysis
# TYPE hh_matcher_parse_fallbacks_total counter
hh_matcher_parse_fallbacks_total 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "hh_matcher_parse_fallbacks_total"))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.LLMCall("x", nil)
		m.ParseFallback()
		m.CacheHit()
		m.CacheMiss()
		m.SharedFlight()
		m.ObserveMatch(time.Second)
	})
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.CacheHit()

	path := filepath.Join(t.TempDir(), "hh_matcher.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `hh_matcher_cache_requests_total{result="hit"} 1`)
}
