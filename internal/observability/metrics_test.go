package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountsObservations(t *testing.T) {
	m := NewMetrics()

	m.ObserveProviderRequest("sportmonks", "livescores/inplay", "success", 120*time.Millisecond)
	m.ObserveProviderRequest("sportmonks", "livescores/inplay", "success", 80*time.Millisecond)
	m.ObserveProviderRequest("the-odds-api", "sports/odds", "error", time.Second)
	m.ObserveHTTPRequest("GET /api/odds", http.StatusOK, 5*time.Millisecond)
	m.ObserveCacheLookup("hit")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.providerRequests.WithLabelValues("sportmonks", "livescores/inplay", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.providerRequests.WithLabelValues("the-odds-api", "sports/odds", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET /api/odds", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")))
}

func TestMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveProviderRequest("sportmonks", "fixtures", "success", time.Millisecond)
	m.ObserveHTTPRequest("GET /healthz", http.StatusOK, time.Millisecond)
	m.ObserveCacheLookup("miss")
}

func TestMetrics_HandlerExposesCollectors(t *testing.T) {
	m := NewMetrics()
	m.ObserveCacheLookup("miss")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `cache_lookups_total{result="miss"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
