package httpapi

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/riskibarqy/sportsbet-api/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	header := rec.Header().Get(requestIDHeader)
	_, err := uuid.Parse(header)
	require.NoError(t, err)
	assert.Equal(t, header, seen)
}

func TestRequestID_KeepsInboundValue(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "edge-1234")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "edge-1234", rec.Header().Get(requestIDHeader))
}

func TestRequestID_ReplacesInvalidInboundValue(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "has spaces in it")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.NotEqual(t, "has spaces in it", rec.Header().Get(requestIDHeader))
}

type recordingHTTPMetrics struct {
	mu     sync.Mutex
	routes []string
	codes  []int
}

func (m *recordingHTTPMetrics) ObserveHTTPRequest(route string, status int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes = append(m.routes, route)
	m.codes = append(m.codes, status)
}

func TestRequestMetrics_LabelsByPattern(t *testing.T) {
	mux := http.NewServeMux()
	handle(mux, "GET /api/items/{id}", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	metrics := &recordingHTTPMetrics{}
	handler := RequestMetrics(metrics, CORS([]string{"*"}, mux))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/items/42", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, []string{"GET /api/items/{id}", unmatchedRoute}, metrics.routes)
	assert.Equal(t, []int{http.StatusAccepted, http.StatusNotFound}, metrics.codes)
}

func TestRecoverPanic_WritesInternalError(t *testing.T) {
	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/odds", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, internalErrorMessage, decodeBody(t, rec)["error"])
}

func TestNormalizeIP(t *testing.T) {
	assert.Equal(t, "203.0.113.7", normalizeIP("203.0.113.7, 10.0.0.1"))
	assert.Equal(t, "192.0.2.1", normalizeIP("192.0.2.1:5123"))
	assert.Equal(t, "", normalizeIP("not-an-ip"))
}
