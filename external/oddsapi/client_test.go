package oddsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/sportsbet-api/internal/domain/odds"
	"github.com/riskibarqy/sportsbet-api/internal/platform/logging"
	"github.com/riskibarqy/sportsbet-api/internal/platform/resilience"
	"github.com/riskibarqy/sportsbet-api/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eplOddsBody = `[{
	"id": "e912304de2b2ce35b473ce2ecd3d1502",
	"sport_key": "soccer_epl",
	"sport_title": "EPL",
	"commence_time": "2024-08-16T19:00:00Z",
	"home_team": "Manchester United",
	"away_team": "Fulham",
	"bookmakers": [{
		"key": "williamhill",
		"title": "William Hill",
		"last_update": "2024-08-15T10:01:12Z",
		"markets": [{"key": "h2h", "outcomes": [
			{"name": "Manchester United", "price": 1.62},
			{"name": "Fulham", "price": 5.25},
			{"name": "Draw", "price": 4.2}
		]}, {"key": "totals", "outcomes": [
			{"name": "Over", "price": 1.8, "point": 2.5},
			{"name": "Under", "price": 2.0, "point": 2.5}
		]}]
	}]
}]`

func newTestClient(t *testing.T, handler http.HandlerFunc, mutate ...func(*ClientConfig)) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := ClientConfig{
		BaseURL: srv.URL,
		APIKey:  "odds-key",
		Timeout: 2 * time.Second,
		Logger:  logging.NewNop(),
	}
	for _, fn := range mutate {
		fn(&cfg)
	}
	return NewClient(cfg)
}

func TestFetchOdds_DecodesEventsAndQuota(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sports/soccer_epl/odds", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "odds-key", q.Get("apiKey"))
		assert.Equal(t, "uk", q.Get("regions"))
		assert.Equal(t, "h2h,totals", q.Get("markets"))
		assert.Equal(t, "decimal", q.Get("oddsFormat"))

		w.Header().Set("x-requests-remaining", "480")
		w.Header().Set("x-requests-used", "20")
		w.Header().Set("x-requests-last", "2")
		_, _ = w.Write([]byte(eplOddsBody))
	})

	events, quota, err := client.FetchOdds(context.Background(), odds.Query{SportKey: "soccer_epl", Markets: "h2h,totals"})
	require.NoError(t, err)
	require.Len(t, events, 1)

	event := events[0]
	assert.Equal(t, "Manchester United", event.HomeTeam)
	require.Len(t, event.Bookmakers, 1)
	require.Len(t, event.Bookmakers[0].Markets, 2)
	totals := event.Bookmakers[0].Markets[1]
	require.NotNil(t, totals.Outcomes[0].Point)
	assert.Equal(t, 2.5, *totals.Outcomes[0].Point)

	require.NotNil(t, quota.Remaining)
	assert.Equal(t, 480, *quota.Remaining)
	assert.Equal(t, 20, *quota.Used)
	assert.Equal(t, 2, *quota.Last)
}

func TestFetchOdds_MissingKeyIsNotConfigured(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}, func(cfg *ClientConfig) {
		cfg.APIKey = ""
	})

	_, _, err := client.FetchOdds(context.Background(), odds.Query{SportKey: "soccer_epl"})
	require.ErrorIs(t, err, usecase.ErrNotConfigured)
	assert.Zero(t, calls.Load())
}

func TestFetchOdds_RequiresSportKey(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, _, err := client.FetchOdds(context.Background(), odds.Query{})
	require.ErrorIs(t, err, usecase.ErrInvalidInput)
}

func TestFetchOdds_ProviderErrorCarriesMessage(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"Unknown sport. Get a list of valid sports from /sports","error_code":"UNKNOWN_SPORT"}`))
	})

	_, _, err := client.FetchOdds(context.Background(), odds.Query{SportKey: "soccer_xyz"})

	var providerErr *usecase.ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.Equal(t, http.StatusUnprocessableEntity, providerErr.StatusCode)
	assert.Contains(t, providerErr.Message, "Unknown sport")
	assert.NotContains(t, err.Error(), "odds-key")
}

func TestFetchOdds_TransientFailuresOpenBreaker(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}, func(cfg *ClientConfig) {
		cfg.CircuitBreaker = resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: time.Minute, HalfOpenMaxReq: 1}
	})

	for i := 0; i < 2; i++ {
		_, _, err := client.FetchOdds(context.Background(), odds.Query{SportKey: "soccer_epl"})
		require.Error(t, err)
	}
	_, _, err := client.FetchOdds(context.Background(), odds.Query{SportKey: "soccer_epl"})
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	assert.EqualValues(t, 2, calls.Load())
}

func TestFetchSports(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sports", r.URL.Path)
		_, _ = w.Write([]byte(`[{"key":"soccer_epl","group":"Soccer","title":"EPL","description":"English Premier League","active":true,"has_outrights":false}]`))
	})

	sports, _, err := client.FetchSports(context.Background())
	require.NoError(t, err)
	require.Len(t, sports, 1)
	assert.Equal(t, odds.Sport{Key: "soccer_epl", Group: "Soccer", Title: "EPL", Description: "English Premier League", Active: true}, sports[0])
}

func TestBuildURLAndRedaction(t *testing.T) {
	t.Parallel()

	full := buildURL("https://api.the-odds-api.com/v4", "/sports", map[string][]string{"apiKey": {"secret"}})
	assert.Equal(t, "https://api.the-odds-api.com/v4/sports?apiKey=secret", full)
	assert.NotContains(t, redactAPIURL(full), "secret")
}
