package sportmonks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/sportsbet-api/internal/domain/rawdata"
	"github.com/riskibarqy/sportsbet-api/internal/platform/logging"
	"github.com/riskibarqy/sportsbet-api/internal/platform/resilience"
	"github.com/riskibarqy/sportsbet-api/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, mutate ...func(*ClientConfig)) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := ClientConfig{
		FootballURL:   srv.URL,
		CricketURL:    srv.URL,
		FootballToken: "football-token",
		CricketToken:  "cricket-token",
		Timeout:       2 * time.Second,
		RetryBackoff:  time.Millisecond,
		Logger:        logging.NewNop(),
	}
	for _, fn := range mutate {
		fn(&cfg)
	}
	return NewClient(cfg)
}

func TestFetchLiveFixtures_ConcatenatesPagesInOrder(t *testing.T) {
	t.Parallel()

	var pages []string
	var mu sync.Mutex
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/livescores/inplay", r.URL.Path)
		assert.Equal(t, FixtureInclude, r.URL.Query().Get("include"))
		assert.Equal(t, "football-token", r.URL.Query().Get("api_token"))

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		mu.Lock()
		pages = append(pages, r.URL.Query().Get("page"))
		mu.Unlock()

		hasMore := page < 3
		_, _ = fmt.Fprintf(w, `{"data":[{"id":%d},{"id":%d}],"pagination":{"count":2,"per_page":2,"current_page":%d,"has_more":%t}}`,
			page*10+1, page*10+2, page, hasMore)
	})

	items, err := client.FetchLiveFixtures(context.Background(), nil, false)
	require.NoError(t, err)

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []int64{11, 12, 21, 22, 31, 32}, ids)
	assert.Equal(t, []string{"1", "2", "3"}, pages)
}

func TestFetchLiveFixtures_FirstPageOnlyAndLeagueFilter(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "fixtureLeagues:8,564", r.URL.Query().Get("filters"))
		_, _ = w.Write([]byte(`{"data":[{"id":1}],"pagination":{"current_page":1,"has_more":true}}`))
	})

	items, err := client.FetchLiveFixtures(context.Background(), []int64{8, 0, 564}, true)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.EqualValues(t, 1, calls.Load())
}

func TestFetchCricketFixtures_FollowsMetaPagination(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fixtures", r.URL.Path)
		assert.Equal(t, "2024-07-13,2024-07-20", r.URL.Query().Get("filter[starts_between]"))
		assert.Equal(t, "cricket-token", r.URL.Query().Get("api_token"))

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		_, _ = fmt.Fprintf(w, `{"data":[{"id":%d,"status":"NS"}],"meta":{"pagination":{"current_page":%d,"total_pages":2}}}`, page, page)
	})

	from := time.Date(2024, 7, 13, 0, 0, 0, 0, time.UTC)
	items, err := client.FetchCricketFixtures(context.Background(), from, from.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.EqualValues(t, 1, items[0].ID)
	assert.EqualValues(t, 2, items[1].ID)
}

func TestCollectPages_MissingTokenReturnsEmpty(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}, func(cfg *ClientConfig) {
		cfg.FootballToken = "  "
	})

	items, err := client.FetchFixturesByDate(context.Background(), time.Now())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Zero(t, calls.Load())
}

func TestCollectPages_NonSuccessSurfacesProviderMessage(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Unauthenticated."}`))
	})

	_, err := client.FetchLiveFixtures(context.Background(), nil, false)
	require.Error(t, err)

	var providerErr *usecase.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, http.StatusUnauthorized, providerErr.StatusCode)
	assert.Equal(t, "Unauthenticated.", providerErr.Message)
	assert.NotContains(t, err.Error(), "football-token")
}

func TestCollectPages_NonSuccessWithoutMessageUsesGenericText(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.FetchFixturesByDate(context.Background(), time.Now())

	var providerErr *usecase.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, "sportmonks request failed", providerErr.Message)
}

func TestExecuteRequest_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"data":[{"id":7}]}`))
	}, func(cfg *ClientConfig) {
		cfg.MaxRetries = 1
	})

	items, err := client.FetchLiveFixtures(context.Background(), nil, false)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.EqualValues(t, 2, calls.Load())
}

func TestDoJSON_OpenBreakerShortCircuits(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, func(cfg *ClientConfig) {
		cfg.CircuitBreaker = resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		}
	})

	_, err := client.FetchLiveFixtures(context.Background(), nil, false)
	require.Error(t, err)
	assert.False(t, isDependencyUnavailable(err))

	_, err = client.FetchLiveFixtures(context.Background(), nil, false)
	require.Error(t, err)
	assert.True(t, isDependencyUnavailable(err))
	assert.EqualValues(t, 1, calls.Load())
	assert.Equal(t, resilience.CircuitStateOpen, client.BreakerState())
}

func TestDoJSON_CancelledCallerDoesNotFailSharedRequest(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	arrived := make(chan struct{})
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			close(arrived)
		}
		<-release
		_, _ = fmt.Fprint(w, `{"data":[{"id":7}],"pagination":{"has_more":false}}`)
	})

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := client.FetchLiveFixtures(ctxA, nil, true)
		errA <- err
	}()
	<-arrived

	type outcome struct {
		ids []int64
		err error
	}
	resultB := make(chan outcome, 1)
	go func() {
		items, err := client.FetchLiveFixtures(context.Background(), nil, true)
		ids := make([]int64, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ID)
		}
		resultB <- outcome{ids: ids, err: err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancelA()
	require.ErrorIs(t, <-errA, context.Canceled)

	close(release)
	got := <-resultB
	require.NoError(t, got.err)
	assert.Equal(t, []int64{7}, got.ids)
	assert.Equal(t, int32(1), hits.Load())
}

func TestCollectPages_ArchivesEveryPage(t *testing.T) {
	t.Parallel()

	archive := &recordingArchiver{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		_, _ = fmt.Fprintf(w, `{"data":[],"pagination":{"has_more":%t}}`, page < 2)
	}, func(cfg *ClientConfig) {
		cfg.Archiver = archive
	})

	_, err := client.FetchFixturesBetween(context.Background(), time.Now(), time.Now().AddDate(0, 0, 1))
	require.NoError(t, err)

	require.Len(t, archive.items, 2)
	assert.Equal(t, rawdata.SourceSportmonks, archive.items[0].Source)
	assert.Equal(t, "fixtures/between", archive.items[0].Endpoint)
	assert.Equal(t, 2, archive.items[1].Page)
}

func TestRedactAPIURL(t *testing.T) {
	t.Parallel()

	got := redactAPIURL("https://api.sportmonks.com/v3/football/livescores/inplay?api_token=secret&page=1")
	assert.NotContains(t, got, "secret")
	assert.Contains(t, got, "api_token=REDACTED")
}

type recordingArchiver struct {
	mu    sync.Mutex
	items []rawdata.Payload
}

func (r *recordingArchiver) Archive(_ context.Context, payload rawdata.Payload) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, payload)
}

func isDependencyUnavailable(err error) bool {
	return errors.Is(err, usecase.ErrDependencyUnavailable)
}
