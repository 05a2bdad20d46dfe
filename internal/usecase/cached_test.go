package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/sportsbet-api/internal/platform/cache"
	"github.com/riskibarqy/sportsbet-api/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCached_ReloadsUndecodableEntry(t *testing.T) {
	t.Parallel()

	store := cache.NewMemoryStore(time.Minute)
	require.NoError(t, store.Set(context.Background(), "k", []byte("{not json")))

	observer := &recordingCacheObserver{}
	c := newResponseCache(store, observer, logging.NewNop())

	calls := 0
	got, err := loadCached(context.Background(), c, "k", func(context.Context) ([]string, error) {
		calls++
		return []string{"fresh"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, got)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{cacheResultHit, cacheResultError}, observer.results())
}

func TestLoadCached_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := cache.NewMemoryStore(time.Minute)
	observer := &recordingCacheObserver{}
	c := newResponseCache(store, observer, logging.NewNop())
	boom := errors.New("boom")

	_, err := loadCached(context.Background(), c, "k", func(context.Context) (int, error) {
		return 0, boom
	})
	require.ErrorIs(t, err, boom)

	got, err := loadCached(context.Background(), c, "k", func(context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Equal(t, []string{cacheResultMiss}, observer.results())
}

func TestLoadCached_NilStoreAlwaysLoads(t *testing.T) {
	t.Parallel()

	c := newResponseCache(nil, nil, nil)
	calls := 0
	for range 2 {
		_, err := loadCached(context.Background(), c, "k", func(context.Context) (int, error) {
			calls++
			return calls, nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
}

// failingStore fails every backend call so GetOrLoad falls through to the loader.
type failingStore struct{}

var errCacheBackend = errors.New("connection refused")

func (*failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errCacheBackend
}

func (*failingStore) Set(context.Context, string, []byte) error { return errCacheBackend }

func (s *failingStore) GetOrLoad(ctx context.Context, key string, loader cache.Loader) (cache.Lookup, error) {
	value, err := loader(ctx)
	if err != nil {
		return cache.Lookup{}, err
	}
	return cache.Lookup{Value: value, BackendErr: errCacheBackend}, nil
}

func TestLoadCached_BackendFailureIsObservedAndServed(t *testing.T) {
	t.Parallel()

	observer := &recordingCacheObserver{}
	c := newResponseCache(&failingStore{}, observer, logging.NewNop())

	got, err := loadCached(context.Background(), c, "football:today", func(context.Context) ([]string, error) {
		return []string{"fresh"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, got)
	assert.Equal(t, []string{cacheResultError}, observer.results())
}

func TestLoadCached_CancelledCallerIsNotCountedAsError(t *testing.T) {
	t.Parallel()

	observer := &recordingCacheObserver{}
	c := newResponseCache(cache.NewMemoryStore(time.Minute), observer, logging.NewNop())

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := loadCached(ctx, c, "k", func(context.Context) (int, error) {
		<-release
		return 1, nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, observer.results())
}
