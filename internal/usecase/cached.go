package usecase

import (
	"context"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/sportsbet-api/internal/platform/cache"
	"github.com/riskibarqy/sportsbet-api/internal/platform/logging"
)

const (
	cacheResultHit   = "hit"
	cacheResultMiss  = "miss"
	cacheResultError = "error"
)

// responseCache stores encoded usecase results for a short TTL.
type responseCache struct {
	store    cache.Store
	observer CacheObserver
	logger   *logging.Logger
}

func newResponseCache(store cache.Store, observer CacheObserver, logger *logging.Logger) responseCache {
	if store == nil {
		store = cache.Nop{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return responseCache{store: store, observer: observer, logger: logger}
}

func (c responseCache) observe(result string) {
	if c.observer != nil {
		c.observer.ObserveCacheLookup(result)
	}
}

// loadCached returns the cached value for key or runs load and caches its encoded result.
// Errors from load are returned as-is and never cached.
func loadCached[T any](ctx context.Context, c responseCache, key string, load func(context.Context) (T, error)) (T, error) {
	var zero T

	var (
		loaded  bool
		fresh   T
		loadErr error
	)
	lookup, err := c.store.GetOrLoad(ctx, key, func(ctx context.Context) ([]byte, error) {
		loaded = true
		fresh, loadErr = load(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		return sonic.Marshal(fresh)
	})
	if err != nil {
		if ctx.Err() == nil && loadErr == nil {
			c.observe(cacheResultError)
		}
		return zero, err
	}

	switch {
	case lookup.BackendErr != nil:
		c.logger.WarnContext(ctx, "cache backend failure", "key", key, "error", lookup.BackendErr)
		c.observe(cacheResultError)
		if loaded {
			return fresh, nil
		}
	case loaded:
		c.observe(cacheResultMiss)
		return fresh, nil
	default:
		c.observe(cacheResultHit)
	}

	var out T
	if err := sonic.Unmarshal(lookup.Value, &out); err != nil {
		c.logger.WarnContext(ctx, "discard undecodable cache entry", "key", key, "error", err)
		c.observe(cacheResultError)
		value, loadErr := load(ctx)
		if loadErr != nil {
			return zero, fmt.Errorf("reload after cache decode failure: %w", loadErr)
		}
		return value, nil
	}
	return out, nil
}
