package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_UnreachableBackendFallsThroughToLoader(t *testing.T) {
	t.Parallel()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, time.Minute, "sportsbet:")

	_, _, err := store.Get(context.Background(), "football:today")
	require.Error(t, err)

	lookup, err := store.GetOrLoad(context.Background(), "football:today", func(context.Context) ([]byte, error) {
		return []byte(`{"data":[]}`), nil
	})
	require.NoError(t, err)
	assert.Equal(t, `{"data":[]}`, string(lookup.Value))
	require.Error(t, lookup.BackendErr)
	assert.Contains(t, lookup.BackendErr.Error(), "redis get key=football:today")
}
