package reports

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute)
}

func TestCacheRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	key := cache.Key(ctx, 1, "tb", "all_all")
	var miss TrialBalance
	require.False(t, cache.Fetch(ctx, key, &miss))

	tb := BuildTrialBalance([]AccountTotal{{AccountNumber: "1000", Name: "Cash", Debit: dec("10"), Credit: dec("10")}})
	cache.Store(ctx, key, tb)

	var hit TrialBalance
	require.True(t, cache.Fetch(ctx, key, &hit))
	require.Len(t, hit.Rows, 1)
	require.True(t, hit.TotalDebit.Equal(dec("10")))
}

func TestInvalidateRotatesKeys(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	before := cache.Key(ctx, 1, "tb", "all_all")
	cache.Store(ctx, before, BuildTrialBalance(nil))

	require.NoError(t, cache.Invalidate(ctx, 1))

	after := cache.Key(ctx, 1, "tb", "all_all")
	require.NotEqual(t, before, after)

	var stale TrialBalance
	require.False(t, cache.Fetch(ctx, after, &stale))
}

func TestInvalidateScopedToCompany(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	other := cache.Key(ctx, 2, "tb", "all_all")
	require.NoError(t, cache.Invalidate(ctx, 1))
	require.Equal(t, other, cache.Key(ctx, 2, "tb", "all_all"))
}

func TestNilCacheIsNoop(t *testing.T) {
	var cache *Cache
	ctx := context.Background()

	require.False(t, cache.Fetch(ctx, "k", &TrialBalance{}))
	cache.Store(ctx, "k", TrialBalance{})
	require.NoError(t, cache.Invalidate(ctx, 1))
}
