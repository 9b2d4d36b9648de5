package memcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time {
	return f.t
}

func (f *fakeClock) advance(d time.Duration) {
	f.t = f.t.Add(d)
}

func newTestCache(maxEntries int) (*Cache, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	cache := New(maxEntries, zap.NewNop(), WithClock(clock.now))
	return cache, clock
}

func TestCache_SetGet(t *testing.T) {
	cache, _ := newTestCache(0)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("payload"), 5*time.Minute))

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)
}

func TestCache_MissReturnsNil(t *testing.T) {
	cache, _ := newTestCache(0)

	got, err := cache.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_ExpiresAfterTTL(t *testing.T) {
	cache, clock := newTestCache(0)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("payload"), 5*time.Minute))

	clock.advance(5*time.Minute + time.Second)

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got, "entry past TTL must not be served")
}

func TestCache_LastWriteWins(t *testing.T) {
	cache, _ := newTestCache(0)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("first"), time.Minute))
	require.NoError(t, cache.Set(ctx, "k", []byte("second"), time.Minute))

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}

// Writes sweep the whole map: expired entries disappear even if never read.
func TestCache_WriteSweepsExpired(t *testing.T) {
	cache, clock := newTestCache(0)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "old1", []byte("x"), time.Minute))
	require.NoError(t, cache.Set(ctx, "old2", []byte("y"), time.Minute))

	clock.advance(2 * time.Minute)
	require.NoError(t, cache.Set(ctx, "fresh", []byte("z"), time.Minute))

	n, err := cache.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "expired entries should be swept on write")
}

func TestCache_Clear(t *testing.T) {
	cache, _ := newTestCache(0)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, cache.Set(ctx, "b", []byte("2"), time.Minute))

	removed, err := cache.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	n, err := cache.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCache_BoundedEvictsSoonestExpiry(t *testing.T) {
	cache, _ := newTestCache(2)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "short", []byte("1"), time.Minute))
	require.NoError(t, cache.Set(ctx, "long", []byte("2"), time.Hour))
	require.NoError(t, cache.Set(ctx, "new", []byte("3"), time.Hour))

	got, err := cache.Get(ctx, "short")
	require.NoError(t, err)
	assert.Nil(t, got, "entry closest to expiry should be evicted at capacity")

	got, err = cache.Get(ctx, "long")
	require.NoError(t, err)
	assert.NotNil(t, got)

	got, err = cache.Get(ctx, "new")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestCache_Stats(t *testing.T) {
	cache, _ := newTestCache(0)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))

	_, _ = cache.Get(ctx, "k")      // hit
	_, _ = cache.Get(ctx, "absent") // miss
	_, _ = cache.Get(ctx, "absent") // miss

	hits, misses := cache.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(2), misses)
}
