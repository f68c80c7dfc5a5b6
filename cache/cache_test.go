package cache_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/katalvlaran/routeplan/cache"
	"github.com/katalvlaran/routeplan/solver"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source for deterministic expiry.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// errStore fails every operation: the degradation double.
type errStore struct{}

var errBackend = errors.New("backend unavailable")

func (errStore) Get(context.Context, string) (cache.Entry, bool, error) {
	return cache.Entry{}, false, errBackend
}
func (errStore) Put(context.Context, cache.Entry) error { return errBackend }
func (errStore) Delete(context.Context, string) error   { return errBackend }
func (errStore) Keys(context.Context) ([]string, error) { return nil, errBackend }

func entry(key string, clock *fakeClock) cache.Entry {
	return cache.Entry{
		Key:       key,
		Route:     []int{0, 2, 1, 0},
		Cost:      12.5,
		Algorithm: solver.ExactHeldKarp,
		Matching:  solver.MatchingNone,
		CreatedAt: clock.Now(),
	}
}

func TestKey_StableAndDiscriminating(t *testing.T) {
	k1 := cache.Key(0xDEADBEEF, 5, solver.AutoSelect)
	k2 := cache.Key(0xDEADBEEF, 5, solver.AutoSelect)
	require.Equal(t, k1, k2)

	// Different fingerprint ⇒ different key.
	require.NotEqual(t, k1, cache.Key(0xDEADBEF0, 5, solver.AutoSelect))

	// Different stop count ⇒ different key.
	require.NotEqual(t, k1, cache.Key(0xDEADBEEF, 6, solver.AutoSelect))

	// A forced algorithm gets its own key space; auto requests share one.
	require.NotEqual(t, k1, cache.Key(0xDEADBEEF, 5, solver.ExactHeldKarp))
	require.NotEqual(t,
		cache.Key(0xDEADBEEF, 5, solver.ExactHeldKarp),
		cache.Key(0xDEADBEEF, 5, solver.ApproxChristofides))
}

func TestResultCache_PutGetRoundTrip(t *testing.T) {
	clock := newFakeClock()
	store := cache.NewMemStore()
	c, err := cache.New(store, cache.WithClock(clock.Now))
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	e := entry("route:abc", clock)
	require.NoError(t, c.Put(ctx, e))

	got, ok, err := c.Get(ctx, "route:abc")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, e.Route, got.Route)
	require.Equal(t, e.Cost, got.Cost)
	require.Equal(t, solver.ExactHeldKarp, got.Algorithm)
}

func TestResultCache_MissOnUnknownKey(t *testing.T) {
	c, err := cache.New(cache.NewMemStore())
	require.NoError(t, err)
	defer c.Close()

	_, ok, err := c.Get(context.Background(), "route:missing")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestResultCache_StaleEntryIsAMissAndPurged(t *testing.T) {
	clock := newFakeClock()
	store := cache.NewMemStore()
	c, err := cache.New(store, cache.WithClock(clock.Now))
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Put(ctx, entry("route:old", clock)))

	// One week plus a minute later the entry is stale.
	clock.Advance(cache.DefaultRetention + time.Minute)

	_, ok, err := c.Get(ctx, "route:old")
	require.NoError(t, err)
	require.False(t, ok)

	// The lazy purge removed it from the authoritative store.
	require.Equal(t, 0, store.Len())
}

func TestResultCache_CustomRetention(t *testing.T) {
	clock := newFakeClock()
	c, err := cache.New(cache.NewMemStore(),
		cache.WithClock(clock.Now),
		cache.WithRetention(time.Hour))
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Put(ctx, entry("route:h", clock)))

	clock.Advance(30 * time.Minute)
	_, ok, err := c.Get(ctx, "route:h")
	require.NoError(t, err)
	require.True(t, ok)

	clock.Advance(31 * time.Minute)
	_, ok, err = c.Get(ctx, "route:h")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestResultCache_BadRetention(t *testing.T) {
	_, err := cache.New(cache.NewMemStore(), cache.WithRetention(-time.Hour))
	require.ErrorIs(t, err, cache.ErrBadRetention)
}

func TestResultCache_NilStore(t *testing.T) {
	_, err := cache.New(nil)
	require.ErrorIs(t, err, cache.ErrNilStore)
}

func TestResultCache_SweepExpired(t *testing.T) {
	clock := newFakeClock()
	store := cache.NewMemStore()
	c, err := cache.New(store, cache.WithClock(clock.Now))
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Put(ctx, entry("route:old", clock)))

	clock.Advance(4 * 24 * time.Hour)
	require.NoError(t, c.Put(ctx, entry("route:fresh", clock)))

	// Four more days: "old" exceeds the week, "fresh" does not.
	clock.Advance(4 * 24 * time.Hour)

	purged, err := c.SweepExpired(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, purged)
	require.Equal(t, 1, store.Len())

	_, ok, err := c.Get(ctx, "route:fresh")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestResultCache_Invalidate(t *testing.T) {
	clock := newFakeClock()
	store := cache.NewMemStore()
	c, err := cache.New(store, cache.WithClock(clock.Now))
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Put(ctx, entry("route:x", clock)))
	require.NoError(t, c.Invalidate(ctx, "route:x"))

	_, ok, err := c.Get(ctx, "route:x")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestResultCache_BackendFailureDegrades(t *testing.T) {
	c, err := cache.New(errStore{})
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()

	// Get failure surfaces the error but reads as a miss.
	_, ok, err := c.Get(ctx, "route:x")
	require.False(t, ok)
	require.ErrorIs(t, err, errBackend)

	// Put failure is returned for logging; nothing panics, nothing retries.
	err = c.Put(ctx, cache.Entry{Key: "route:x", Route: []int{0, 0}})
	require.ErrorIs(t, err, errBackend)
}

func TestResultCache_ConcurrentAccess(t *testing.T) {
	clock := newFakeClock()
	c, err := cache.New(cache.NewMemStore(), cache.WithClock(clock.Now))
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()

	// Racing writers and readers on the same key: last-writer-wins, never a
	// torn read.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = c.Put(ctx, entry("route:shared", clock))
				if e, ok, gerr := c.Get(ctx, "route:shared"); ok {
					require.NoError(t, gerr)
					require.Equal(t, []int{0, 2, 1, 0}, e.Route)
				}
			}
		}()
	}
	wg.Wait()
}
