package cache

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/ristretto/v2"

	"github.com/katalvlaran/routeplan/solver"
)

// DefaultRetention is the default entry lifetime: one week.
const DefaultRetention = 7 * 24 * time.Hour

// defaultL1Entries bounds the in-process hot-key layer. Each entry costs 1,
// so this is a plain entry count.
const defaultL1Entries = 4096

// Key derives the content-addressed cache key for an instance: the model
// fingerprint (which already covers the stop set and every pairwise cost)
// mixed with the stop count and, only when an algorithm is forced, the
// algorithm name — auto-selected results are shared across auto requests.
//
// Complexity: O(1).
func Key(fingerprint uint64, n int, forced solver.Algorithm) string {
	var (
		d   xxhash.Digest
		buf [8]byte
	)
	d.Reset()

	binary.LittleEndian.PutUint64(buf[:], fingerprint)
	_, _ = d.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(n))
	_, _ = d.Write(buf[:])
	if forced != solver.AutoSelect {
		_, _ = d.WriteString(forced.String())
	}

	return fmt.Sprintf("route:%016x", d.Sum64())
}

// ResultCache maps instance fingerprints to previously computed routes.
// The authoritative copy lives in the Store; a ristretto L1 serves hot keys
// without touching the backend. See the package documentation for the
// expiry contract.
type ResultCache struct {
	store     Store
	l1        *ristretto.Cache[string, Entry]
	l1Entries int64
	retention time.Duration
	now       func() time.Time
}

// Option configures a ResultCache.
type Option func(*ResultCache)

// WithRetention overrides the retention window (must be positive).
func WithRetention(d time.Duration) Option {
	return func(c *ResultCache) {
		c.retention = d
	}
}

// WithL1Entries bounds the in-process hot-key layer (n ≤ 0 keeps the
// default).
func WithL1Entries(n int64) Option {
	return func(c *ResultCache) {
		if n > 0 {
			c.l1Entries = n
		}
	}
}

// WithClock injects the time source used for stamping and expiry.
// Tests use this to drive expiry deterministically.
func WithClock(now func() time.Time) Option {
	return func(c *ResultCache) {
		c.now = now
	}
}

// New builds a ResultCache over store.
//
// Errors: ErrNilStore, ErrBadRetention, or a ristretto configuration error.
func New(store Store, opts ...Option) (*ResultCache, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	c := &ResultCache{
		store:     store,
		l1Entries: defaultL1Entries,
		retention: DefaultRetention,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.retention <= 0 {
		return nil, ErrBadRetention
	}

	l1, err := ristretto.NewCache(&ristretto.Config[string, Entry]{
		NumCounters: c.l1Entries * 10,
		MaxCost:     c.l1Entries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	c.l1 = l1

	return c, nil
}

// Get returns the cached entry for key if present and not expired.
//
// A stale entry is deleted and reported as a miss. A store failure is also
// reported as a miss, with the error returned for the caller to log — the
// contract is "degrade to compute", never "fail the solve".
//
// Complexity: O(1) plus the store lookup.
func (c *ResultCache) Get(ctx context.Context, key string) (Entry, bool, error) {
	// L1 fast path. Admission is asynchronous, so a miss here is routine.
	if e, ok := c.l1.Get(key); ok {
		if c.expired(e) {
			c.l1.Del(key)
		} else {
			return e, true, nil
		}
	}

	e, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return Entry{}, false, err
	}
	if !ok {
		return Entry{}, false, nil
	}
	if c.expired(e) {
		// Lazy purge; best effort, a failed delete just leaves the entry
		// for the next sweep.
		_ = c.store.Delete(ctx, key)
		c.l1.Del(key)

		return Entry{}, false, nil
	}

	c.l1.SetWithTTL(key, e, 1, c.remaining(e))

	return e, true, nil
}

// Put stores entry, overwriting any existing entry for the same key.
// A zero CreatedAt is stamped with the cache clock. The store error, if any,
// is returned for logging; the entry still lands in the L1 so the current
// process benefits even when the backend is down.
//
// Complexity: O(1) plus the store write.
func (c *ResultCache) Put(ctx context.Context, entry Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = c.now()
	}

	err := c.store.Put(ctx, entry)
	c.l1.SetWithTTL(entry.Key, entry, 1, c.remaining(entry))

	return err
}

// Invalidate removes the entry for key from both layers (e.g. after the
// cost model changed).
func (c *ResultCache) Invalidate(ctx context.Context, key string) error {
	c.l1.Del(key)

	return c.store.Delete(ctx, key)
}

// SweepExpired purges every entry older than the retention window and
// returns the number purged. The cache owns no timer: external code calls
// this on whatever schedule it likes.
//
// Complexity: O(k) store operations for k stored keys.
func (c *ResultCache) SweepExpired(ctx context.Context) (int, error) {
	keys, err := c.store.Keys(ctx)
	if err != nil {
		return 0, err
	}

	var purged int
	for _, key := range keys {
		if ctx.Err() != nil {
			return purged, ctx.Err()
		}

		e, ok, gerr := c.store.Get(ctx, key)
		if gerr != nil || !ok {
			continue
		}
		if !c.expired(e) {
			continue
		}
		if derr := c.store.Delete(ctx, key); derr != nil {
			continue
		}
		c.l1.Del(key)
		purged++
	}

	return purged, nil
}

// Close releases the L1 resources. The store is owned by the caller.
func (c *ResultCache) Close() {
	c.l1.Close()
}

// expired reports whether e's age exceeds the retention window.
func (c *ResultCache) expired(e Entry) bool {
	return c.now().Sub(e.CreatedAt) > c.retention
}

// remaining returns the entry's remaining lifetime for the L1 TTL,
// clamped to a minimum so freshly stamped entries always admit.
func (c *ResultCache) remaining(e Entry) time.Duration {
	left := c.retention - c.now().Sub(e.CreatedAt)
	if left < time.Second {
		left = time.Second
	}

	return left
}
