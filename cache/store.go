package cache

import (
	"context"
	"errors"
	"time"

	"github.com/katalvlaran/routeplan/solver"
)

// Sentinel errors returned by the cache package.
var (
	// ErrNilStore indicates a ResultCache was constructed without a store.
	ErrNilStore = errors.New("cache: store is nil")

	// ErrBadRetention indicates a non-positive retention window.
	ErrBadRetention = errors.New("cache: retention must be positive")
)

// Entry is one cached solve outcome. Entries are created after a successful
// solve and read-only afterwards; the ResultCache exclusively owns their
// lifecycle.
type Entry struct {
	// Key is the content-addressed cache key (see Key).
	Key string

	// Route is the cached visiting order (origin-anchored closed cycle).
	Route []int

	// Cost is the total route cost.
	Cost float64

	// Algorithm produced the route; Matching records the matching strategy
	// of approximate solves and Symmetrized whether an asymmetric input was
	// symmetrized first.
	Algorithm   solver.Algorithm
	Matching    solver.MatchingStrategy
	Symmetrized bool

	// CreatedAt timestamps the solve; expiry is evaluated against it.
	CreatedAt time.Time
}

// Store is the persistence port the ResultCache drives. Implementations must
// be safe for concurrent use. A file-system or embedded-store backend plugs
// in here; serialization only has to round-trip Entry faithfully.
type Store interface {
	// Get returns the entry for key. The boolean reports presence; a false
	// with nil error is an ordinary miss.
	Get(ctx context.Context, key string) (Entry, bool, error)

	// Put stores entry under entry.Key, overwriting any existing entry.
	Put(ctx context.Context, entry Entry) error

	// Delete removes the entry for key; deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error

	// Keys lists all stored keys (order unspecified).
	Keys(ctx context.Context) ([]string, error)
}
