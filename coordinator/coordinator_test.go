package coordinator_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/katalvlaran/routeplan/cache"
	"github.com/katalvlaran/routeplan/coordinator"
	"github.com/katalvlaran/routeplan/costmodel"
	"github.com/katalvlaran/routeplan/solver"
	"github.com/stretchr/testify/require"
)

// makeCycleCosts builds the ring instance with a known optimum of n.
func makeCycleCosts(n int) [][]float64 {
	costs := make([][]float64, n)
	for i := 0; i < n; i++ {
		costs[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			d := math.Abs(float64(i - j))
			costs[i][j] = math.Min(d, float64(n)-d)
		}
	}
	return costs
}

func mustModel(t *testing.T, costs [][]float64) *costmodel.Model {
	t.Helper()
	m, err := costmodel.New(costs)
	require.NoError(t, err)
	return m
}

// newCoordinator wires a coordinator over a fresh in-memory cache.
func newCoordinator(t *testing.T, opts ...coordinator.Option) *coordinator.Coordinator {
	t.Helper()
	rc, err := cache.New(cache.NewMemStore())
	require.NoError(t, err)
	t.Cleanup(rc.Close)

	c, err := coordinator.New(rc, opts...)
	require.NoError(t, err)
	return c
}

// failStore rejects every operation; used to prove degradation.
type failStore struct{}

var errBackend = errors.New("backend unavailable")

func (failStore) Get(context.Context, string) (cache.Entry, bool, error) {
	return cache.Entry{}, false, errBackend
}
func (failStore) Put(context.Context, cache.Entry) error { return errBackend }
func (failStore) Delete(context.Context, string) error   { return errBackend }
func (failStore) Keys(context.Context) ([]string, error) { return nil, errBackend }

func TestCoordinator_SolveCompletes(t *testing.T) {
	c := newCoordinator(t)
	m := mustModel(t, makeCycleCosts(8))

	h, err := c.Solve(context.Background(), m, coordinator.Request{})
	require.NoError(t, err)

	res, err := h.Result()
	require.NoError(t, err)
	require.Equal(t, coordinator.StateCompleted, h.State())
	require.NoError(t, solver.ValidateRoute(res.Route, 8))
	require.Equal(t, 8.0, res.Cost)
	require.False(t, res.CacheHit)
}

func TestCoordinator_ProgressStream(t *testing.T) {
	c := newCoordinator(t)
	m := mustModel(t, makeCycleCosts(10))

	h, err := c.Solve(context.Background(), m, coordinator.Request{})
	require.NoError(t, err)

	// Drain the stream to closure; the publisher may drop intermediates
	// under back-pressure but never the terminal notification.
	var events []coordinator.Progress
	for p := range h.Progress() {
		events = append(events, p)
	}
	require.NotEmpty(t, events)

	for i := 1; i < len(events); i++ {
		require.GreaterOrEqual(t, events[i].Fraction, events[i-1].Fraction)
	}

	last := events[len(events)-1]
	require.Equal(t, coordinator.StateCompleted, last.State)
	require.Equal(t, 1.0, last.Fraction)
	for _, p := range events[:len(events)-1] {
		require.Equal(t, coordinator.StateRunning, p.State)
	}
}

func TestCoordinator_SecondSolveServedFromCache(t *testing.T) {
	c := newCoordinator(t)
	m := mustModel(t, makeCycleCosts(9))

	h1, err := c.Solve(context.Background(), m, coordinator.Request{})
	require.NoError(t, err)
	first, err := h1.Result()
	require.NoError(t, err)
	require.False(t, first.CacheHit)

	h2, err := c.Solve(context.Background(), m, coordinator.Request{})
	require.NoError(t, err)
	second, err := h2.Result()
	require.NoError(t, err)
	require.True(t, second.CacheHit)
	require.Equal(t, first.Cost, second.Cost)
	require.Equal(t, first.Route, second.Route)
}

func TestCoordinator_ForcedAlgorithmKeyedSeparately(t *testing.T) {
	c := newCoordinator(t)
	m := mustModel(t, makeCycleCosts(8))

	h1, err := c.Solve(context.Background(), m, coordinator.Request{})
	require.NoError(t, err)
	_, err = h1.Result()
	require.NoError(t, err)

	// A forced request must not be served from the auto-selected entry.
	h2, err := c.Solve(context.Background(), m, coordinator.Request{Algorithm: solver.ApproxChristofides})
	require.NoError(t, err)
	second, err := h2.Result()
	require.NoError(t, err)
	require.False(t, second.CacheHit)
	require.Equal(t, solver.ApproxChristofides, second.Algorithm)
}

func TestCoordinator_CancelRunningSolve(t *testing.T) {
	c := newCoordinator(t)

	// Large forced-exact instance: long enough that cancellation lands at
	// an enumeration checkpoint well before completion.
	m := mustModel(t, makeCycleCosts(18))

	h, err := c.Solve(context.Background(), m, coordinator.Request{Algorithm: solver.ExactHeldKarp})
	require.NoError(t, err)

	h.Cancel()
	h.Cancel() // idempotent

	_, err = h.Result()
	require.ErrorIs(t, err, solver.ErrCancelled)
	require.Equal(t, coordinator.StateCancelled, h.State())

	// The terminal notification reports the cancellation.
	var last coordinator.Progress
	for p := range h.Progress() {
		last = p
	}
	require.Equal(t, coordinator.StateCancelled, last.State)
}

func TestCoordinator_CancelWhilePending(t *testing.T) {
	c := newCoordinator(t, coordinator.WithMaxConcurrent(1))

	// Occupy the only slot with a long solve.
	blocker, err := c.Solve(context.Background(), mustModel(t, makeCycleCosts(18)),
		coordinator.Request{Algorithm: solver.ExactHeldKarp})
	require.NoError(t, err)
	defer blocker.Cancel()
	require.Eventually(t, func() bool {
		return blocker.State() == coordinator.StateRunning
	}, 2*time.Second, time.Millisecond)

	// The second request waits for the slot; cancel it while Pending.
	pending, err := c.Solve(context.Background(), mustModel(t, makeCycleCosts(6)), coordinator.Request{})
	require.NoError(t, err)
	pending.Cancel()

	_, err = pending.Result()
	require.ErrorIs(t, err, solver.ErrCancelled)
	require.Equal(t, coordinator.StateCancelled, pending.State())
}

func TestCoordinator_TimeBudgetExpiry(t *testing.T) {
	c := newCoordinator(t)
	m := mustModel(t, makeCycleCosts(18))

	h, err := c.Solve(context.Background(), m, coordinator.Request{
		Algorithm:  solver.ExactHeldKarp,
		TimeBudget: time.Millisecond,
	})
	require.NoError(t, err)

	_, err = h.Result()
	require.ErrorIs(t, err, solver.ErrCancelled)
	require.Equal(t, coordinator.StateCancelled, h.State())
}

func TestCoordinator_SolverErrorPropagatesUnchanged(t *testing.T) {
	c := newCoordinator(t)

	// Stop 2 fully cut off ⇒ the solver's sentinel must reach the handle.
	costs := makeCycleCosts(5)
	for j := 0; j < 5; j++ {
		if j != 2 {
			costs[2][j] = costmodel.Unreachable
			costs[j][2] = costmodel.Unreachable
		}
	}

	h, err := c.Solve(context.Background(), mustModel(t, costs), coordinator.Request{})
	require.NoError(t, err)

	_, err = h.Result()
	require.ErrorIs(t, err, solver.ErrDisconnectedInstance)
	require.Equal(t, coordinator.StateFailed, h.State())
}

func TestCoordinator_ForcedExactAboveCeilingFails(t *testing.T) {
	c := newCoordinator(t)
	m := mustModel(t, makeCycleCosts(solver.HardCeiling+2))

	h, err := c.Solve(context.Background(), m, coordinator.Request{Algorithm: solver.ExactHeldKarp})
	require.NoError(t, err)

	_, err = h.Result()
	require.ErrorIs(t, err, solver.ErrInstanceTooLarge)
	require.Equal(t, coordinator.StateFailed, h.State())
}

func TestCoordinator_CompareBoth(t *testing.T) {
	c := newCoordinator(t)
	m := mustModel(t, makeCycleCosts(8))

	h, err := c.Solve(context.Background(), m, coordinator.Request{CompareBoth: true})
	require.NoError(t, err)

	cmp, err := h.Comparison()
	require.NoError(t, err)
	require.Equal(t, solver.ExactHeldKarp, cmp.Exact.Algorithm)
	require.Equal(t, solver.ApproxChristofides, cmp.Approx.Algorithm)
	require.GreaterOrEqual(t, cmp.Ratio, 1.0)

	// An ordinary request has no comparison.
	h2, err := c.Solve(context.Background(), m, coordinator.Request{})
	require.NoError(t, err)
	_, err = h2.Comparison()
	require.ErrorIs(t, err, coordinator.ErrNoComparison)
}

func TestCoordinator_CacheBackendFailureDegrades(t *testing.T) {
	rc, err := cache.New(failStore{})
	require.NoError(t, err)
	t.Cleanup(rc.Close)

	c, err := coordinator.New(rc)
	require.NoError(t, err)

	// Both the lookup and the write-back fail; the solve still completes.
	h, err := c.Solve(context.Background(), mustModel(t, makeCycleCosts(6)), coordinator.Request{})
	require.NoError(t, err)

	res, err := h.Result()
	require.NoError(t, err)
	require.Equal(t, coordinator.StateCompleted, h.State())
	require.Equal(t, 6.0, res.Cost)
}

func TestCoordinator_ConcurrentSolvesAreIsolated(t *testing.T) {
	c := newCoordinator(t, coordinator.WithMaxConcurrent(4))

	sizes := []int{6, 7, 8, 9, 10}
	handles := make([]*coordinator.Handle, len(sizes))
	for i, n := range sizes {
		h, err := c.Solve(context.Background(), mustModel(t, makeCycleCosts(n)), coordinator.Request{})
		require.NoError(t, err)
		handles[i] = h
	}

	for i, h := range handles {
		res, err := h.Result()
		require.NoError(t, err)
		require.Equal(t, float64(sizes[i]), res.Cost)
		require.NoError(t, solver.ValidateRoute(res.Route, sizes[i]))
	}
}

func TestCoordinator_RequestValidation(t *testing.T) {
	c := newCoordinator(t)
	m := mustModel(t, makeCycleCosts(4))

	_, err := c.Solve(context.Background(), nil, coordinator.Request{})
	require.ErrorIs(t, err, solver.ErrNilModel)

	_, err = c.Solve(context.Background(), m, coordinator.Request{ExactThreshold: -1})
	require.ErrorIs(t, err, coordinator.ErrBadRequest)

	_, err = c.Solve(context.Background(), m, coordinator.Request{TimeBudget: -time.Second})
	require.ErrorIs(t, err, coordinator.ErrBadRequest)

	_, err = c.Solve(context.Background(), m, coordinator.Request{Algorithm: solver.Algorithm(9)})
	require.ErrorIs(t, err, coordinator.ErrBadRequest)
}

func TestCoordinator_NilCache(t *testing.T) {
	_, err := coordinator.New(nil)
	require.ErrorIs(t, err, coordinator.ErrNilCache)
}
