package coordinator

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"golang.org/x/sync/semaphore"

	"github.com/katalvlaran/routeplan/cache"
	"github.com/katalvlaran/routeplan/costmodel"
	"github.com/katalvlaran/routeplan/solver"
)

// DefaultMaxConcurrent bounds simultaneously running solves when no override
// is configured.
const DefaultMaxConcurrent = 4

// Fractions for the bookkeeping phases; solver progress is rescaled into the
// band above them so the stream stays monotone across phase handoffs.
const (
	fractionFingerprint = 0.02
	fractionCacheLookup = 0.05
	solveBandStart      = 0.10
	solveBandWidth      = 0.88
)

// Coordinator dispatches solve requests to worker goroutines. The result
// cache is dependency-injected so concurrent coordinators (and tests) can
// use isolated caches; there is no process-wide state.
type Coordinator struct {
	cache *cache.ResultCache
	log   *slog.Logger
	sem   *semaphore.Weighted
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithMaxConcurrent bounds the number of simultaneously running solves
// (n ≤ 0 resets to DefaultMaxConcurrent). Further requests stay Pending
// until a slot frees.
func WithMaxConcurrent(n int) Option {
	return func(c *Coordinator) {
		if n <= 0 {
			n = DefaultMaxConcurrent
		}
		c.sem = semaphore.NewWeighted(int64(n))
	}
}

// WithLogger sets the structured logger; nil discards.
func WithLogger(log *slog.Logger) Option {
	return func(c *Coordinator) {
		c.log = log
	}
}

// New builds a Coordinator over rc.
//
// Errors: ErrNilCache.
func New(rc *cache.ResultCache, opts ...Option) (*Coordinator, error) {
	if rc == nil {
		return nil, ErrNilCache
	}

	c := &Coordinator{
		cache: rc,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		sem:   semaphore.NewWeighted(DefaultMaxConcurrent),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return c, nil
}

// Solve accepts a request and returns its Handle immediately; the work runs
// in an independent worker goroutine, so the calling thread never blocks on
// the computation. ctx is the parent of the worker context: cancelling it,
// calling Handle.Cancel, or exceeding req.TimeBudget all cancel the solve.
//
// Errors (synchronous, before any dispatch): solver.ErrNilModel,
// ErrBadRequest.
func (c *Coordinator) Solve(ctx context.Context, model *costmodel.Model, req Request) (*Handle, error) {
	if model == nil {
		return nil, solver.ErrNilModel
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	var (
		workerCtx context.Context
		cancel    context.CancelFunc
	)
	if req.TimeBudget > 0 {
		workerCtx, cancel = context.WithTimeout(ctx, req.TimeBudget)
	} else {
		workerCtx, cancel = context.WithCancel(ctx)
	}

	h := newHandle(cancel)
	go c.run(workerCtx, cancel, h, model, req)

	return h, nil
}

// run executes one solve on its worker goroutine and drives the handle to a
// terminal state. All error mapping happens here: solver.ErrCancelled (and
// worker-context expiry while pending) terminates as Cancelled, everything
// else as Failed, and solver errors pass through unchanged.
func (c *Coordinator) run(ctx context.Context, cancel context.CancelFunc, h *Handle, model *costmodel.Model, req Request) {
	defer cancel()

	// Wait for a worker slot; the handle stays Pending meanwhile.
	if err := c.sem.Acquire(ctx, 1); err != nil {
		c.log.Debug("solve cancelled while pending", "handle", h.id)
		h.finish(StateCancelled, Progress{Phase: solver.PhaseCacheLookup}, solver.ErrCancelled)

		return
	}
	defer c.sem.Release(1)

	h.state.Store(int32(StateRunning))
	c.log.Debug("solve dispatched",
		"handle", h.id, "stops", model.Size(), "algorithm", req.Algorithm.String(),
		"compare", req.CompareBoth)

	h.publish(Progress{Fraction: fractionFingerprint, Phase: solver.PhaseFingerprint, State: StateRunning})
	key := cache.Key(model.Fingerprint(), model.Size(), req.Algorithm)

	opts := solver.Options{
		ExactThreshold: req.ExactThreshold,
		Algorithm:      req.Algorithm,
		OnProgress: func(phase solver.Phase, fraction float64) {
			h.publish(Progress{
				Fraction: solveBandStart + solveBandWidth*fraction,
				Phase:    phase,
				State:    StateRunning,
			})
		},
	}

	if req.CompareBoth {
		c.runComparison(ctx, h, model, opts)

		return
	}

	// Cache lookup; a backend failure reads as a miss and is only logged.
	h.publish(Progress{Fraction: fractionCacheLookup, Phase: solver.PhaseCacheLookup, State: StateRunning})
	if entry, ok, err := c.cache.Get(ctx, key); err != nil {
		c.log.Warn("cache lookup failed, computing", "handle", h.id, "error", err)
	} else if ok {
		c.log.Debug("cache hit", "handle", h.id, "key", key)
		h.result = solver.Result{
			Route:       entry.Route,
			Cost:        entry.Cost,
			Algorithm:   entry.Algorithm,
			Matching:    entry.Matching,
			Symmetrized: entry.Symmetrized,
			CacheHit:    true,
		}
		h.finish(StateCompleted, Progress{Fraction: 1, Phase: solver.PhaseFinalize}, nil)

		return
	}

	res, err := solver.Solve(ctx, model, opts)
	if err != nil {
		c.fail(h, err)

		return
	}

	// Write-back is best effort: the route is delivered even when the
	// backend refuses it.
	if perr := c.cache.Put(ctx, cache.Entry{
		Key:         key,
		Route:       res.Route,
		Cost:        res.Cost,
		Algorithm:   res.Algorithm,
		Matching:    res.Matching,
		Symmetrized: res.Symmetrized,
	}); perr != nil {
		c.log.Warn("cache write-back failed", "handle", h.id, "error", perr)
	}

	c.log.Debug("solve completed",
		"handle", h.id, "cost", res.Cost, "algorithm", res.Algorithm.String())
	h.result = res
	h.finish(StateCompleted, Progress{Fraction: 1, Phase: solver.PhaseFinalize}, nil)
}

// runComparison executes a CompareBoth request. Comparisons bypass the
// cache: they exist for side-by-side diagnostics, and caching one route of
// the pair would bias later lookups.
func (c *Coordinator) runComparison(ctx context.Context, h *Handle, model *costmodel.Model, opts solver.Options) {
	cmp, err := solver.CompareBoth(ctx, model, opts)
	if err != nil {
		c.fail(h, err)

		return
	}

	c.log.Debug("comparison completed",
		"handle", h.id, "exact", cmp.Exact.Cost, "approx", cmp.Approx.Cost, "ratio", cmp.Ratio)
	h.comparison = cmp
	h.result = cmp.Exact
	h.finish(StateCompleted, Progress{Fraction: 1, Phase: solver.PhaseFinalize}, nil)
}

// fail drives the handle to its failure terminal state, mapping cooperative
// cancellation to Cancelled and every other error to Failed unchanged.
func (c *Coordinator) fail(h *Handle, err error) {
	if errors.Is(err, solver.ErrCancelled) {
		c.log.Debug("solve cancelled", "handle", h.id)
		h.finish(StateCancelled, Progress{Phase: solver.PhaseFinalize}, solver.ErrCancelled)

		return
	}

	c.log.Debug("solve failed", "handle", h.id, "error", err)
	h.finish(StateFailed, Progress{Phase: solver.PhaseFinalize}, err)
}
