package coordinator

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/katalvlaran/routeplan/solver"
)

// progressBuffer bounds the per-handle notification channel. The publisher
// drops the oldest pending notification when the buffer is full, so a slow
// (or absent) consumer can never block a solver.
const progressBuffer = 64

// Handle is the boundary object returned by Coordinator.Solve. It outlives
// the worker goroutine and is the only way to observe progress, retrieve the
// result, or cancel. Safe for concurrent use.
type Handle struct {
	id       uuid.UUID
	progress chan Progress
	done     chan struct{}
	cancel   context.CancelFunc
	state    atomic.Int32

	// Written by the worker goroutine before done is closed; read only
	// after it (the channel close is the memory barrier).
	result     solver.Result
	comparison solver.Comparison
	err        error

	// lastFraction enforces monotone fractions; worker goroutine only.
	lastFraction float64
}

func newHandle(cancel context.CancelFunc) *Handle {
	return &Handle{
		id:       uuid.New(),
		progress: make(chan Progress, progressBuffer),
		done:     make(chan struct{}),
		cancel:   cancel,
	}
}

// ID returns the unique identifier of this solve.
func (h *Handle) ID() uuid.UUID {
	return h.id
}

// State returns the current lifecycle state.
func (h *Handle) State() State {
	return State(h.state.Load())
}

// Progress returns the notification stream: a finite, non-restartable
// sequence of monotonically increasing fractions ending with exactly one
// terminal notification, after which the channel is closed. Intermediate
// notifications may be dropped under consumer back-pressure; the terminal
// one never is.
func (h *Handle) Progress() <-chan Progress {
	return h.progress
}

// Done returns a channel closed once the handle is terminal.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Cancel requests cooperative cancellation. Idempotent; calling it after a
// terminal state is a no-op.
func (h *Handle) Cancel() {
	h.cancel()
}

// Result blocks until the handle is terminal, then returns the route or the
// error that ended the solve (solver.ErrCancelled for cancellation).
func (h *Handle) Result() (solver.Result, error) {
	<-h.done

	return h.result, h.err
}

// Comparison blocks until terminal and returns the side-by-side comparison
// of a CompareBoth request. ErrNoComparison for ordinary requests.
func (h *Handle) Comparison() (solver.Comparison, error) {
	<-h.done

	if h.err != nil {
		return solver.Comparison{}, h.err
	}
	if h.comparison.Exact.Route == nil {
		return solver.Comparison{}, ErrNoComparison
	}

	return h.comparison, nil
}

// publish emits an intermediate notification. Called only from the worker
// goroutine. Fractions are clamped to be non-decreasing; when the buffer is
// full the oldest pending notification is dropped to make room (the handle's
// worker is the only sender, so one receive always frees a slot).
func (h *Handle) publish(p Progress) {
	if p.Fraction < h.lastFraction {
		p.Fraction = h.lastFraction
	}
	h.lastFraction = p.Fraction

	select {
	case h.progress <- p:
		return
	default:
	}

	// Buffer full: sacrifice the oldest pending notification.
	select {
	case <-h.progress:
	default:
	}
	select {
	case h.progress <- p:
	default:
	}
}

// finish records the terminal outcome, publishes the terminal notification,
// closes the stream and unblocks Result. Called exactly once, from the
// worker goroutine.
func (h *Handle) finish(state State, p Progress, err error) {
	h.err = err
	h.state.Store(int32(state))

	p.State = state
	h.publish(p)
	close(h.progress)
	close(h.done)
}
