package coordinator

import (
	"errors"
	"time"

	"github.com/katalvlaran/routeplan/solver"
)

// Sentinel errors returned by the coordinator package.
var (
	// ErrNilCache indicates a Coordinator was constructed without a cache.
	ErrNilCache = errors.New("coordinator: result cache is nil")

	// ErrBadRequest indicates an internally inconsistent Request.
	ErrBadRequest = errors.New("coordinator: invalid request")

	// ErrNoComparison indicates Comparison() was called on a handle whose
	// request did not set CompareBoth.
	ErrNoComparison = errors.New("coordinator: request was not a comparison")
)

// State is the lifecycle state of a solve handle.
type State int32

const (
	// StatePending — accepted, waiting for a worker slot.
	StatePending State = iota

	// StateRunning — dispatched to a worker goroutine.
	StateRunning

	// StateCompleted — solver success; the route is available.
	StateCompleted

	// StateFailed — solver error; the error is available.
	StateFailed

	// StateCancelled — cancellation honoured before a result was produced.
	StateCancelled
)

// Terminal reports whether s is a final state.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed || s == StateCancelled
}

// String returns a stable state name for logs.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Progress is one notification on a handle's progress stream.
type Progress struct {
	// Fraction is the completion estimate in [0..1]; non-decreasing within
	// a single handle.
	Fraction float64

	// Phase names the pipeline stage the solve is in.
	Phase solver.Phase

	// State is StateRunning for intermediate notifications and the terminal
	// state for the final one.
	State State
}

// Request configures a single solve.
//
// ExactThreshold — stop count at or below which auto-selection goes exact;
// 0 means solver.DefaultExactThreshold.
// Algorithm      — solver.AutoSelect, or a forced solver (a forced exact
// above the hard ceiling fails, it is never attempted).
// CompareBoth    — run both solvers and expose the comparison on the handle;
// comparison runs bypass the cache (two routes, diagnostic use).
// TimeBudget     — optional wall-clock budget; expiry cancels the solve.
type Request struct {
	ExactThreshold int
	Algorithm      solver.Algorithm
	CompareBoth    bool
	TimeBudget     time.Duration
}

// validate checks internal consistency of the request.
func (r Request) validate() error {
	if r.ExactThreshold < 0 || r.TimeBudget < 0 {
		return ErrBadRequest
	}
	switch r.Algorithm {
	case solver.AutoSelect, solver.ExactHeldKarp, solver.ApproxChristofides:
		return nil
	default:
		return ErrBadRequest
	}
}
