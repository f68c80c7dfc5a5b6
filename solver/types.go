package solver

import "errors"

// Sentinel errors returned by the solver package.
var (
	// ErrNilModel indicates a nil *costmodel.Model was passed to a solver.
	ErrNilModel = errors.New("solver: cost model is nil")

	// ErrDisconnectedInstance indicates no feasible Hamiltonian cycle exists
	// under the model's reachability (some required edge is unreachable).
	ErrDisconnectedInstance = errors.New("solver: disconnected instance, no feasible cycle")

	// ErrInstanceTooLarge indicates an exact solve was requested or required
	// above the hard ceiling; the solver refuses rather than allocating an
	// exponential table of unbounded size.
	ErrInstanceTooLarge = errors.New("solver: instance above exact-solver hard ceiling")

	// ErrCancelled indicates cooperative cancellation was honoured at a
	// checkpoint before the solver produced a result.
	ErrCancelled = errors.New("solver: solve cancelled")

	// ErrInternalSolverFault flags an invariant violation that should be
	// unreachable (e.g. DP reconstruction yielding a malformed permutation).
	// It is never swallowed; it always surfaces to the caller.
	ErrInternalSolverFault = errors.New("solver: internal invariant violation")

	// ErrInvalidTour indicates a tour slice violating the Hamiltonian-cycle
	// shape contract (length, closure, or permutation property).
	ErrInvalidTour = errors.New("solver: malformed tour")

	// ErrBadOptions indicates an internally inconsistent Options value.
	ErrBadOptions = errors.New("solver: invalid options")
)

// HardCeiling is the maximum number of non-origin stops (m = n−1) the exact
// solver accepts regardless of configuration. Above it the DP table alone
// exceeds 2^m·m cells, so the solver refuses with ErrInstanceTooLarge.
const HardCeiling = 20

// DefaultExactThreshold is the stop count (origin included) at or below
// which the selector prefers the exact solver.
const DefaultExactThreshold = 12

// exactMatchingLimit caps the odd-set size for the exact bitmask matching;
// larger odd sets fall back to the deterministic greedy matching.
const exactMatchingLimit = 16

// Algorithm enumerates route-construction strategies.
type Algorithm int

const (
	// AutoSelect lets the selector pick by instance size and threshold.
	AutoSelect Algorithm = iota

	// ExactHeldKarp forces the Held–Karp dynamic program.
	ExactHeldKarp

	// ApproxChristofides forces the Christofides-style construction.
	ApproxChristofides
)

// String returns a stable, lowercase name suitable for logs and cache keys.
func (a Algorithm) String() string {
	switch a {
	case AutoSelect:
		return "auto"
	case ExactHeldKarp:
		return "exact"
	case ApproxChristofides:
		return "approx"
	default:
		return "unknown"
	}
}

// MatchingStrategy records which perfect-matching implementation produced
// the Eulerian multigraph of an approximate solve. The 1.5× quality bound
// holds only for MatchingExact.
type MatchingStrategy int

const (
	// MatchingNone — no matching ran (exact solver or trivial instance).
	MatchingNone MatchingStrategy = iota

	// MatchingExact — minimum-weight perfect matching by bitmask DP.
	MatchingExact

	// MatchingGreedy — deterministic nearest-neighbour pairing fallback.
	MatchingGreedy
)

// String returns a stable, lowercase strategy name.
func (s MatchingStrategy) String() string {
	switch s {
	case MatchingNone:
		return "none"
	case MatchingExact:
		return "exact"
	case MatchingGreedy:
		return "greedy"
	default:
		return "unknown"
	}
}

// Phase names the stages of a route-planning solve. The solvers emit the
// pipeline phases; the coordination layer adds the bookkeeping ones so a
// single vocabulary covers the whole progress stream.
type Phase int

const (
	// PhaseFingerprint — hashing the instance for cache keying.
	PhaseFingerprint Phase = iota

	// PhaseCacheLookup — consulting the result cache.
	PhaseCacheLookup

	// PhaseExact — Held–Karp subset enumeration.
	PhaseExact

	// PhaseSpanningTree — Prim MST construction.
	PhaseSpanningTree

	// PhaseMatching — odd-vertex perfect matching.
	PhaseMatching

	// PhaseEulerian — Hierholzer circuit on the multigraph.
	PhaseEulerian

	// PhaseShortcut — shortcutting the Eulerian walk to a Hamiltonian cycle.
	PhaseShortcut

	// PhaseFinalize — cost summation, validation, cache write-back.
	PhaseFinalize
)

// String returns a stable phase name for progress consumers.
func (p Phase) String() string {
	switch p {
	case PhaseFingerprint:
		return "fingerprint"
	case PhaseCacheLookup:
		return "cache-lookup"
	case PhaseExact:
		return "exact"
	case PhaseSpanningTree:
		return "spanning-tree"
	case PhaseMatching:
		return "matching"
	case PhaseEulerian:
		return "eulerian"
	case PhaseShortcut:
		return "shortcut"
	case PhaseFinalize:
		return "finalize"
	default:
		return "unknown"
	}
}

// ProgressFunc observes solver progress. fraction is the solver-internal
// completion estimate in [0..1], non-decreasing per solve. Callbacks must be
// cheap and must not block; solvers invoke them synchronously.
type ProgressFunc func(phase Phase, fraction float64)

// Options configures a single solve.
//
// ExactThreshold — stop count (origin included) at or below which AutoSelect
// uses the exact solver; 0 means DefaultExactThreshold. Negative is invalid.
// Algorithm      — AutoSelect applies the threshold policy; ExactHeldKarp and
// ApproxChristofides bypass it (an exact force above HardCeiling fails with
// ErrInstanceTooLarge, it is never attempted).
// OnProgress     — optional progress observer; nil disables reporting.
type Options struct {
	ExactThreshold int
	Algorithm      Algorithm
	OnProgress     ProgressFunc
}

// DefaultOptions returns the canonical defaults: auto selection with the
// threshold of DefaultExactThreshold and no progress observer.
func DefaultOptions() Options {
	return Options{
		ExactThreshold: DefaultExactThreshold,
		Algorithm:      AutoSelect,
	}
}

// Result holds the outcome of a solve.
type Result struct {
	// Route is the visiting order: len(Route) == n+1,
	// Route[0] == Route[n] == 0, every other index exactly once between.
	Route []int

	// Cost is the total cycle cost, rounded to 1e-9 for stability.
	Cost float64

	// Algorithm is the solver that produced the route.
	Algorithm Algorithm

	// Matching is the matching strategy of an approximate solve
	// (MatchingNone for exact and trivial solves).
	Matching MatchingStrategy

	// Symmetrized reports that an asymmetric model was symmetrized with
	// max(c(i,j), c(j,i)) before the approximate pipeline. When set, the
	// 1.5× bound does not apply.
	Symmetrized bool

	// CacheHit is set by the coordination layer when the route was served
	// from the result cache instead of being computed.
	CacheHit bool
}

// Comparison holds both solver outcomes for side-by-side inspection.
type Comparison struct {
	Exact  Result
	Approx Result

	// Ratio is Approx.Cost / Exact.Cost (1 when the exact cost is zero).
	Ratio float64
}
