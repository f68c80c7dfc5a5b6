package solver

import (
	"context"
	"math"

	"github.com/katalvlaran/routeplan/costmodel"
)

// cancelStrideMask gates the cancellation/progress checkpoint of the subset
// enumeration: the context is polled once every 1024 masks, keeping the
// checkpoint cost negligible against the O(m²) inner work per mask.
const cancelStrideMask = 1<<10 - 1

// SolveExact computes the provably minimum-cost Hamiltonian cycle through
// all n stops, starting and ending at the origin (index 0), with the
// Held–Karp dynamic program.
//
// State: dp[mask][j] = minimum cost of a path that starts at 0, visits
// exactly the non-origin stops in mask (a bitmask over {1..n−1}; the origin
// is implicit and excluded), and ends at stop j ∈ mask.
//
//	Base:       dp[{j}][j]  = cost(0, j)
//	Transition: dp[mask][j] = min over k ∈ mask\{j} of dp[mask\{j}][k] + cost(k, j)
//	Answer:     min over j of dp[full][j] + cost(j, 0)
//
// Both tables live in flat arenas indexed by mask*m + (j−1): one contiguous
// allocation each, so the exponential-size table cost is a single predictable
// allocation rather than 2^m slice headers.
//
// Ties are broken toward the lowest predecessor index, so a fixed model
// always yields the same route.
//
// Unreachable edges are excluded from every minimum; if no transition closes
// the full tour the instance is infeasible.
//
// Errors:
//   - ErrInstanceTooLarge when n−1 > HardCeiling (checked before allocating),
//   - ErrDisconnectedInstance when no Hamiltonian cycle exists,
//   - ErrCancelled when ctx is done at an enumeration checkpoint,
//   - ErrInternalSolverFault if reconstruction yields a malformed route.
//
// Complexity: O(2^m · m²) time, O(2^m · m) space, m = n−1.
func SolveExact(ctx context.Context, m *costmodel.Model, opts Options) (Result, error) {
	n, err := validateInstance(m)
	if err != nil {
		return Result{}, err
	}
	if err = validateOptions(opts); err != nil {
		return Result{}, err
	}
	if res, done, terr := trivialResult(m, ExactHeldKarp); done {
		return res, terr
	}

	var mm = n - 1 // non-origin stop count; DP runs over bitmasks of {1..n-1}
	if mm > HardCeiling {
		return Result{}, ErrInstanceTooLarge
	}

	// --- 1. Flat DP arenas, initialized to "unreached". ---
	var (
		masks = 1 << mm
		dp    = make([]float64, masks*mm)
		par   = make([]int8, masks*mm) // predecessor stop index; 0 = origin
	)
	var i int
	for i = 0; i < len(dp); i++ {
		dp[i] = math.Inf(1)
		par[i] = -1
	}

	// --- 2. Base case: direct legs origin → j. ---
	var (
		j int
		w float64
	)
	for j = 1; j < n; j++ {
		w = m.Cost(0, j)
		if costmodel.IsUnreachable(w) {
			continue
		}
		dp[(1<<(j-1))*mm+(j-1)] = w
		par[(1<<(j-1))*mm+(j-1)] = 0
	}

	emit(opts, PhaseExact, 0)

	// --- 3. Subset enumeration in increasing mask order. ---
	var (
		mask, prev     int
		jBit, kBit     int
		base, prevBase int
		reach, cand    float64
	)
	for mask = 1; mask < masks; mask++ {
		// Cooperative cancellation + progress at enumeration boundaries.
		if mask&cancelStrideMask == 0 {
			if ctx.Err() != nil {
				return Result{}, ErrCancelled
			}
			emit(opts, PhaseExact, float64(mask)/float64(masks))
		}
		if mask&(mask-1) == 0 {
			continue // single-stop masks are the base case
		}

		base = mask * mm
		for jBit = 0; jBit < mm; jBit++ {
			if mask&(1<<jBit) == 0 {
				continue
			}
			prev = mask ^ (1 << jBit)
			prevBase = prev * mm
			j = jBit + 1

			// Scan predecessors in ascending order; strict < keeps the
			// lowest index on ties.
			for kBit = 0; kBit < mm; kBit++ {
				if prev&(1<<kBit) == 0 {
					continue
				}
				if math.IsInf(dp[prevBase+kBit], 1) {
					continue
				}
				reach = m.Cost(kBit+1, j)
				if costmodel.IsUnreachable(reach) {
					continue
				}
				cand = dp[prevBase+kBit] + reach
				if cand < dp[base+jBit] {
					dp[base+jBit] = cand
					par[base+jBit] = int8(kBit + 1)
				}
			}
		}
	}

	// --- 4. Close the tour with the cheapest return leg. ---
	var (
		full     = masks - 1
		fullBase = full * mm
		bestCost = math.Inf(1)
		last     = -1
		total    float64
	)
	for j = 1; j < n; j++ {
		if math.IsInf(dp[fullBase+(j-1)], 1) {
			continue
		}
		w = m.Cost(j, 0)
		if costmodel.IsUnreachable(w) {
			continue
		}
		total = dp[fullBase+(j-1)] + w
		if total < bestCost {
			bestCost = total
			last = j
		}
	}
	if last < 0 {
		return Result{}, ErrDisconnectedInstance
	}

	// --- 5. Walk the predecessor table back to the origin. ---
	route := make([]int, n+1)
	route[n] = 0
	route[0] = 0

	var p int8
	mask = full
	j = last
	for i = n - 1; i >= 1; i-- {
		if j < 1 || j > mm {
			return Result{}, ErrInternalSolverFault
		}
		route[i] = j
		p = par[mask*mm+(j-1)]
		if p < 0 {
			return Result{}, ErrInternalSolverFault
		}
		mask ^= 1 << (j - 1)
		j = int(p)
	}
	if mask != 0 || j != 0 {
		return Result{}, ErrInternalSolverFault
	}
	if err = ValidateRoute(route, n); err != nil {
		return Result{}, ErrInternalSolverFault
	}

	// Reversal preserves cost only under symmetry; asymmetric optima keep
	// the DP's orientation.
	if m.IsSymmetric() {
		canonicalizeOrientation(route)
	}

	emit(opts, PhaseFinalize, 1)

	return Result{
		Route:     route,
		Cost:      round1e9(bestCost),
		Algorithm: ExactHeldKarp,
		Matching:  MatchingNone,
	}, nil
}
