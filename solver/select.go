// Package solver - selection policy between the exact and approximate
// solvers.
//
// Solve is the canonical entry point for a single route: it applies the
// configured algorithm override, otherwise routes by instance size against
// the exact threshold. CompareBoth runs both solvers for side-by-side
// inspection. Neither function retries or substitutes: an exact request
// above the hard ceiling fails, it is never downgraded to the approximation.
package solver

import (
	"context"

	"github.com/katalvlaran/routeplan/costmodel"
)

// Solve routes m to a solver according to opts.
//
// Policy (opts.Algorithm == AutoSelect):
//   - exact when n ≤ ExactThreshold (default DefaultExactThreshold,
//     inclusive) and n−1 ≤ HardCeiling,
//   - approximate otherwise.
//
// A forced ExactHeldKarp above the hard ceiling fails with
// ErrInstanceTooLarge before any allocation. Trivial instances (n ≤ 2)
// short-circuit with the closed-form route.
//
// Errors: those of the dispatched solver; see exact.go and approx.go.
//
// Complexity: O(1) dispatch plus the chosen solver.
func Solve(ctx context.Context, m *costmodel.Model, opts Options) (Result, error) {
	n, err := validateInstance(m)
	if err != nil {
		return Result{}, err
	}
	if err = validateOptions(opts); err != nil {
		return Result{}, err
	}

	switch opts.Algorithm {
	case ExactHeldKarp:
		if !exactFits(n) {
			return Result{}, ErrInstanceTooLarge
		}

		return SolveExact(ctx, m, opts)

	case ApproxChristofides:
		return SolveApprox(ctx, m, opts)

	default: // AutoSelect
		threshold := opts.ExactThreshold
		if threshold == 0 {
			threshold = DefaultExactThreshold
		}
		if n <= threshold && exactFits(n) {
			return SolveExact(ctx, m, opts)
		}

		return SolveApprox(ctx, m, opts)
	}
}

// CompareBoth runs the exact and approximate solvers on the same instance
// and reports both routes with their cost ratio. The exact solver must be
// feasible: above the hard ceiling the comparison fails with
// ErrInstanceTooLarge rather than comparing against nothing.
//
// Cancellation is honoured between the two phases and inside each solver.
//
// Complexity: the sum of both solvers.
func CompareBoth(ctx context.Context, m *costmodel.Model, opts Options) (Comparison, error) {
	n, err := validateInstance(m)
	if err != nil {
		return Comparison{}, err
	}
	if err = validateOptions(opts); err != nil {
		return Comparison{}, err
	}
	if !exactFits(n) {
		return Comparison{}, ErrInstanceTooLarge
	}

	exact, err := SolveExact(ctx, m, opts)
	if err != nil {
		return Comparison{}, err
	}
	if err = stageCheckpoint(ctx); err != nil {
		return Comparison{}, err
	}

	approx, err := SolveApprox(ctx, m, opts)
	if err != nil {
		return Comparison{}, err
	}

	ratio := 1.0
	if exact.Cost > 0 {
		ratio = round1e9(approx.Cost / exact.Cost)
	}

	return Comparison{Exact: exact, Approx: approx, Ratio: ratio}, nil
}

// trivialResult short-circuits instances with a closed-form optimum.
//
//	n == 1: the route is [0, 0] with cost 0,
//	n == 2: the route is [0, 1, 0] with cost c(0,1)+c(1,0); an unreachable
//	        leg in either direction makes the instance infeasible.
//
// The bool reports whether the instance was handled.
//
// Complexity: O(1).
func trivialResult(m *costmodel.Model, algo Algorithm) (Result, bool, error) {
	switch m.Size() {
	case 1:
		return Result{
			Route:     []int{0, 0},
			Cost:      0,
			Algorithm: algo,
			Matching:  MatchingNone,
		}, true, nil

	case 2:
		var (
			out  = m.Cost(0, 1)
			back = m.Cost(1, 0)
		)
		if costmodel.IsUnreachable(out) || costmodel.IsUnreachable(back) {
			return Result{}, true, ErrDisconnectedInstance
		}

		return Result{
			Route:     []int{0, 1, 0},
			Cost:      round1e9(out + back),
			Algorithm: algo,
			Matching:  MatchingNone,
		}, true, nil

	default:
		return Result{}, false, nil
	}
}
