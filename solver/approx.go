// Package solver — Christofides-style approximation.
//
// SolveApprox computes an approximate Hamiltonian cycle with the classical
// pipeline:
//
//  1. Minimum spanning tree over the n stops.
//  2. Odd-degree vertex set of the MST (always even-sized).
//  3. Minimum-weight perfect matching on the odd set.
//  4. Eulerian circuit on the MST+matching multigraph (Hierholzer).
//  5. Shortcutting the circuit to a Hamiltonian cycle.
//
// Quality guarantee:
//   - tour cost ≤ 1.5 · OPT when the model is symmetric, obeys the triangle
//     inequality, and the matching was exact (Result.Matching reports which
//     implementation ran).
//
// Asymmetric models are symmetrized with max(cost(i,j), cost(j,i)) before
// the MST. This is a deliberate, documented approximation — it keeps every
// symmetrized edge an over-estimate of both directions, but no quality bound
// applies to the result (Result.Symmetrized is set). Triangle-inequality
// violations are neither detected nor corrected: the returned cycle stays a
// valid permutation, only the 1.5× bound is void.
//
// Cancellation is checked between stages only; each stage is polynomial and
// short for any instance the engine accepts.
package solver

import (
	"context"

	"github.com/katalvlaran/routeplan/costmodel"
)

// SolveApprox runs the Christofides-style construction on m.
//
// Errors:
//   - ErrDisconnectedInstance when the MST or matching needs an unreachable
//     edge, or the final cycle would traverse one,
//   - ErrCancelled when ctx is done at a stage boundary,
//   - ErrInternalSolverFault on pipeline invariant violations.
//
// Complexity: O(n²) plus the matching (see matchOdd).
func SolveApprox(ctx context.Context, m *costmodel.Model, opts Options) (Result, error) {
	n, err := validateInstance(m)
	if err != nil {
		return Result{}, err
	}
	if err = validateOptions(opts); err != nil {
		return Result{}, err
	}
	if res, done, terr := trivialResult(m, ApproxChristofides); done {
		return res, terr
	}

	symmetrized := !m.IsSymmetric()
	w := symmetrize(m)

	// 1) Minimum spanning tree on the (symmetrized) weights.
	emit(opts, PhaseSpanningTree, 0.05)
	adj, err := minimumSpanningTree(w, n)
	if err != nil {
		return Result{}, err
	}
	if err = stageCheckpoint(ctx); err != nil {
		return Result{}, err
	}

	// 2) Odd-degree vertices of the MST. Degree parity via the list length;
	//    the set size is always even.
	odd := make([]int, 0, n/2+1)

	var v int
	for v = 0; v < n; v++ {
		if len(adj[v])&1 == 1 {
			odd = append(odd, v)
		}
	}

	// 3) Perfect matching on the odd set, appended into the adjacency so it
	//    becomes the Eulerian multigraph.
	emit(opts, PhaseMatching, 0.35)
	strategy, err := matchOdd(odd, w, n, adj)
	if err != nil {
		return Result{}, err
	}
	if err = stageCheckpoint(ctx); err != nil {
		return Result{}, err
	}

	// 4) Eulerian circuit from the origin.
	emit(opts, PhaseEulerian, 0.6)
	euler := eulerianCircuit(adj, 0)
	if err = stageCheckpoint(ctx); err != nil {
		return Result{}, err
	}

	// 5) Shortcut revisits, canonicalize orientation, price the cycle.
	emit(opts, PhaseShortcut, 0.8)
	route, err := shortcutEulerian(euler, n)
	if err != nil {
		return Result{}, err
	}
	canonicalizeOrientation(route)

	emit(opts, PhaseFinalize, 0.95)
	cost, err := RouteCost(m, route)
	if err != nil {
		return Result{}, err
	}
	if err = ValidateRoute(route, n); err != nil {
		return Result{}, ErrInternalSolverFault
	}

	emit(opts, PhaseFinalize, 1)

	return Result{
		Route:       route,
		Cost:        cost,
		Algorithm:   ApproxChristofides,
		Matching:    strategy,
		Symmetrized: symmetrized,
	}, nil
}

// symmetrize flattens the model into a row-major symmetric weight slice
// using max(cost(i,j), cost(j,i)). For symmetric models this is a plain
// copy; the max rule means a one-way unreachable edge stays unreachable in
// both directions, which is the conservative reading for tree building.
//
// Complexity: O(n²) time and space.
func symmetrize(m *costmodel.Model) []float64 {
	var (
		n = m.Size()
		w = make([]float64, n*n)
	)

	var (
		i, j     int
		fwd, bck float64
	)
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			fwd = m.Cost(i, j)
			bck = m.Cost(j, i)
			if bck > fwd {
				fwd = bck
			}
			w[i*n+j] = fwd
			w[j*n+i] = fwd
		}
	}

	return w
}

// stageCheckpoint maps a done context to the cancellation sentinel at the
// boundaries between pipeline stages.
//
// Complexity: O(1).
func stageCheckpoint(ctx context.Context) error {
	if ctx.Err() != nil {
		return ErrCancelled
	}

	return nil
}
