// Package solver - tour utilities operating purely on index sequences.
//
// Provided helpers:
//   - ValidateRoute: enforce origin-anchored Hamiltonian cycle invariants.
//   - shortcutEulerian: skip revisits in an Eulerian walk to form a cycle.
//   - canonicalizeOrientation: canonical direction w.r.t. origin neighbours.
//
// No matrix access, no logging; in-place mutation where documented.
package solver

// ValidateRoute enforces the Route invariants from types.go:
//
//	len(route) == n+1, route[0] == route[n] == 0,
//	each vertex v ∈ [0..n-1] appears exactly once in positions [0..n-1].
//
// Returns nil if valid, ErrInvalidTour otherwise.
//
// Complexity: O(n) time, O(n) space.
func ValidateRoute(route []int, n int) error {
	if n <= 0 {
		return ErrInvalidTour
	}
	if len(route) != n+1 {
		return ErrInvalidTour
	}
	if route[0] != 0 || route[n] != 0 {
		return ErrInvalidTour
	}

	seen := make([]bool, n)

	var (
		i int
		v int
	)
	for i = 0; i < n; i++ {
		v = route[i]
		if v < 0 || v >= n {
			return ErrInvalidTour
		}
		if seen[v] {
			return ErrInvalidTour
		}
		seen[v] = true
	}

	return nil
}

// shortcutEulerian converts an Eulerian vertex sequence (with revisits) into
// an origin-anchored Hamiltonian cycle by keeping only first occurrences.
// This is the standard shortcutting step of the Christofides pipeline.
//
// Contracts:
//   - 0 ≤ v < n for every v in euler, and every vertex occurs at least once;
//     otherwise ErrInternalSolverFault (the multigraph construction is the
//     only producer of euler, so a gap here is a wiring bug, not user input).
//
// Returns a route of length n+1 with route[0] == route[n] == 0.
//
// Complexity: O(len(euler) + n) time, O(n) space.
func shortcutEulerian(euler []int, n int) ([]int, error) {
	if n <= 0 {
		return nil, ErrInternalSolverFault
	}

	visited := make([]bool, n)
	cycle := make([]int, 0, n)

	var (
		i int
		v int
	)
	for i = 0; i < len(euler); i++ {
		v = euler[i]
		if v < 0 || v >= n {
			return nil, ErrInternalSolverFault
		}
		if !visited[v] {
			visited[v] = true
			cycle = append(cycle, v)
		}
	}
	if len(cycle) != n {
		return nil, ErrInternalSolverFault
	}

	// Rotate so the origin leads, then close.
	var pivot = -1
	for i = 0; i < n; i++ {
		if cycle[i] == 0 {
			pivot = i
			break
		}
	}
	if pivot == -1 {
		return nil, ErrInternalSolverFault
	}

	route := make([]int, n+1)
	for i = 0; i < n; i++ {
		route[i] = cycle[(pivot+i)%n]
	}
	route[n] = 0

	return route, nil
}

// canonicalizeOrientation fixes the traversal direction of a closed route in
// place: if the right neighbour of the origin is lexicographically larger
// than the left neighbour, the interior segment is reversed. The same cyclic
// order therefore always serializes identically, which keeps approximate
// results deterministic and testable.
//
// Contract: route is closed (len == n+1, route[0] == route[n]).
//
// Complexity: O(n) time, O(1) space.
func canonicalizeOrientation(route []int) {
	if len(route) < 4 {
		return // a cycle over ≤ 2 stops has a single orientation
	}
	var n = len(route) - 1
	if route[1] <= route[n-1] {
		return
	}

	// Reverse the interior segment route[1..n-1].
	var i, k = 1, n - 1
	for i < k {
		route[i], route[k] = route[k], route[i]
		i++
		k--
	}
}
