// Package solver - cost utilities shared by exact/approximate solvers.
//
// Small, allocation-conscious helpers to compute the total cost of a
// Hamiltonian cycle represented by a vertex index route. Strict per-edge
// validation even after upstream checks, and stable summation: results are
// rounded to 1e-9 to avoid cross-platform FP noise.
package solver

import (
	"math"

	"github.com/katalvlaran/routeplan/costmodel"
)

// roundScale controls final cost stabilization precision (1e-9).
// Avoids tiny FP drifts across platforms without affecting optimality.
const roundScale = 1e9

// RouteCost sums the costs along the cycle edges route[i]→route[i+1].
//
// Checks performed per edge:
//   - indices in range (⇒ ErrInvalidTour),
//   - cost reachable (+Inf ⇒ ErrDisconnectedInstance).
//
// Contract: route must be closed, len(route) ≥ 2. Solvers validate routes
// upfront via ValidateRoute, but misuse is still guarded.
//
// Complexity: O(n) time, O(1) space.
func RouteCost(m *costmodel.Model, route []int) (float64, error) {
	if m == nil {
		return 0, ErrNilModel
	}
	if len(route) < 2 {
		return 0, ErrInvalidTour
	}

	var (
		sum  float64
		i    int
		u, v int
		w    float64
		n    = m.Size()
		last = len(route) - 1
	)
	for i = 0; i < last; i++ {
		u = route[i]
		v = route[i+1]
		if u < 0 || u >= n || v < 0 || v >= n {
			return 0, ErrInvalidTour
		}

		w = m.Cost(u, v)
		if costmodel.IsUnreachable(w) {
			return 0, ErrDisconnectedInstance
		}

		sum += w
	}

	return round1e9(sum), nil
}

// round1e9 returns x rounded to 1e-9 absolute precision.
//
// Complexity: O(1).
func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}
