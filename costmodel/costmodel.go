package costmodel

import (
	"errors"
	"math"
)

// Sentinel errors returned by the costmodel package.
var (
	// ErrInvalidCostModel indicates a malformed input matrix: non-square
	// shape, negative or NaN entries, or a non-zero diagonal.
	ErrInvalidCostModel = errors.New("costmodel: invalid cost matrix")

	// ErrIndexOutOfRange indicates a Cost/SubFingerprint index outside [0..n-1].
	ErrIndexOutOfRange = errors.New("costmodel: stop index out of range")
)

// diagTol is the structural tolerance for the zero-diagonal check.
// Independent from any solver epsilon.
const diagTol = 1e-12

// symTol is the tolerance used to classify a model as symmetric.
const symTol = 1e-12

// Unreachable is the sentinel cost marking a missing edge.
// Solvers must treat it as "no edge", never as a large finite cost.
var Unreachable = math.Inf(1)

// IsUnreachable reports whether w is the missing-edge sentinel.
//
// Complexity: O(1).
func IsUnreachable(w float64) bool {
	return math.IsInf(w, 1)
}

// Model is a read-only view of pairwise travel costs between stops.
// Index 0 is the fixed origin; indices 1..n-1 are delivery stops.
//
// A Model has no side effects and is safe for concurrent use: all fields are
// written once in New and never mutated afterwards.
type Model struct {
	costs       []float64 // row-major n×n entries, deep-copied at construction
	n           int       // matrix order
	fingerprint uint64    // xxhash of (n, entries); computed once in New
	symmetric   bool      // |c(i,j)-c(j,i)| ≤ symTol for all pairs
}

// New validates costs and returns an immutable Model.
//
// Contract:
//   - costs must be square with n ≥ 1 rows,
//   - every entry non-negative and not NaN (+Inf marks a missing edge),
//   - diagonal entries |c(i,i)| ≤ 1e-12.
//
// The input is deep-copied; later mutation of costs does not affect the Model.
//
// Errors: ErrInvalidCostModel on any violation.
//
// Complexity: O(n²) time, O(n²) space.
func New(costs [][]float64) (*Model, error) {
	n := len(costs)
	if n == 0 {
		return nil, ErrInvalidCostModel
	}

	// Stage 1: shape + value validation, copying row by row.
	flat := make([]float64, n*n)

	var (
		i, j int     // loop indices
		w    float64 // entry under validation
	)
	for i = 0; i < n; i++ {
		if len(costs[i]) != n {
			return nil, ErrInvalidCostModel
		}
		for j = 0; j < n; j++ {
			w = costs[i][j]
			if math.IsNaN(w) {
				return nil, ErrInvalidCostModel
			}
			if w < 0 {
				return nil, ErrInvalidCostModel
			}
			if i == j {
				// Diagonal must be (numerically) zero and finite.
				if math.IsInf(w, 0) || w > diagTol {
					return nil, ErrInvalidCostModel
				}
			}
			flat[i*n+j] = w
		}
	}

	m := &Model{costs: flat, n: n}
	m.symmetric = computeSymmetric(flat, n)
	m.fingerprint = fingerprintMatrix(flat, n)

	return m, nil
}

// Size returns the matrix order n (origin included).
//
// Complexity: O(1).
func (m *Model) Size() int {
	return m.n
}

// Cost returns the travel cost from stop i to stop j.
// Unreachable edges return +Inf (use IsUnreachable to test).
//
// Contract: 0 ≤ i, j < Size(); out-of-range indices return the unreachable
// sentinel, never panic.
//
// Complexity: O(1).
func (m *Model) Cost(i, j int) float64 {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		return Unreachable
	}

	return m.costs[i*m.n+j]
}

// IsSymmetric reports whether |c(i,j) − c(j,i)| ≤ 1e-12 for all pairs.
// Classification happens once at construction.
//
// Complexity: O(1).
func (m *Model) IsSymmetric() bool {
	return m.symmetric
}

// Fingerprint returns the stable content hash of the full matrix.
//
// Complexity: O(1) (precomputed).
func (m *Model) Fingerprint() uint64 {
	return m.fingerprint
}

// computeSymmetric scans the upper triangle for asymmetric pairs.
// Two +Inf entries compare as symmetric; Inf against finite does not.
//
// Complexity: O(n²).
func computeSymmetric(flat []float64, n int) bool {
	var (
		i, j     int
		aij, aji float64
		diff     float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			aij = flat[i*n+j]
			aji = flat[j*n+i]
			if math.IsInf(aij, 1) && math.IsInf(aji, 1) {
				continue
			}
			if math.IsInf(aij, 1) != math.IsInf(aji, 1) {
				return false
			}
			diff = aij - aji
			if diff < 0 {
				diff = -diff
			}
			if diff > symTol {
				return false
			}
		}
	}

	return true
}
