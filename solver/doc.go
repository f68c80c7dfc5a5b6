// Package solver provides Travelling Salesman Problem solvers over a
// costmodel.Model.
//
// It includes two algorithms plus a selection policy:
//
//   - SolveExact — Held–Karp dynamic programming over subset bitmasks.
//
//   - Complexity: O(2^m · m²) time, O(2^m · m) space, m = n−1.
//
//   - Provably optimal; refuses instances above HardCeiling.
//
//   - SolveApprox — Christofides-style construction
//     (MST → odd-vertex matching → Eulerian circuit → shortcut).
//
//   - Complexity: O(n²) for metric instances
//     (plus O(k·2^k) when the exact matching applies, k = odd-set size).
//
//   - Tour cost ≤ 1.5 · OPT on symmetric metric instances with the exact
//     matching; valid but unbounded otherwise.
//
//   - Solve — the selector: exact at or below a configurable stop-count
//     threshold (default 12), approximate above it. CompareBoth runs both
//     and reports the cost ratio.
//
// A cost of +Inf signals "no direct edge"; any solver whose construction
// needs such an edge fails with ErrDisconnectedInstance rather than
// substituting a value. All solvers are deterministic: every tie is broken
// toward the lower vertex index.
//
// Cancellation is cooperative via context.Context: the exact solver checks
// at subset-enumeration boundaries, the approximate solver between pipeline
// stages. No function in this package logs or panics on user input — only
// sentinel errors from types.go are returned.
package solver
