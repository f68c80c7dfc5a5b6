// Package costmodel provides the immutable pairwise travel-cost matrix that
// every route solver consumes.
//
// A Model wraps an n×n matrix of non-negative finite travel costs
// cost(i, j), where index 0 is reserved for the fixed origin. The matrix is
// not required to be symmetric (one-way road effects are legitimate). A
// missing edge is represented by +Inf ("unreachable"); solvers decide what
// that means for feasibility, the model only carries it.
//
// Construction deep-copies and validates the input:
//   - square shape, n ≥ 1,
//   - diagonal ≈ 0 (|cost(i,i)| ≤ 1e-12),
//   - no negative or NaN entries.
//
// Any violation yields ErrInvalidCostModel.
//
// Each Model exposes a stable Fingerprint — an xxhash over the matrix order
// and the row-major IEEE-754 bit patterns of its entries — suitable for
// content-addressed cache keys. Fingerprints are computed once at
// construction and are identical across processes and platforms.
package costmodel
