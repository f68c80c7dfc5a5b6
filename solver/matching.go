package solver

import (
	"math"
	"math/bits"
)

// matchOdd adds a perfect matching over the odd-degree vertex set to the
// multigraph adjacency, choosing the implementation by odd-set size:
// the exact bitmask DP up to exactMatchingLimit vertices, the deterministic
// greedy pairing beyond. The chosen strategy is returned so callers can
// record it in the result metadata — the 1.5× bound only holds for the
// exact matching.
//
// Complexity: O(k²·2^k) exact, O(k²) greedy, k = len(odd).
func matchOdd(odd []int, w []float64, n int, adj [][]int) (MatchingStrategy, error) {
	if len(odd) == 0 {
		return MatchingExact, nil // nothing to pair; vacuously minimal
	}
	if len(odd) <= exactMatchingLimit {
		if err := exactMatch(odd, w, n, adj); err != nil {
			return MatchingNone, err
		}

		return MatchingExact, nil
	}
	if err := greedyMatch(odd, w, n, adj); err != nil {
		return MatchingNone, err
	}

	return MatchingGreedy, nil
}

// exactMatch computes a true minimum-weight perfect matching on the induced
// complete subgraph over odd, by dynamic programming over subsets:
//
//	mw[mask] = minimum weight pairing up exactly the vertices in mask.
//
// For each mask the lowest set bit is paired against every other member, so
// each state is expanded once and ties resolve toward the lower-indexed
// partner. Unreachable pairs are excluded; if the full set admits no finite
// pairing the instance cannot form the Eulerian multigraph.
//
// The matching edges are appended to adj in ascending order of the first
// endpoint, keeping the multigraph construction deterministic.
//
// Contract: len(odd) is even (odd-degree vertex sets always are) and at most
// exactMatchingLimit; odd is sorted ascending.
//
// Complexity: O(k²·2^k) time, O(2^k) space.
func exactMatch(odd []int, w []float64, n int, adj [][]int) error {
	var (
		k      = len(odd)
		full   = 1<<k - 1
		mw     = make([]float64, full+1)
		pick   = make([]int8, full+1) // partner bit chosen for the lowest bit
		mask   int
		i, j   int
		rest   int
		e      float64
		cand   float64
		lowest int
	)
	for mask = 1; mask <= full; mask++ {
		mw[mask] = math.Inf(1)
		pick[mask] = -1
	}
	mw[0] = 0

	for mask = 1; mask <= full; mask++ {
		// Skip odd-cardinality subsets; they cannot be perfectly paired.
		if bits.OnesCount(uint(mask))&1 == 1 {
			continue
		}

		// Pair the lowest set bit with every other member.
		lowest = bits.TrailingZeros(uint(mask))
		for j = lowest + 1; j < k; j++ {
			if mask&(1<<j) == 0 {
				continue
			}
			e = w[odd[lowest]*n+odd[j]]
			if math.IsInf(e, 1) {
				continue
			}
			rest = mask ^ (1 << lowest) ^ (1 << j)
			if math.IsInf(mw[rest], 1) {
				continue
			}
			cand = mw[rest] + e
			if cand < mw[mask] {
				mw[mask] = cand
				pick[mask] = int8(j)
			}
		}
	}

	if math.IsInf(mw[full], 1) {
		return ErrDisconnectedInstance
	}

	// Reconstruct the chosen pairs and append them as multigraph edges.
	mask = full
	for mask != 0 {
		i = bits.TrailingZeros(uint(mask))
		j = int(pick[mask])
		if j < 0 {
			return ErrInternalSolverFault
		}
		adj[odd[i]] = append(adj[odd[i]], odd[j])
		adj[odd[j]] = append(adj[odd[j]], odd[i])
		mask ^= (1 << i) | (1 << j)
	}

	return nil
}

// greedyMatch pairs each remaining odd vertex with its nearest unmatched
// partner, scanning in ascending order so equal-weight ties resolve toward
// the lower index. Valid pairing guaranteed, minimality not — callers record
// MatchingGreedy so consumers know the 1.5× bound does not apply.
//
// Complexity: O(k²) time, O(k) space.
func greedyMatch(odd []int, w []float64, n int, adj [][]int) error {
	remaining := append([]int(nil), odd...)

	var (
		u, v          int
		i, bestIdx    int
		d, bestWeight float64
	)
	for len(remaining) > 1 {
		u = remaining[0]
		remaining = remaining[1:]

		// Closest partner; ascending scan with strict < keeps the lowest index.
		bestIdx, bestWeight = -1, math.Inf(1)
		for i, v = range remaining {
			if d = w[u*n+v]; d < bestWeight {
				bestWeight, bestIdx = d, i
			}
		}
		if bestIdx < 0 {
			// Every remaining partner is unreachable from u.
			return ErrDisconnectedInstance
		}

		v = remaining[bestIdx]
		adj[u] = append(adj[u], v)
		adj[v] = append(adj[v], u)
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return nil
}
