package solver

import "math"

// minimumSpanningTree computes a minimum spanning tree of the complete graph
// given by the symmetrized row-major weight slice w (n×n), using Prim's
// algorithm from vertex 0. It returns the MST as adjacency lists; the lists
// double as the Eulerian multigraph once matching edges are appended.
//
// Determinism: candidate vertices are scanned in ascending index order with a
// strict < comparison, so among equal-weight choices the lower-indexed vertex
// (and its earlier-recorded parent) always wins.
//
// Unreachable weights (+Inf) never connect a vertex; if the frontier dries up
// before all n vertices join, the instance is disconnected.
//
// Complexity: O(n²) time, O(n) extra space beyond the output lists.
func minimumSpanningTree(w []float64, n int) ([][]int, error) {
	var (
		inTree   = make([]bool, n)
		bestCost = make([]float64, n) // cheapest edge into the growing tree
		parents  = make([]int, n)
		adj      = make([][]int, n)
	)

	var v int
	for v = 0; v < n; v++ {
		bestCost[v] = math.Inf(1)
		parents[v] = -1
	}
	bestCost[0] = 0

	var (
		it, u int
		minW  float64
		p     int
	)
	for it = 0; it < n; it++ {
		// (a) Cheapest vertex outside the tree; ascending scan, strict <.
		u, minW = -1, math.Inf(1)
		for v = 0; v < n; v++ {
			if !inTree[v] && bestCost[v] < minW {
				minW, u = bestCost[v], v
			}
		}
		if u < 0 {
			return nil, ErrDisconnectedInstance
		}

		// (b) Attach u to the tree.
		inTree[u] = true
		if parents[u] >= 0 {
			p = parents[u]
			adj[u] = append(adj[u], p)
			adj[p] = append(adj[p], u)
		}

		// (c) Relax the frontier; strict < keeps the earliest parent on ties.
		for v = 0; v < n; v++ {
			if !inTree[v] && w[u*n+v] < bestCost[v] {
				bestCost[v] = w[u*n+v]
				parents[v] = u
			}
		}
	}

	return adj, nil
}
