package solver

// eulerianCircuit returns an Eulerian circuit of the undirected multigraph
// given by adjacency lists adj, starting and ending at start, via
// Hierholzer's algorithm. Every vertex of the MST+matching multigraph has
// even degree, so the circuit always exists.
//
// The input lists are copied before edge removal; adj is left untouched.
//
// Complexity: O(E) time, O(E) space, E = multigraph edge count.
func eulerianCircuit(adj [][]int, start int) []int {
	// Local edge lists we are allowed to consume.
	local := make([][]int, len(adj))

	var u int
	for u = range adj {
		local[u] = append([]int(nil), adj[u]...)
	}

	var (
		circuit []int
		stack   = []int{start}
		v, i, x int
	)
	for len(stack) > 0 {
		u = stack[len(stack)-1]
		if len(local[u]) == 0 {
			// No edges left at u: backtrack.
			circuit = append(circuit, u)
			stack = stack[:len(stack)-1]
			continue
		}

		// Consume one edge u→v.
		v = local[u][len(local[u])-1]
		local[u] = local[u][:len(local[u])-1]

		// Remove the reverse edge v→u.
		for i, x = range local[v] {
			if x == u {
				local[v] = append(local[v][:i], local[v][i+1:]...)
				break
			}
		}

		stack = append(stack, v)
	}

	return circuit
}
