// Package routeplan is a deterministic route-optimization toolkit for
// bounded delivery instances — plan a closed tour over a cost matrix,
// cache the answer, and watch the solve as it happens.
//
// 🚀 What is routeplan?
//
//	A small, thread-safe engine that brings together:
//		• Cost models: validated, immutable matrices with content fingerprints
//		• Exact solving: Held–Karp dynamic programming for small instances
//		• Approximate solving: Christofides-style MST + matching + shortcut
//		• Result caching: fingerprint-keyed entries with time-based retention
//		• Coordination: handle-based async solves with progress and cancellation
//
// ✨ Why choose routeplan?
//
//   - Deterministic – identical input yields an identical route, always
//   - Honest about quality – every result names its algorithm and matching
//   - Pure computation core – solvers never log, never panic on user input
//   - Cancellable – long solves stop cooperatively at enumeration checkpoints
//
// The module is organized as five subpackages:
//
//	costmodel/   — cost matrices, validation, xxhash fingerprints
//	solver/      — Held–Karp, Christofides, selection and comparison
//	cache/       — fingerprint-keyed result cache with retention sweeping
//	coordinator/ — async dispatch, handles, progress streams
//	config/      — YAML/env configuration and logging setup
//
// Quick ASCII example:
//
//	    0───1
//	    │   │
//	    3───2
//
//	a four-stop ring; the optimal closed route is 0→1→2→3→0.
//
// Dive into cmd/routeplan for the command-line planner.
//
//	go get github.com/katalvlaran/routeplan
package routeplan
