// Package coordinator runs route solves off the interactive thread and hands
// the caller a Handle: the one boundary object for observing progress,
// retrieving the final route, or cancelling.
//
// Per-handle state machine:
//
//	Pending → Running → {Completed, Failed, Cancelled}
//
// Pending→Running on dispatch to the worker goroutine; terminal states are
// final. Every solve runs in its own goroutine with its own model and
// result, so concurrent solves share nothing but the result cache, which is
// safe for concurrent use.
//
// Flow per request: fingerprint the instance, consult the cache (a hit
// completes immediately with Result.CacheHit set), dispatch to the solver
// selection policy, store the route back, publish the terminal notification.
// Solver errors propagate unchanged to the handle; the coordinator never
// retries — retrying an exponential-time computation is a correctness
// hazard, not resilience. Cache failures degrade: a failed lookup means
// compute, a failed write-back is logged and the route is still delivered.
//
// Progress notifications carry a completion fraction and a pipeline phase,
// are strictly non-decreasing in fraction, and end with exactly one terminal
// notification after which the stream is closed. Cancellation is cooperative
// via Handle.Cancel (idempotent) or a request time budget; it takes effect
// at the solvers' checkpoint boundaries.
package coordinator
