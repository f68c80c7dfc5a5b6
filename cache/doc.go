// Package cache provides the content-addressed result cache of the route
// engine: solved routes keyed by a fingerprint of the instance, with
// time-based expiry.
//
// Layout:
//
//   - Store — the persistence port (Get/Put/Delete/Keys). The storage medium
//     and serialization format are the implementation's concern; the engine
//     depends only on this contract.
//   - MemStore — mutex-guarded in-memory Store, the default wiring and the
//     hermetic test double.
//   - ResultCache — the policy layer: keying, retention window (default one
//     week), lazy purge of stale entries on lookup, eager purge via
//     SweepExpired, and a ristretto L1 in front of the store for hot keys.
//
// The cache owns no clock or timer thread: expiry is evaluated against an
// injectable clock, and SweepExpired is invoked by an external scheduler.
// All operations are safe for concurrent use; racing Puts for the same key
// are last-writer-wins, which is sound because values for a key are
// computationally equivalent.
package cache
