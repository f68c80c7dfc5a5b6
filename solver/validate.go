// Package solver - validation helpers shared by the solvers and selector.
//
// The heavy matrix validation (shape, negativity, NaN, diagonal) already ran
// in costmodel.New; this file only covers solver-level concerns: options
// consistency and instance-size gates. All helpers are deterministic and
// side-effect free.
package solver

import (
	"github.com/katalvlaran/routeplan/costmodel"
)

// validateInstance checks the model pointer and returns n on success.
//
// Complexity: O(1).
func validateInstance(m *costmodel.Model) (int, error) {
	if m == nil {
		return 0, ErrNilModel
	}

	return m.Size(), nil
}

// validateOptions checks internal consistency of Options.
//
// Contract:
//   - ExactThreshold ≥ 0 (0 ⇒ DefaultExactThreshold),
//   - Algorithm is a known enum value.
//
// Complexity: O(1).
func validateOptions(opts Options) error {
	if opts.ExactThreshold < 0 {
		return ErrBadOptions
	}
	switch opts.Algorithm {
	case AutoSelect, ExactHeldKarp, ApproxChristofides:
		// ok
	default:
		return ErrBadOptions
	}

	return nil
}

// exactFits reports whether an instance of n stops is within the exact
// solver's hard ceiling (m = n−1 non-origin stops).
//
// Complexity: O(1).
func exactFits(n int) bool {
	return n-1 <= HardCeiling
}

// emit forwards a progress notification when an observer is configured.
//
// Complexity: O(1) plus the observer itself.
func emit(opts Options, phase Phase, fraction float64) {
	if opts.OnProgress != nil {
		opts.OnProgress(phase, fraction)
	}
}
