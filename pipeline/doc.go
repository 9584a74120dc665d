// SPDX-License-Identifier: MIT

// Package pipeline runs the content-validity analysis end to end:
// prepare items, embed them, prune redundant and unstable items in a bounded
// loop, estimate the final structure, group phrases by cluster and report
// centralities.
//
// The loop (Controller.Iterate) alternates a Reducer and a StabilityAssessor.
// Iteration i reduces its matrix; if fewer than two columns survive, the
// loop stops with a WarnDegenerateReduction warning and the assessor is not
// called. Otherwise items scoring at least the threshold are stable. No
// unstable item means convergence; otherwise the next iteration starts from
// the stable items only. At the iteration cap the stable set is accepted as
// final with a WarnNonConvergence warning.
//
// Item identity never depends on labels: every matrix travels with an
// items.Selection holding the arena index of each column, and every column
// drop restricts the selection with the same positions.
//
// Fatal failures are returned as *StageError wrapping one of ErrInput,
// ErrEmbedding, ErrEstimation or ErrMapping. Recoverable conditions are
// Warning values in the Outcome.
package pipeline
