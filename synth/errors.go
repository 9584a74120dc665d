// SPDX-License-Identifier: MIT
// Package: itemnet/synth
//
// errors.go — sentinel errors for the synth package.
// Option constructors panic on meaningless values; generators return these.

package synth

import "errors"

var (
	// ErrTooFewObservations indicates an observation count below 2.
	ErrTooFewObservations = errors.New("synth: at least two observations required")

	// ErrBadClusterSize indicates an empty size list or a cluster with no items.
	ErrBadClusterSize = errors.New("synth: cluster sizes must be positive")

	// ErrOddObservations indicates an odd observation count for a mirrored generator.
	ErrOddObservations = errors.New("synth: mirrored data needs an even observation count")

	// ErrBadTwin indicates a twin of an item that does not exist.
	ErrBadTwin = errors.New("synth: twin source out of range")
)
