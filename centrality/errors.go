// SPDX-License-Identifier: MIT
// Package: itemnet/centrality
//
// errors.go — sentinel errors for centrality analysis.

package centrality

import "errors"

var (
	// ErrTooFewItems indicates fewer than two items; centrality is undefined.
	ErrTooFewItems = errors.New("centrality: at least two items required")

	// ErrReplicate indicates that one bootstrap draw failed to estimate.
	ErrReplicate = errors.New("centrality: bootstrap draw failed")
)
