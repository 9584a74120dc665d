// SPDX-License-Identifier: MIT
// Package: itemnet/bootega
//
// errors.go — sentinel errors for bootstrap stability estimation.

package bootega

import "errors"

var (
	// ErrTooFewColumns indicates fewer than two items.
	ErrTooFewColumns = errors.New("bootega: at least two items required")

	// ErrReplicate indicates that one bootstrap replicate failed to estimate.
	ErrReplicate = errors.New("bootega: replicate estimation failed")
)
