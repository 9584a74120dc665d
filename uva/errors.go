// SPDX-License-Identifier: MIT
// Package: itemnet/uva
//
// errors.go — sentinel errors for redundancy reduction.

package uva

import "errors"

var (
	// ErrTooFewColumns indicates input with fewer than two columns; Reduce
	// returns the input untouched alongside it.
	ErrTooFewColumns = errors.New("uva: at least two columns required")

	// ErrUnknownMethod indicates an unsupported reduction method name.
	ErrUnknownMethod = errors.New("uva: unknown reduction method")
)
