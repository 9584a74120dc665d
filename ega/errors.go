// SPDX-License-Identifier: MIT
// Package: itemnet/ega
//
// errors.go — sentinel errors for network estimation.

package ega

import "errors"

var (
	// ErrTooFewItems indicates fewer than two columns.
	ErrTooFewItems = errors.New("ega: at least two items required")

	// ErrTooFewObservations indicates fewer than three rows.
	ErrTooFewObservations = errors.New("ega: at least three observations required")

	// ErrSingular indicates a regularized correlation matrix that could not
	// be inverted (only possible with zero shrinkage).
	ErrSingular = errors.New("ega: correlation matrix is singular")

	// ErrUnknownMethod indicates an unsupported network method name.
	ErrUnknownMethod = errors.New("ega: unknown network method")
)
