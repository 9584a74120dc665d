// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All helpers return these sentinels (wrapped with operation context via %w);
// tests and callers check them with errors.Is. No helper panics on
// user-triggered conditions.

package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrNilMatrix indicates that a nil matrix argument was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrEmpty indicates that an input has no rows or no columns.
	ErrEmpty = errors.New("matrix: empty input")

	// ErrRaggedRows indicates that provider vectors have different lengths.
	ErrRaggedRows = errors.New("matrix: rows have different lengths")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrTooFewObservations indicates fewer than two rows for a sample statistic.
	ErrTooFewObservations = errors.New("matrix: at least two observations required")

	// ErrDimensionMismatch indicates incompatible operand shapes.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")
)

// matrixErrorf wraps err with the operation tag.
func matrixErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
